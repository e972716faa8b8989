package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	numTokenRx = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	dashSignRx = regexp.MustCompile(`[+–—-]`)
	wordRx     = regexp.MustCompile(`[a-zа-яё][a-zа-яё0-9-]*`)
	leadWordRx = regexp.MustCompile(`[A-Za-zА-Яа-яЁё][A-Za-zА-Яа-яЁё0-9-]*`)
)

var termStopWords = map[string]bool{
	"потратил": true, "потратила": true,
	"купил": true, "купила": true,
	"оплатил": true, "оплатила": true,
	"заплатил": true, "заплатила": true,
	"вчера": true, "сегодня": true,
	"на": true, "по": true, "за": true,
	"руб": true, "р": true, "бр": true,
	"byn": true, "usd": true, "eur": true,
}

// ExtractTerm — терм из 1-3 слов, он же ключ обучения; извлечение должно
// быть детерминированным.
func ExtractTerm(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(text)
	s = numTokenRx.ReplaceAllString(s, " ")
	s = dashSignRx.ReplaceAllString(s, " ")

	var words []string
	for _, w := range wordRx.FindAllString(s, -1) {
		if termStopWords[w] {
			continue
		}
		words = append(words, w)
		if len(words) == 3 {
			break
		}
	}
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// CleanName — имя позиции для списков.
func CleanName(desc, fallback string) string {
	if desc == "" {
		return fallback
	}
	w := leadWordRx.FindString(strings.TrimSpace(desc))
	if w == "" {
		return fallback
	}
	return capitalize(w)
}

func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
