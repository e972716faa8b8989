package parser

import (
	"regexp"
	"strings"
)

var (
	wsRx     = regexp.MustCompile(`\s+`)
	numSepRx = regexp.MustCompile(`(\d)[ _](\d)`)
	signRx   = regexp.MustCompile(`\s*([+-])\s*(\d)`)

	charReplacer = strings.NewReplacer(
		"—", "-", "–", "-", "−", "-",
		"‎", " ", "​", " ", " ", " ",
	)
)

func Normalize(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	s = charReplacer.Replace(s)
	s = strings.ReplaceAll(s, ",", ".")
	// RE2 без lookaround: разделители тысяч убираем до неподвижной точки.
	for {
		next := numSepRx.ReplaceAllString(s, "$1$2")
		if next == s {
			break
		}
		s = next
	}
	s = wsRx.ReplaceAllString(s, " ")
	s = signRx.ReplaceAllString(s, " $1$2")
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}
