package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Parsed — результат разбора одной строки.
type Parsed struct {
	Amount   decimal.Decimal // всегда > 0, 2 знака
	Currency string
	Type     string
	Category string
	Term     string
	Raw      string
}

// LearnedLookup — read-only доступ к выученным терминам.
type LearnedLookup interface {
	LearnedCategory(userID int64, term string) (string, bool)
}

type Parser struct {
	learned LearnedLookup
}

func NewParser(learned LearnedLookup) *Parser {
	return &Parser{learned: learned}
}

const fallbackTerm = "Позиция"

// ParseLine превращает свободный текст в операцию; строка без числа — nil.
func (p *Parser) ParseLine(raw string, userID int64) *Parsed {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	text := Normalize(raw)
	amount, currency, ok := ExtractAmount(text)
	if !ok {
		return nil
	}

	opType := DetectType(text)

	term := ExtractTerm(raw)
	if term == "" {
		term = capitalize(productPhrase(text))
	}
	if term == "" {
		term = fallbackTerm
	}

	category := DetectCategory(text, opType)

	// Выученный маппинг перекрывает только сентинел.
	if p.learned != nil && IsSentinel(category) {
		if learned, found := p.learned.LearnedCategory(userID, term); found {
			category = learned
		}
	}

	return &Parsed{
		Amount:   amount,
		Currency: currency,
		Type:     opType,
		Category: category,
		Term:     term,
		Raw:      raw,
	}
}

var phraseNumRx = regexp.MustCompile(`[+-]?\s*\d+(?:\.\d{1,2})?`)

// productPhrase — фраза до первой суммы, либо после неё.
func productPhrase(text string) string {
	loc := phraseNumRx.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	before := strings.TrimSpace(text[:loc[0]])
	if before != "" {
		return wsRx.ReplaceAllString(before, " ")
	}
	after := strings.TrimSpace(text[loc[1]:])
	return wsRx.ReplaceAllString(after, " ")
}
