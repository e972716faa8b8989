package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const Currency = "BYN"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var amountRx = regexp.MustCompile(`([+-])?\s*(\d+(?:\.\d{1,2})?)`)

// Слова-маркеры дохода для строк без явного знака. Для премии перечислены
// падежные формы: префикс «прем» ловил бы «премиум».
var incomeMarkers = []string{
	"зарплат", "доход", "прибыль",
	"премия", "премию", "премии", "премией",
	"партнер", "партнёр",
	"кешбек", "кэшбек", "cashback",
	"вернули", "получил", "зачислили", "гонорар",
}

// ExtractAmount — модуль первого числа в нормализованном тексте.
func ExtractAmount(text string) (decimal.Decimal, string, bool) {
	if text == "" {
		return decimal.Zero, "", false
	}
	m := amountRx.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, "", false
	}
	amount, err := decimal.NewFromString(m[2])
	if err != nil {
		return decimal.Zero, "", false
	}
	return amount.Abs().Round(2), Currency, true
}

// DetectType: явный знак важнее маркеров, по умолчанию расход.
func DetectType(text string) string {
	if text == "" {
		return TypeExpense
	}
	if m := amountRx.FindStringSubmatch(text); m != nil && m[1] != "" {
		if m[1] == "+" {
			return TypeIncome
		}
		return TypeExpense
	}
	t := strings.ToLower(text)
	for _, marker := range incomeMarkers {
		if strings.Contains(t, marker) {
			return TypeIncome
		}
	}
	return TypeExpense
}
