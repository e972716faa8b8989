package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLearned struct {
	byTerm map[string]string
	calls  []string
}

func (f *fakeLearned) LearnedCategory(userID int64, term string) (string, bool) {
	f.calls = append(f.calls, term)
	cat, ok := f.byTerm[term]
	return cat, ok
}

func TestParseLineBasicExpense(t *testing.T) {
	p := NewParser(nil)

	parsed := p.ParseLine("кофе 4,50", 1)
	require.NotNil(t, parsed)
	assert.True(t, parsed.Amount.Equal(decimal.RequireFromString("4.5")))
	assert.Equal(t, Currency, parsed.Currency)
	assert.Equal(t, TypeExpense, parsed.Type)
	assert.Equal(t, CategoryFood, parsed.Category)
	assert.Equal(t, "Кофе", parsed.Term)
	assert.Equal(t, "кофе 4,50", parsed.Raw)
}

func TestParseLineIncomeBySign(t *testing.T) {
	p := NewParser(nil)

	parsed := p.ParseLine("+200 партнёрка", 1)
	require.NotNil(t, parsed)
	assert.Equal(t, TypeIncome, parsed.Type)
	assert.True(t, parsed.Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, CategoryIncome, parsed.Category)
}

func TestParseLineNoAmountIsNil(t *testing.T) {
	p := NewParser(nil)

	assert.Nil(t, p.ParseLine("привет", 1))
	assert.Nil(t, p.ParseLine("", 1))
	assert.Nil(t, p.ParseLine("   ", 1))
}

func TestParseLineLearnedOverridesSentinel(t *testing.T) {
	learned := &fakeLearned{byTerm: map[string]string{"Кириешки": CategoryFood}}
	p := NewParser(learned)

	parsed := p.ParseLine("кириешки 3,20", 42)
	require.NotNil(t, parsed)
	assert.Equal(t, CategoryFood, parsed.Category)
	assert.Equal(t, []string{"Кириешки"}, learned.calls)
}

func TestParseLineLearnedDoesNotOverrideRule(t *testing.T) {
	learned := &fakeLearned{byTerm: map[string]string{"Кофе": CategoryFun}}
	p := NewParser(learned)

	parsed := p.ParseLine("кофе 10", 42)
	require.NotNil(t, parsed)
	assert.Equal(t, CategoryFood, parsed.Category)
	// Таблица правил сработала — к выученным термам даже не обращаемся.
	assert.Empty(t, learned.calls)
}

func TestParseLineUnknownStaysSentinel(t *testing.T) {
	learned := &fakeLearned{byTerm: map[string]string{}}
	p := NewParser(learned)

	parsed := p.ParseLine("кириешки 3,20", 42)
	require.NotNil(t, parsed)
	assert.True(t, IsSentinel(parsed.Category))
}

func TestParseLineFallbackTerm(t *testing.T) {
	p := NewParser(nil)

	parsed := p.ParseLine("4,50", 1)
	require.NotNil(t, parsed)
	assert.Equal(t, "Позиция", parsed.Term)
}
