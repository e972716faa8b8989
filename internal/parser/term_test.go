package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTerm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "кофе 4,50", "Кофе"},
		{"stop words dropped", "потратил на кофе 4,50", "Кофе"},
		{"date words dropped", "вчера такси 10", "Такси"},
		{"latin word", "coffee 10", "Coffee"},
		{"currency dropped", "кофе 4 byn", "Кофе"},
		{"at most three words", "большой вкусный горячий кофе 5", "Большой Вкусный Горячий"},
		{"only number", "4,50", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTerm(tt.in))
		})
	}
}

// Извлечение детерминировано: тот же вход — тот же терм, иначе ключи
// обучения расползутся.
func TestExtractTermDeterministic(t *testing.T) {
	first := ExtractTerm("кириешки со вкусом краба 3,20")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractTerm("кириешки со вкусом краба 3,20"))
	}
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Кофе", CleanName("кофе с собой 4,50", "Прочее"))
	assert.Equal(t, "Такси", CleanName("10 такси", "Прочее"))
	assert.Equal(t, "Прочее", CleanName("", "Прочее"))
	assert.Equal(t, "Прочее", CleanName("12345", "Прочее"))
}
