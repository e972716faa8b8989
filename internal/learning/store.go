// Package learning хранит выученные соответствия «термин -> категория»
// и отвечает на вопрос «а не учили ли меня этому слову раньше».
package learning

import (
	"strconv"
	"strings"
)

// GlobalScope — общие для всех пользователей термины.
const GlobalScope = "global"

// UserScope — область видимости конкретного пользователя.
func UserScope(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Store — долговечное хранилище терминов с upsert-семантикой: поздняя
// запись для пары (scope, term) перетирает раннюю.
type Store interface {
	Get(scope, term string) (string, bool, error)
	Upsert(scope, term, category string) error
	// Terms отдаёт весь маппинг области — нужен нечёткому поиску.
	Terms(scope string) (map[string]string, error)
}

// NormalizeTerm приводит терм к ключевой форме.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
