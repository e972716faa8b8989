// Package periods разбирает свободные формулировки периода для отчётов:
// «сегодня», «вчера», «за 3 дня», «за неделю», «за месяц», «за год»,
// «за август» (месяцы по русскому префиксу, текущий год).
package periods

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Period — полуинтервал не нужен: обе границы включительно, по дням.
type Period struct {
	Start time.Time
	End   time.Time
	Label string
}

var ruMonths = []struct {
	prefix string
	month  time.Month
}{
	{"янв", time.January}, {"фев", time.February}, {"мар", time.March},
	{"апр", time.April}, {"мая", time.May}, {"май", time.May},
	{"июн", time.June}, {"июл", time.July}, {"авг", time.August},
	{"сен", time.September}, {"окт", time.October}, {"ноя", time.November},
	{"дек", time.December},
}

var (
	daysRx      = regexp.MustCompile(`за\s+(\d+)\s*д`)
	daysStripRx = regexp.MustCompile(`за\s+\d+\s*[а-яё]*`)
)

// Parse возвращает период или ok=false, если текст не похож на период.
// now передаётся снаружи ради тестов.
func Parse(text string, now time.Time) (Period, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return Period{}, false
	}
	today := truncateDay(now)

	if strings.Contains(s, "сегодня") {
		return Period{today, today, "сегодня"}, true
	}
	if strings.Contains(s, "вчера") {
		d := today.AddDate(0, 0, -1)
		return Period{d, d, "вчера"}, true
	}

	if m := daysRx.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n < 1 {
			n = 1
		}
		return Period{today.AddDate(0, 0, -(n - 1)), today, fmt.Sprintf("последние %d дн.", n)}, true
	}

	if strings.Contains(s, "недел") {
		return Period{today.AddDate(0, 0, -6), today, "последнюю неделю"}, true
	}
	if strings.Contains(s, "год") {
		return Period{time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()), today, "год"}, true
	}
	if strings.Contains(s, "месяц") {
		return Period{time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()), today, "месяц"}, true
	}

	for _, tok := range strings.Fields(s) {
		for _, rm := range ruMonths {
			if strings.HasPrefix(tok, rm.prefix) {
				start := time.Date(today.Year(), rm.month, 1, 0, 0, 0, 0, today.Location())
				end := start.AddDate(0, 1, -1)
				return Period{start, end, "за " + tok}, true
			}
		}
	}

	return Period{}, false
}

// WithoutPhrase убирает из текста фразу «за N дней» — единственную форму
// периода с цифрами. Оставшиеся цифры принадлежат сумме, а не периоду.
func WithoutPhrase(text string) string {
	return daysStripRx.ReplaceAllString(strings.ToLower(text), " ")
}

// Label даёт человекочитаемую подпись диапазона.
func (p Period) String() string {
	if p.Label != "" {
		return p.Label
	}
	if p.Start.Equal(p.End) {
		return p.Start.Format("2006-01-02")
	}
	return p.Start.Format("2006-01-02") + " — " + p.End.Format("2006-01-02")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
