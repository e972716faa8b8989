package learning

import (
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/budgetmind/budget_bot/internal/logger"
)

// Service — поиск и запись выученных терминов поверх любого Store.
// Порядок поиска фиксированный: точное совпадение у пользователя, точное в
// глобальной области, нечёткое у пользователя, нечёткое в глобальной.
// Нечёткий поиск прощает опечатки и множественное число в повторяющихся
// термах одного и того же пользователя.
type Service struct {
	mu              sync.Mutex
	store           Store
	userThreshold   float64
	globalThreshold float64
}

func NewService(store Store, userThreshold, globalThreshold float64) *Service {
	return &Service{
		store:           store,
		userThreshold:   userThreshold,
		globalThreshold: globalThreshold,
	}
}

// LearnedCategory возвращает категорию для терма с учётом пользователя.
// Ошибки хранилища не всплывают: нет данных — нет подсказки.
func (s *Service) LearnedCategory(userID int64, term string) (string, bool) {
	t := NormalizeTerm(term)
	if t == "" {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userScope := UserScope(userID)

	if cat, ok, err := s.store.Get(userScope, t); err == nil && ok {
		return cat, true
	} else if err != nil {
		logger.Warn("learning store lookup failed", "scope", userScope, "error", err)
	}
	if cat, ok, err := s.store.Get(GlobalScope, t); err == nil && ok {
		return cat, true
	}

	if cat, ok := s.closest(userScope, t, s.userThreshold); ok {
		return cat, true
	}
	if cat, ok := s.closest(GlobalScope, t, s.globalThreshold); ok {
		return cat, true
	}
	return "", false
}

// SaveUserTerm — идемпотентный upsert пользовательского маппинга.
func (s *Service) SaveUserTerm(userID int64, term, category string) error {
	return s.save(UserScope(userID), term, category)
}

// SaveGlobalTerm пишет в общую для всех область.
func (s *Service) SaveGlobalTerm(term, category string) error {
	return s.save(GlobalScope, term, category)
}

func (s *Service) save(scope, term, category string) error {
	t := NormalizeTerm(term)
	cat := NormalizeCategory(category)
	if t == "" || cat == "" {
		return fmt.Errorf("empty term or category")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Upsert(scope, t, cat); err != nil {
		return fmt.Errorf("save term %q: %w", t, err)
	}
	return nil
}

func (s *Service) closest(scope, term string, threshold float64) (string, bool) {
	terms, err := s.store.Terms(scope)
	if err != nil || len(terms) == 0 {
		return "", false
	}

	bestRatio := 0.0
	bestCat := ""
	for known, cat := range terms {
		r := similarity(term, known)
		if r > bestRatio {
			bestRatio = r
			bestCat = cat
		}
	}
	if bestRatio >= threshold {
		return bestCat, true
	}
	return "", false
}

// similarity — нормированное расстояние Левенштейна: 1 — полное совпадение.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// NormalizeCategory обрезает пробелы; регистр сохраняется, названия
// категорий — внешний контракт.
func NormalizeCategory(category string) string {
	return strings.TrimSpace(category)
}
