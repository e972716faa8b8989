// Package teaching — очередь «необученных» записей и диалог выбора
// категории. «Пропустить» снимает только первую запись, «Отмена»
// выбрасывает всю очередь.
package teaching

import (
	"sync"

	"github.com/shopspring/decimal"
)

// PendingItem — распознанная строка, ждущая категорию.
type PendingItem struct {
	Amount decimal.Decimal
	Type   string
	Term   string
	Raw    string
}

type session struct {
	mu             sync.Mutex
	queue          []PendingItem
	awaitingCustom bool
}

// Manager владеет сессиями обучения, по одной на пользователя.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*session)}
}

func (m *Manager) get(userID int64, create bool) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[userID]
	if s == nil && create {
		s = &session{}
		m.sessions[userID] = s
	}
	return s
}

// maybeDrop убирает пустую сессию. Порядок замков: manager -> session.
func (m *Manager) maybeDrop(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[userID]
	if s == nil {
		return
	}
	s.mu.Lock()
	empty := len(s.queue) == 0 && !s.awaitingCustom
	s.mu.Unlock()
	if empty {
		delete(m.sessions, userID)
	}
}

// EnqueueUnknown ставит запись в очередь; true — запись первая.
func (m *Manager) EnqueueUnknown(userID int64, item PendingItem) bool {
	s := m.get(userID, true)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, item)
	return len(s.queue) == 1
}

// NextPending — первая запись очереди без снятия.
func (m *Manager) NextPending(userID int64) (PendingItem, bool) {
	s := m.get(userID, false)
	if s == nil {
		return PendingItem{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return PendingItem{}, false
	}
	return s.queue[0], true
}

// ResolvePending снимает первую запись; ложь — очередь пуста (запоздалое
// нажатие кнопки).
func (m *Manager) ResolvePending(userID int64) (PendingItem, bool) {
	return m.pop(userID)
}

// Skip снимает первую запись, ничего не сохраняя.
func (m *Manager) Skip(userID int64) (PendingItem, bool) {
	return m.pop(userID)
}

func (m *Manager) pop(userID int64) (PendingItem, bool) {
	s := m.get(userID, false)
	if s == nil {
		return PendingItem{}, false
	}
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return PendingItem{}, false
	}
	item := s.queue[0]
	s.queue = s.queue[1:]
	s.awaitingCustom = false
	s.mu.Unlock()

	m.maybeDrop(userID)
	return item, true
}

// BeginCustomCategoryInput: следующий текст пользователя — имя категории.
func (m *Manager) BeginCustomCategoryInput(userID int64) bool {
	s := m.get(userID, false)
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return false
	}
	s.awaitingCustom = true
	return true
}

func (m *Manager) AwaitingCustom(userID int64) bool {
	s := m.get(userID, false)
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaitingCustom
}

// CancelAll выбрасывает всю очередь, возвращает число отброшенных записей.
func (m *Manager) CancelAll(userID int64) int {
	s := m.get(userID, false)
	if s == nil {
		return 0
	}
	s.mu.Lock()
	n := len(s.queue)
	s.queue = nil
	s.awaitingCustom = false
	s.mu.Unlock()

	m.maybeDrop(userID)
	return n
}

func (m *Manager) HasPending(userID int64) bool {
	_, ok := m.NextPending(userID)
	return ok
}
