package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetmind/budget_bot/internal/parser"
	"github.com/budgetmind/budget_bot/internal/repository"
)

// FinanceService — фасад репозитория для одного пользователя.
type FinanceService struct {
	repo *repository.SQLiteRepository
	user *repository.User
}

func NewService(repo *repository.SQLiteRepository, user *repository.User) *FinanceService {
	return &FinanceService{repo: repo, user: user}
}

func (s *FinanceService) User() *repository.User {
	return s.user
}

// AddOperation сохраняет запись. amount — модуль суммы, знак определяет
// opType: расходы уходят в базу отрицательными.
func (s *FinanceService) AddOperation(amount decimal.Decimal, opType, category, description string) (int, error) {
	if !amount.IsPositive() {
		return 0, fmt.Errorf("amount must be positive")
	}
	if opType != parser.TypeIncome && opType != parser.TypeExpense {
		return 0, fmt.Errorf("unknown operation type %q", opType)
	}

	signed := amount.Round(2).InexactFloat64()
	if opType == parser.TypeExpense {
		signed = -signed
	}

	return s.repo.AddOperation(s.user.ID, repository.Operation{
		Amount:      signed,
		Currency:    parser.Currency,
		Type:        opType,
		Category:    category,
		Description: description,
		CreatedAt:   time.Now(),
	})
}

// OperationsForPeriod — записи за [start, end), границы по времени.
func (s *FinanceService) OperationsForPeriod(start, end time.Time) ([]repository.Operation, error) {
	return s.repo.GetOperationsByPeriod(s.user.ID, start, end)
}

func (s *FinanceService) DeleteOperation(id int) (bool, error) {
	return s.repo.DeleteOperation(s.user.ID, id)
}

func (s *FinanceService) HasOperationsToday() (bool, error) {
	return s.repo.HasOperationsToday(s.user.ID)
}

func (s *FinanceService) SetNotifications(enabled bool) error {
	return s.repo.UpdateUserNotifications(s.user.ID, enabled)
}

// Balance — доходы минус расходы за всё время.
func (s *FinanceService) Balance() (float64, error) {
	return s.repo.Balance(s.user.ID)
}

func (s *FinanceService) AddReminder(text string, remindAt time.Time) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("reminder text is empty")
	}
	return s.repo.AddReminder(s.user.ID, text, remindAt)
}

func (s *FinanceService) RemindersForToday() ([]repository.Reminder, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.repo.RemindersForDay(s.user.ID, start, start.AddDate(0, 0, 1))
}

func (s *FinanceService) AddRecurring(rec repository.RecurringOp) (int, error) {
	if rec.Amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return s.repo.AddRecurring(s.user.ID, rec)
}

func (s *FinanceService) ListRecurring() ([]repository.RecurringOp, error) {
	return s.repo.ListRecurring(s.user.ID)
}

func (s *FinanceService) DeleteRecurring(id int) (bool, error) {
	return s.repo.DeleteRecurring(s.user.ID, id)
}
