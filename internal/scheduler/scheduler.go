// Package scheduler — фоновые задачи: вечернее напоминание «сегодня нет
// записей» и проведение повторяющихся операций.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/budgetmind/budget_bot/internal/logger"
	"github.com/budgetmind/budget_bot/internal/repository"
)

// Notifier — то немногое, что планировщику нужно от бота.
type Notifier interface {
	Notify(telegramID int64, text string)
}

type Scheduler struct {
	cron *cron.Cron
	repo *repository.SQLiteRepository
	bot  Notifier
}

func New(repo *repository.SQLiteRepository, bot Notifier) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		repo: repo,
		bot:  bot,
	}
}

func (s *Scheduler) Start() error {
	// Напоминание в 19:00, повторяющиеся операции — раз в минуту.
	if _, err := s.cron.AddFunc("0 19 * * *", s.remindIdleUsers); err != nil {
		return fmt.Errorf("add reminder job: %w", err)
	}
	if _, err := s.cron.AddFunc("* * * * *", s.postDueRecurring); err != nil {
		return fmt.Errorf("add recurring job: %w", err)
	}
	if _, err := s.cron.AddFunc("* * * * *", s.fireDueReminders); err != nil {
		return fmt.Errorf("add reminders job: %w", err)
	}
	s.cron.Start()
	logger.Info("Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) remindIdleUsers() {
	users, err := s.repo.GetAllUsers()
	if err != nil {
		logger.Error("reminder: list users", "error", err)
		return
	}

	for _, u := range users {
		if !u.NotificationsEnabled {
			continue
		}
		has, err := s.repo.HasOperationsToday(u.ID)
		if err != nil || has {
			continue
		}
		s.bot.Notify(u.TelegramID, "🔔 За сегодня ещё нет ни одной записи. Потратили что-нибудь?")
	}
}

func (s *Scheduler) fireDueReminders() {
	due, err := s.repo.DueReminders(time.Now())
	if err != nil {
		logger.Error("reminders: query due", "error", err)
		return
	}

	for _, rem := range due {
		s.bot.Notify(rem.TelegramID, fmt.Sprintf("⏰ Напоминание: %s", rem.Text))
		if err := s.repo.MarkReminderDone(rem.ID); err != nil {
			logger.Error("reminders: mark done", "id", rem.ID, "error", err)
		}
	}
}

func (s *Scheduler) postDueRecurring() {
	now := time.Now()
	recs, err := s.repo.DueRecurring(now)
	if err != nil {
		logger.Error("recurring: query due", "error", err)
		return
	}

	for _, rec := range recs {
		amount := rec.Amount
		if rec.Type == "expense" {
			amount = -amount
		}
		if _, err := s.repo.AddOperation(rec.UserID, repository.Operation{
			Amount:      amount,
			Currency:    "BYN",
			Type:        rec.Type,
			Category:    rec.Category,
			Description: rec.Description,
			CreatedAt:   now,
		}); err != nil {
			logger.Error("recurring: add operation", "id", rec.ID, "error", err)
			continue
		}

		if err := s.repo.BumpNextRun(rec.ID, nextRun(rec, now)); err != nil {
			logger.Error("recurring: bump next_run", "id", rec.ID, "error", err)
		}

		users, err := s.repo.GetAllUsers()
		if err != nil {
			continue
		}
		for _, u := range users {
			if u.ID == rec.UserID {
				s.bot.Notify(u.TelegramID, fmt.Sprintf("🔁 Провёл повторяющуюся операцию: %s — %.2f BYN", rec.Category, rec.Amount))
				break
			}
		}
	}
}

// nextRun — следующее срабатывание от текущего момента в час и минуту
// записи.
func nextRun(rec repository.RecurringOp, now time.Time) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), rec.Hour, rec.Minute, 0, 0, now.Location())
	switch rec.Period {
	case "weekly":
		return at.AddDate(0, 0, 7)
	case "monthly":
		return at.AddDate(0, 1, 0)
	default: // daily
		if at.After(now) {
			return at
		}
		return at.AddDate(0, 0, 1)
	}
}
