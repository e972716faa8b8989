package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/budgetmind/budget_bot/internal/service"
)

const remindUsage = `Формат: <code>/remind 2026-09-01 09:00 оплатить интернет</code>
Также: <code>/remind завтра 09:00 текст</code>, <code>/remind через 30 мин текст</code>`

func (b *Bot) handleRemind(chatID int64, raw string, svc *service.FinanceService) {
	tail := strings.TrimSpace(strings.TrimPrefix(raw, "/remind"))
	at, text, err := parseRemindArgs(tail, time.Now())
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, remindUsage)
		msg.ParseMode = "HTML"
		b.send(chatID, msg)
		return
	}

	if _, err := svc.AddReminder(text, at); err != nil {
		b.sendError(chatID, err)
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"⏰ Ок, напомню <b>%s</b>: %s", at.Format("2006-01-02 15:04"), text))
	msg.ParseMode = "HTML"
	b.send(chatID, msg)
}

// parseRemindArgs разбирает «YYYY-MM-DD HH:MM текст», «завтра HH:MM текст»
// и «через N мин|час текст».
func parseRemindArgs(tail string, now time.Time) (time.Time, string, error) {
	fields := strings.Fields(tail)

	switch {
	case len(fields) >= 4 && strings.EqualFold(fields[0], "через"):
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return time.Time{}, "", fmt.Errorf("bad interval %q", fields[1])
		}
		unit := strings.ToLower(fields[2])
		var d time.Duration
		switch {
		case strings.HasPrefix(unit, "мин"):
			d = time.Duration(n) * time.Minute
		case strings.HasPrefix(unit, "час"):
			d = time.Duration(n) * time.Hour
		default:
			return time.Time{}, "", fmt.Errorf("unknown unit %q", unit)
		}
		return now.Add(d), strings.Join(fields[3:], " "), nil

	case len(fields) >= 3 && strings.EqualFold(fields[0], "завтра"):
		hour, minute, err := parseClock(fields[1])
		if err != nil {
			return time.Time{}, "", err
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()).AddDate(0, 0, 1)
		return at, strings.Join(fields[2:], " "), nil

	case len(fields) >= 3:
		at, err := time.ParseInLocation("2006-01-02 15:04", fields[0]+" "+fields[1], now.Location())
		if err != nil {
			return time.Time{}, "", err
		}
		return at, strings.Join(fields[2:], " "), nil
	}

	return time.Time{}, "", fmt.Errorf("expected time and text")
}

func (b *Bot) showReminders(chatID int64, svc *service.FinanceService) {
	items, err := svc.RemindersForToday()
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	if len(items) == 0 {
		b.send(chatID, tgbotapi.NewMessage(chatID, "Сегодня напоминаний нет."))
		return
	}

	lines := []string{"🗓 <b>Напоминания на сегодня:</b>", ""}
	for i, r := range items {
		lines = append(lines, fmt.Sprintf("%d. %s — %s", i+1, r.RemindAt.Format("15:04"), r.Text))
	}
	msg := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	msg.ParseMode = "HTML"
	b.send(chatID, msg)
}

func (b *Bot) showBalance(chatID int64, svc *service.FinanceService) {
	bal, err := svc.Balance()
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	sign := ""
	switch {
	case bal > 0:
		sign = "+"
	case bal < 0:
		sign = "-"
		bal = -bal
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("💼 Баланс: <b>%s%.2f BYN</b>", sign, bal))
	msg.ParseMode = "HTML"
	b.send(chatID, msg)
}
