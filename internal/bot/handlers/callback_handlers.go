package handlers

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/budgetmind/budget_bot/internal/logger"
	"github.com/budgetmind/budget_bot/internal/service"
)

func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) {
	chatID := q.From.ID
	uid := q.From.ID
	data := q.Data

	user, err := b.repo.GetOrCreateUser(
		q.From.ID,
		q.From.UserName,
		q.From.FirstName,
		q.From.LastName,
	)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	svc := service.NewService(b.repo, user)

	switch {
	case data == CallbackPickNew:
		if !b.teach.BeginCustomCategoryInput(uid) {
			b.answer(q, "Нет ожидающих записей.")
			return
		}
		edit := tgbotapi.NewEditMessageText(chatID, q.Message.MessageID,
			"Введи название новой категории одним сообщением или нажми «Отмена».")
		b.send(chatID, edit)
		b.answer(q, "")

	case data == CallbackPickSkip:
		if _, ok := b.teach.Skip(uid); !ok {
			b.answer(q, "Нет ожидающих записей.")
			return
		}
		b.clearMarkup(chatID, q.Message.MessageID)
		b.answer(q, "Пропустил")
		if b.teach.HasPending(uid) {
			b.askNextPending(chatID, uid)
		}

	case strings.HasPrefix(data, CallbackPickCategory):
		category := data[len(CallbackPickCategory):]
		b.clearMarkup(chatID, q.Message.MessageID)
		b.resolveFront(chatID, uid, category, svc)
		b.answer(q, "")

	case data == CallbackCancel:
		n := b.teach.CancelAll(uid)
		b.clearMarkup(chatID, q.Message.MessageID)
		if n > 0 {
			b.answer(q, "Отменено")
		} else {
			b.answer(q, "")
		}

	case strings.HasPrefix(data, CallbackRecurringDel):
		b.handleDeleteRecurring(q, svc)

	case strings.HasPrefix(data, CallbackDelete):
		b.handleDeleteOperation(q, svc)

	case data == CallbackExportPDF:
		b.answer(q, "Готовлю PDF…")
		b.sendPDFExport(chatID, svc)

	case data == CallbackExportXLSX:
		b.answer(q, "Готовлю XLSX…")
		b.sendXLSXExport(chatID, svc)

	case data == CallbackToggleNotifs:
		enabled := !user.NotificationsEnabled
		if err := svc.SetNotifications(enabled); err != nil {
			b.sendError(chatID, err)
			return
		}
		user.NotificationsEnabled = enabled
		b.answer(q, "")
		b.showSettingsMenu(chatID, user)

	default:
		b.answer(q, "")
	}
}

func (b *Bot) handleDeleteOperation(q *tgbotapi.CallbackQuery, svc *service.FinanceService) {
	chatID := q.From.ID
	data := q.Data[len(CallbackDelete):]

	if data == "close" {
		b.clearMarkup(chatID, q.Message.MessageID)
		b.answer(q, "")
		return
	}

	id, err := strconv.Atoi(data)
	if err != nil {
		b.answer(q, "Не понял, что удалять.")
		return
	}

	ok, err := svc.DeleteOperation(id)
	if err != nil {
		logger.Error("delete operation", "id", id, "error", err)
		b.answer(q, "Не получилось удалить.")
		return
	}
	if ok {
		b.answer(q, "Удалено")
	} else {
		b.answer(q, "Не нашёл запись.")
	}
	b.clearMarkup(chatID, q.Message.MessageID)
}

func (b *Bot) handleDeleteRecurring(q *tgbotapi.CallbackQuery, svc *service.FinanceService) {
	chatID := q.From.ID
	id, err := strconv.Atoi(q.Data[len(CallbackRecurringDel):])
	if err != nil {
		b.answer(q, "Не понял, что удалять.")
		return
	}

	ok, err := svc.DeleteRecurring(id)
	if err != nil {
		logger.Error("delete recurring", "id", id, "error", err)
		b.answer(q, "Не получилось удалить.")
		return
	}
	if ok {
		b.answer(q, "Удалено")
	} else {
		b.answer(q, "Не нашёл запись.")
	}
	b.clearMarkup(chatID, q.Message.MessageID)
}

func (b *Bot) answer(q *tgbotapi.CallbackQuery, text string) {
	if _, err := b.bot.Request(tgbotapi.NewCallback(q.ID, text)); err != nil {
		logger.Debug("callback answer failed", "error", err)
	}
}

func (b *Bot) clearMarkup(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.bot.Send(edit); err != nil {
		logger.Debug("clear markup failed", "error", err)
	}
}
