package handlers

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/budgetmind/budget_bot/internal/learning"
	"github.com/budgetmind/budget_bot/internal/logger"
	"github.com/budgetmind/budget_bot/internal/parser"
	"github.com/budgetmind/budget_bot/internal/repository"
	"github.com/budgetmind/budget_bot/internal/teaching"
)

const (
	CallbackPickCategory = "pickcat:"
	CallbackPickNew      = "pickcat:__new__"
	CallbackPickSkip     = "pickcat:__skip__"
	CallbackCancel       = "cancel"
	CallbackDelete       = "del:"
	CallbackRecurringDel = "recdel:"
	CallbackExportPDF    = "export_pdf"
	CallbackExportXLSX   = "export_xlsx"
	CallbackToggleNotifs = "toggle_notifs"
)

type Bot struct {
	bot       *tgbotapi.BotAPI
	repo      *repository.SQLiteRepository
	parser    *parser.Parser
	learn     *learning.Service
	teach     *teaching.Manager
	reportGen *ReportGenerator
}

func NewBot(token string, repo *repository.SQLiteRepository, p *parser.Parser, learn *learning.Service) (*Bot, error) {
	logger.Info("Creating new bot instance")
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", "error", err)
		return nil, err
	}

	bot := &Bot{
		bot:    botAPI,
		repo:   repo,
		parser: p,
		learn:  learn,
		teach:  teaching.NewManager(),
	}
	bot.reportGen = NewReportGenerator(bot)

	logger.Info("Bot created successfully", "username", botAPI.Self.UserName)
	return bot, nil
}

func (b *Bot) Start() {
	logger.Info("Bot started", "username", b.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	for upd := range b.bot.GetUpdatesChan(u) {
		if upd.Message != nil {
			b.handleMessage(upd.Message)
		} else if upd.CallbackQuery != nil {
			b.handleCallback(upd.CallbackQuery)
		}
	}
}

// Notify реализует scheduler.Notifier.
func (b *Bot) Notify(telegramID int64, text string) {
	b.send(telegramID, tgbotapi.NewMessage(telegramID, text))
}

func (b *Bot) send(chatID int64, c tgbotapi.Chattable) {
	if _, err := b.bot.Send(c); err != nil {
		logger.Error("Error sending message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendError(chatID int64, err error) {
	logger.Warn("Sending error to user", "chat_id", chatID, "error", err)
	b.send(chatID, tgbotapi.NewMessage(chatID, fmt.Sprintf("⚠️ Ошибка: %s", err.Error())))
}

func (b *Bot) sendMainMenu(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🧾 Записи за сегодня"),
			tgbotapi.NewKeyboardButton("📊 Отчёт"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📄 Экспорт"),
			tgbotapi.NewKeyboardButton("⚙️ Настройки"),
		),
	)
	b.send(chatID, msg)
}

// kbPickCategory — клавиатура выбора категории; подписи кнопок — это
// ровно названия категорий, они же ключи обучения.
func kbPickCategory() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range parser.PickList {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c, CallbackPickCategory+c))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить свою…", CallbackPickNew),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Пропустить", CallbackPickSkip),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Отмена", CallbackCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func kbDeleteOps(labels []opLabel) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, l := range labels {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑 "+l.text, CallbackDelete+strconv.Itoa(l.id)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Закрыть", CallbackDelete+"close"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

type opLabel struct {
	text string
	id   int
}
