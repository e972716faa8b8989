package handlers

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/budgetmind/budget_bot/internal/parser"
	"github.com/budgetmind/budget_bot/internal/periods"
	"github.com/budgetmind/budget_bot/internal/repository"
	"github.com/budgetmind/budget_bot/internal/service"
)

// showRecords — список записей за сегодня с кнопками удаления.
func (b *Bot) showRecords(chatID int64, svc *service.FinanceService) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	ops, err := svc.OperationsForPeriod(start, start.AddDate(0, 0, 1))
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	if len(ops) == 0 {
		b.send(chatID, tgbotapi.NewMessage(chatID, "🧾 За сегодня записей нет."))
		return
	}

	lines := []string{"🧾 <b>Записи за сегодня:</b>", ""}
	var labels []opLabel
	var totalExp, totalInc float64
	for i, o := range ops {
		val := math.Abs(o.Amount)
		sign := "-"
		if o.Type == parser.TypeIncome {
			sign = "+"
			totalInc += val
		} else {
			totalExp += val
		}
		name := parser.CleanName(o.Description, o.Category)
		lines = append(lines, fmt.Sprintf("%d. %s — %s%.2f BYN", i+1, name, sign, val))
		labels = append(labels, opLabel{text: fmt.Sprintf("%s %s%.2f", name, sign, val), id: o.ID})
	}

	lines = append(lines, "", fmt.Sprintf("💵 <b>Итого расходов:</b> -%.2f BYN", totalExp))
	if totalInc > 0 {
		lines = append(lines, fmt.Sprintf("💵 <b>Итого доходов:</b> +%.2f BYN", totalInc))
	}

	msg := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = kbDeleteOps(labels)
	b.send(chatID, msg)
}

// showSummary — сводка по категориям за период из свободного текста.
func (b *Bot) showSummary(chatID int64, svc *service.FinanceService, p periods.Period) {
	ops, err := svc.OperationsForPeriod(p.Start, p.End.AddDate(0, 0, 1))
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	if len(ops) == 0 {
		b.send(chatID, tgbotapi.NewMessage(chatID, fmt.Sprintf("📊 За период «%s» записей нет.", p.String())))
		return
	}

	var totalInc, totalExp float64
	incByCat := make(map[string]float64)
	expByCat := make(map[string]float64)
	for _, o := range ops {
		val := math.Abs(o.Amount)
		if o.Type == parser.TypeIncome {
			totalInc += val
			incByCat[o.Category] += val
		} else {
			totalExp += val
			expByCat[o.Category] += val
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 <b>Отчёт: %s</b>\n\n", p.String())
	if totalExp > 0 {
		fmt.Fprintf(&sb, "💸 <b>Расходы:</b> %.2f BYN\n", totalExp)
		for _, cat := range sortedCategories(expByCat) {
			fmt.Fprintf(&sb, "┣ 📉 %s: %.2f BYN\n", cat, expByCat[cat])
		}
		sb.WriteString("\n")
	}
	if totalInc > 0 {
		fmt.Fprintf(&sb, "💵 <b>Доходы:</b> %.2f BYN\n", totalInc)
		for _, cat := range sortedCategories(incByCat) {
			fmt.Fprintf(&sb, "┣ 📈 %s: %.2f BYN\n", cat, incByCat[cat])
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "━━━━━━━━━━━━━━━━\n💰 <b>Баланс:</b> %+.2f BYN", totalInc-totalExp)

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ParseMode = "HTML"
	b.send(chatID, msg)
}

func (b *Bot) showSettingsMenu(chatID int64, user *repository.User) {
	notifLabel := "🔕 Выключить напоминания"
	if !user.NotificationsEnabled {
		notifLabel = "🔔 Включить напоминания"
	}
	msg := tgbotapi.NewMessage(chatID, "⚙️ <b>Настройки</b>")
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(notifLabel, CallbackToggleNotifs),
		),
	)
	b.send(chatID, msg)
}

func (b *Bot) showExportMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "📄 Экспорт операций за текущий месяц:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📑 PDF", CallbackExportPDF),
			tgbotapi.NewInlineKeyboardButtonData("📊 XLSX", CallbackExportXLSX),
		),
	)
	b.send(chatID, msg)
}

func (b *Bot) showRecurring(chatID int64, svc *service.FinanceService) {
	recs, err := svc.ListRecurring()
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	if len(recs) == 0 {
		msg := tgbotapi.NewMessage(chatID,
			"🔁 Повторяющихся операций нет.\nДобавить: <code>повтор: 12 = Подписки = месяц = 09:00</code>")
		msg.ParseMode = "HTML"
		b.send(chatID, msg)
		return
	}
	lines := []string{"🔁 <b>Повторяющиеся операции:</b>", ""}
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, r := range recs {
		lines = append(lines, fmt.Sprintf("%d. %s — %.2f BYN, %s в %02d:%02d (след.: %s)",
			i+1, r.Category, r.Amount, periodLabel(r.Period), r.Hour, r.Minute, r.NextRun.Format("02.01 15:04")))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 %s %.2f", r.Category, r.Amount),
				CallbackRecurringDel+strconv.Itoa(r.ID)),
		))
	}
	lines = append(lines, "", "Добавить: <code>повтор: 12 = Подписки = месяц = 09:00</code>")
	msg := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(chatID, msg)
}

func periodLabel(period string) string {
	switch period {
	case "daily":
		return "ежедневно"
	case "weekly":
		return "еженедельно"
	default:
		return "ежемесячно"
	}
}

func (b *Bot) monthPeriod() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

func (b *Bot) sendPDFExport(chatID int64, svc *service.FinanceService) {
	start, end := b.monthPeriod()
	data, err := b.reportGen.GeneratePDFReport(svc, start, end)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("report_%s.pdf", start.Format("2006-01")),
		Bytes: data,
	})
	b.send(chatID, doc)
}

func (b *Bot) sendXLSXExport(chatID int64, svc *service.FinanceService) {
	start, end := b.monthPeriod()
	ops, err := svc.OperationsForPeriod(start, end)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	data, err := BuildXLSX(ops, start, end)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("operations_%s.xlsx", start.Format("2006-01")),
		Bytes: data,
	})
	b.send(chatID, doc)
}

func sortedCategories(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
