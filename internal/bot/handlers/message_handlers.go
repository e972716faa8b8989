package handlers

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/budgetmind/budget_bot/internal/logger"
	"github.com/budgetmind/budget_bot/internal/parser"
	"github.com/budgetmind/budget_bot/internal/periods"
	"github.com/budgetmind/budget_bot/internal/repository"
	"github.com/budgetmind/budget_bot/internal/service"
	"github.com/budgetmind/budget_bot/internal/teaching"
)

var confirmSaveVariants = []string{
	"✅ Записал: «%s» (%s) — %s%.2f BYN",
	"✅ Готово: «%s» (%s) — %s%.2f BYN",
	"✅ Сохранил: «%s» (%s) — %s%.2f BYN",
}

func confirmText(term, category, sign string, amount float64) string {
	return fmt.Sprintf(confirmSaveVariants[rand.Intn(len(confirmSaveVariants))], term, category, sign, amount)
}

func (b *Bot) handleMessage(m *tgbotapi.Message) {
	logger.LogCommand(m.From.UserName, m.Text)

	user, err := b.repo.GetOrCreateUser(
		m.From.ID,
		m.From.UserName,
		m.From.FirstName,
		m.From.LastName,
	)
	if err != nil {
		logger.LogError(m.From.UserName, fmt.Sprintf("Ошибка получения пользователя: %v", err))
		b.sendError(m.Chat.ID, err)
		return
	}

	svc := service.NewService(b.repo, user)

	switch m.Text {
	case "/start":
		welcomeMsg := `👋 <b>Привет! Я веду учёт твоих финансов.</b>

Просто пиши мне траты и доходы свободным текстом:
• <code>кофе 4,50</code>
• <code>такси -7</code>
• <code>+200 партнёрка</code>

Можно сразу несколько строк одним сообщением. Незнакомые слова я спрошу один раз — и запомню.

📊 Отчёты: напиши «отчёт за неделю» или «сколько потратил за август».`
		msg := tgbotapi.NewMessage(m.Chat.ID, welcomeMsg)
		msg.ParseMode = "HTML"
		b.send(m.Chat.ID, msg)
		b.sendMainMenu(m.Chat.ID, "Выбирай действие или пиши трату:")

	case "/cancel":
		b.cancelTeaching(m.Chat.ID, m.From.ID)

	case "/records", "🧾 Записи за сегодня":
		b.showRecords(m.Chat.ID, svc)

	case "📊 Отчёт":
		b.send(m.Chat.ID, tgbotapi.NewMessage(m.Chat.ID,
			"За какой период? Напиши, например: «за неделю», «за месяц», «за август», «за 3 дня»."))

	case "📄 Экспорт":
		b.showExportMenu(m.Chat.ID)

	case "⚙️ Настройки":
		b.showSettingsMenu(m.Chat.ID, user)

	case "/recurring":
		b.showRecurring(m.Chat.ID, svc)

	case "/balance":
		b.showBalance(m.Chat.ID, svc)

	case "/reminders":
		b.showReminders(m.Chat.ID, svc)

	default:
		if strings.HasPrefix(m.Text, "/remind") {
			b.handleRemind(m.Chat.ID, m.Text, svc)
			return
		}
		b.handleFreeText(m, user, svc)
	}
}

// handleFreeText — главный вход: свободный текст это либо имя новой
// категории (если мы его ждём), либо быстрое обучение, либо запрос отчёта,
// либо пачка строк с операциями.
func (b *Bot) handleFreeText(m *tgbotapi.Message, user *repository.User, svc *service.FinanceService) {
	uid := m.From.ID
	raw := strings.TrimSpace(m.Text)
	if raw == "" {
		return
	}

	// Этап ввода своей категории: текст — имя категории, не операция.
	if b.teach.AwaitingCustom(uid) {
		b.finishCustomCategory(m.Chat.ID, uid, raw, svc)
		return
	}

	lower := strings.ToLower(raw)

	// Быстрое обучение: "обучи: термин = Категория".
	if strings.HasPrefix(lower, "обучи:") {
		b.handleQuickTeach(m.Chat.ID, uid, raw)
		return
	}

	// Повторяющаяся операция: "повтор: сумма = Категория = период [= ЧЧ:ММ]".
	if strings.HasPrefix(lower, "повтор:") {
		b.handleAddRecurring(m.Chat.ID, raw, svc)
		return
	}

	// Запрос отчёта не должен уходить в парсер операций.
	if p, ok := isReportRequest(lower, time.Now()); ok {
		b.showSummary(m.Chat.ID, svc, p)
		return
	}

	// Мультистрочный ввод: каждая строка — отдельная операция; строки без
	// суммы молча пропускаются.
	var confirmations []string
	parsedAny := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parsed := b.parser.ParseLine(line, uid)
		if parsed == nil {
			continue
		}
		parsedAny = true

		if parser.IsSentinel(parsed.Category) {
			b.teach.EnqueueUnknown(uid, teaching.PendingItem{
				Amount: parsed.Amount,
				Type:   parsed.Type,
				Term:   parsed.Term,
				Raw:    parsed.Raw,
			})
			continue
		}

		if _, err := svc.AddOperation(parsed.Amount, parsed.Type, parsed.Category, parsed.Raw); err != nil {
			b.sendError(m.Chat.ID, err)
			continue
		}
		logger.LogOperation(uid, parsed.Type, parsed.Amount.InexactFloat64(), parsed.Category)
		confirmations = append(confirmations, confirmText(parsed.Term, parsed.Category, signOf(parsed.Type), parsed.Amount.InexactFloat64()))
	}

	if len(confirmations) > 0 {
		msg := tgbotapi.NewMessage(m.Chat.ID, strings.Join(confirmations, "\n"))
		msg.ParseMode = "HTML"
		b.send(m.Chat.ID, msg)
	}

	if b.teach.HasPending(uid) {
		b.askNextPending(m.Chat.ID, uid)
		return
	}

	if !parsedAny && len(confirmations) == 0 {
		b.sendMainMenu(m.Chat.ID, "🤔 Не нашёл в сообщении суммы. Напиши, например: <code>кофе 4,50</code>")
	}
}

// isReportRequest решает, просит ли пользователь отчёт: текст содержит период
// и либо отчётные слова, либо все его цифры принадлежат самой фразе периода
// («за 3 дня» — отчёт, «вчера такси 10» — операция).
func isReportRequest(lower string, now time.Time) (periods.Period, bool) {
	p, ok := periods.Parse(lower, now)
	if !ok {
		return periods.Period{}, false
	}
	if strings.Contains(lower, "отчет") || strings.Contains(lower, "отчёт") || strings.Contains(lower, "сколько") {
		return p, true
	}
	if !strings.ContainsAny(periods.WithoutPhrase(lower), "0123456789") {
		return p, true
	}
	return periods.Period{}, false
}

// askNextPending показывает первую запись очереди с клавиатурой категорий.
func (b *Bot) askNextPending(chatID, uid int64) {
	item, ok := b.teach.NextPending(uid)
	if !ok {
		return
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Я пока не выучил слово «%s». К какой категории это относится?\nВыбери из списка или добавь свою.", item.Term))
	msg.ReplyMarkup = kbPickCategory()
	b.send(chatID, msg)
}

// finishCustomCategory — пользователь прислал имя своей категории.
func (b *Bot) finishCustomCategory(chatID, uid int64, text string, svc *service.FinanceService) {
	category := strings.TrimSpace(text)
	if category == "" {
		b.send(chatID, tgbotapi.NewMessage(chatID, "Пусто. Введи название категории или нажми «Отмена»."))
		return
	}
	b.resolveFront(chatID, uid, category, svc)
}

// resolveFront снимает первую запись очереди: сохраняет операцию, учит
// термин, зовёт следующую.
func (b *Bot) resolveFront(chatID, uid int64, category string, svc *service.FinanceService) {
	item, ok := b.teach.ResolvePending(uid)
	if !ok {
		// Запоздалое нажатие: очередь уже пуста. Не ошибка.
		b.send(chatID, tgbotapi.NewMessage(chatID, "Нет ожидающих записей."))
		return
	}

	if _, err := svc.AddOperation(item.Amount, item.Type, category, item.Raw); err != nil {
		b.sendError(chatID, err)
		return
	}
	if err := b.learn.SaveUserTerm(uid, item.Term, category); err != nil {
		logger.Error("save learned term", "term", item.Term, "error", err)
	} else {
		logger.LogTeach(uid, item.Term, category)
	}

	msg := tgbotapi.NewMessage(chatID, confirmText(item.Term, category, signOf(item.Type), item.Amount.InexactFloat64()))
	msg.ParseMode = "HTML"
	b.send(chatID, msg)

	if b.teach.HasPending(uid) {
		b.askNextPending(chatID, uid)
	}
}

// handleQuickTeach: "обучи: термин = Категория" — запись маппинга без
// ожидающей операции.
func (b *Bot) handleQuickTeach(chatID, uid int64, raw string) {
	tail := strings.TrimSpace(raw[len("обучи:"):])
	parts := strings.SplitN(tail, "=", 2)
	if len(parts) != 2 {
		msg := tgbotapi.NewMessage(chatID, "Формат: <code>обучи: термин = Категория</code>")
		msg.ParseMode = "HTML"
		b.send(chatID, msg)
		return
	}
	term := strings.TrimSpace(parts[0])
	category := strings.TrimSpace(parts[1])
	if term == "" || category == "" {
		msg := tgbotapi.NewMessage(chatID, "Формат: <code>обучи: термин = Категория</code>")
		msg.ParseMode = "HTML"
		b.send(chatID, msg)
		return
	}

	if err := b.learn.SaveUserTerm(uid, term, category); err != nil {
		b.sendError(chatID, err)
		return
	}
	logger.LogTeach(uid, term, category)
	b.send(chatID, tgbotapi.NewMessage(chatID, fmt.Sprintf("Выучил: «%s» → %s", term, category)))
}

const recurringUsage = "Формат: <code>повтор: 12 = Подписки = месяц = 09:00</code>\nПериод: день, неделя или месяц; время необязательно."

// handleAddRecurring: "повтор: сумма = Категория = период [= ЧЧ:ММ]".
// Знак суммы определяет тип, по умолчанию расход.
func (b *Bot) handleAddRecurring(chatID int64, raw string, svc *service.FinanceService) {
	usage := func() {
		msg := tgbotapi.NewMessage(chatID, recurringUsage)
		msg.ParseMode = "HTML"
		b.send(chatID, msg)
	}

	tail := strings.TrimSpace(raw[len("повтор:"):])
	parts := strings.Split(tail, "=")
	if len(parts) < 3 || len(parts) > 4 {
		usage()
		return
	}

	amountStr := strings.ReplaceAll(strings.TrimSpace(parts[0]), ",", ".")
	opType := parser.TypeExpense
	if strings.HasPrefix(amountStr, "+") {
		opType = parser.TypeIncome
	}
	amount, err := strconv.ParseFloat(strings.TrimLeft(amountStr, "+-"), 64)
	if err != nil || amount <= 0 {
		usage()
		return
	}

	category := strings.TrimSpace(parts[1])
	if category == "" {
		usage()
		return
	}

	period := recurringPeriod(strings.ToLower(strings.TrimSpace(parts[2])))
	if period == "" {
		usage()
		return
	}

	hour, minute := 9, 0
	if len(parts) == 4 {
		if hour, minute, err = parseClock(strings.TrimSpace(parts[3])); err != nil {
			usage()
			return
		}
	}

	if _, err := svc.AddRecurring(repository.RecurringOp{
		Amount:      amount,
		Category:    category,
		Description: tail,
		Type:        opType,
		Period:      period,
		Hour:        hour,
		Minute:      minute,
		NextRun:     firstRun(time.Now(), hour, minute),
	}); err != nil {
		b.sendError(chatID, err)
		return
	}

	b.send(chatID, tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"🔁 Добавил: %s — %.2f BYN, %s в %02d:%02d", category, amount, periodLabel(period), hour, minute)))
}

func recurringPeriod(s string) string {
	switch {
	case strings.HasPrefix(s, "ден") || strings.HasPrefix(s, "дн") || s == "daily":
		return "daily"
	case strings.HasPrefix(s, "недел") || s == "weekly":
		return "weekly"
	case strings.HasPrefix(s, "месяц") || s == "monthly":
		return "monthly"
	}
	return ""
}

func parseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// firstRun — ближайшее время ЧЧ:ММ: сегодня, если ещё не прошло, иначе завтра.
func firstRun(now time.Time, hour, minute int) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if at.After(now) {
		return at
	}
	return at.AddDate(0, 0, 1)
}

func (b *Bot) cancelTeaching(chatID, uid int64) {
	n := b.teach.CancelAll(uid)
	if n == 0 {
		b.send(chatID, tgbotapi.NewMessage(chatID, "Нечего отменять."))
		return
	}
	b.send(chatID, tgbotapi.NewMessage(chatID, fmt.Sprintf("Отменено, пропущено записей: %d.", n)))
}

func signOf(opType string) string {
	if opType == parser.TypeIncome {
		return "+"
	}
	return "-"
}
