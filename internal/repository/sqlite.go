package repository

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

type User struct {
	ID                   int
	TelegramID           int64
	Username             string
	FirstName            string
	LastName             string
	CreatedAt            time.Time
	NotificationsEnabled bool
}

// Operation — сохранённая запись. Amount подписанный: расходы
// отрицательные, доходы положительные.
type Operation struct {
	ID          int
	UserID      int
	Amount      float64
	Currency    string
	Type        string // income | expense
	Category    string
	Description string
	CreatedAt   time.Time
}

// Reminder — разовое напоминание.
type Reminder struct {
	ID         int
	UserID     int
	TelegramID int64
	Text       string
	RemindAt   time.Time
	Done       bool
}

// RecurringOp — повторяющаяся операция с ближайшим временем срабатывания.
type RecurringOp struct {
	ID          int
	UserID      int
	Amount      float64
	Category    string
	Description string
	Type        string
	Period      string // daily | weekly | monthly
	Hour        int
	Minute      int
	NextRun     time.Time
}

func NewSQLiteDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open DB: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return db, nil
}

func InitDB(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	telegram_id INTEGER NOT NULL UNIQUE,
	username TEXT,
	first_name TEXT,
	last_name TEXT,
	created_at TEXT NOT NULL,
	notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS operations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	amount REAL NOT NULL,
	currency TEXT NOT NULL DEFAULT 'BYN',
	type TEXT NOT NULL CHECK(type IN ('income','expense')),
	category TEXT NOT NULL,
	description TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS learned_terms (
	scope TEXT NOT NULL,
	term TEXT NOT NULL,
	category TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY(scope, term)
);

CREATE TABLE IF NOT EXISTS recurring_ops (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	amount REAL NOT NULL,
	category TEXT NOT NULL,
	description TEXT,
	type TEXT NOT NULL CHECK(type IN ('income','expense')),
	period TEXT NOT NULL CHECK(period IN ('daily','weekly','monthly')),
	hour INTEGER NOT NULL,
	minute INTEGER NOT NULL,
	next_run TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS reminders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	text TEXT NOT NULL,
	remind_at TEXT NOT NULL,
	done BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TEXT NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_operations_created ON operations(created_at);
CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(done, remind_at);
CREATE INDEX IF NOT EXISTS idx_operations_user ON operations(user_id);
CREATE INDEX IF NOT EXISTS idx_recurring_next_run ON recurring_ops(next_run);
`
	_, err := db.Exec(schema)
	return err
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetOrCreateUser(telegramID int64, username, firstName, lastName string) (*User, error) {
	var user User
	var createdAt string

	err := r.db.QueryRow(
		"SELECT id, telegram_id, username, first_name, last_name, created_at, notifications_enabled FROM users WHERE telegram_id = ?",
		telegramID,
	).Scan(&user.ID, &user.TelegramID, &user.Username, &user.FirstName, &user.LastName, &createdAt, &user.NotificationsEnabled)

	if err == nil {
		user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		return &user, nil
	}

	if err == sql.ErrNoRows {
		res, err := r.db.Exec(
			"INSERT INTO users (telegram_id, username, first_name, last_name, created_at) VALUES (?, ?, ?, ?, ?)",
			telegramID, username, firstName, lastName, time.Now().Format(time.RFC3339),
		)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}

		id, _ := res.LastInsertId()
		return &User{
			ID:                   int(id),
			TelegramID:           telegramID,
			Username:             username,
			FirstName:            firstName,
			LastName:             lastName,
			CreatedAt:            time.Now(),
			NotificationsEnabled: true,
		}, nil
	}

	return nil, fmt.Errorf("get user: %w", err)
}

func (r *SQLiteRepository) GetAllUsers() ([]User, error) {
	rows, err := r.db.Query("SELECT id, telegram_id, notifications_enabled FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.TelegramID, &u.NotificationsEnabled); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *SQLiteRepository) UpdateUserNotifications(userID int, enabled bool) error {
	_, err := r.db.Exec(
		"UPDATE users SET notifications_enabled = ? WHERE id = ?",
		enabled, userID,
	)
	return err
}

func (r *SQLiteRepository) AddOperation(userID int, op Operation) (int, error) {
	res, err := r.db.Exec(
		"INSERT INTO operations(user_id, amount, currency, type, category, description, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		userID, op.Amount, op.Currency, op.Type, op.Category, op.Description, op.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert operation: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

func (r *SQLiteRepository) GetOperationsByPeriod(userID int, start, end time.Time) ([]Operation, error) {
	rows, err := r.db.Query(
		"SELECT id, amount, currency, type, category, description, created_at FROM operations WHERE user_id = ? AND created_at >= ? AND created_at < ? ORDER BY created_at",
		userID, start.Format(time.RFC3339), end.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var res []Operation
	for rows.Next() {
		var o Operation
		var desc sql.NullString
		var created string
		if err := rows.Scan(&o.ID, &o.Amount, &o.Currency, &o.Type, &o.Category, &desc, &created); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		o.Description = desc.String
		o.CreatedAt, _ = time.Parse(time.RFC3339, created)
		o.UserID = userID
		res = append(res, o)
	}
	return res, nil
}

func (r *SQLiteRepository) DeleteOperation(userID, id int) (bool, error) {
	res, err := r.db.Exec(
		"DELETE FROM operations WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *SQLiteRepository) HasOperationsToday(userID int) (bool, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM operations WHERE user_id = ? AND created_at >= ? AND created_at < ?",
		userID, start.Format(time.RFC3339), end.Format(time.RFC3339),
	).Scan(&count)

	return count > 0, err
}

// Balance — сумма всех операций пользователя за всё время; суммы подписанные,
// так что это доходы минус расходы.
func (r *SQLiteRepository) Balance(userID int) (float64, error) {
	var balance float64
	err := r.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM operations WHERE user_id = ?",
		userID,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("balance: %w", err)
	}
	return balance, nil
}

// --- Разовые напоминания ---

func (r *SQLiteRepository) AddReminder(userID int, text string, remindAt time.Time) (int, error) {
	res, err := r.db.Exec(
		"INSERT INTO reminders(user_id, text, remind_at, created_at) VALUES(?, ?, ?, ?)",
		userID, text, remindAt.Format(time.RFC3339), time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert reminder: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

func (r *SQLiteRepository) DueReminders(now time.Time) ([]Reminder, error) {
	rows, err := r.db.Query(
		`SELECT r.id, r.user_id, u.telegram_id, r.text, r.remind_at
		 FROM reminders r JOIN users u ON u.id = r.user_id
		 WHERE r.done = FALSE AND r.remind_at <= ?
		 ORDER BY r.remind_at`,
		now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	defer rows.Close()

	var res []Reminder
	for rows.Next() {
		var rem Reminder
		var at string
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.TelegramID, &rem.Text, &at); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		rem.RemindAt, _ = time.Parse(time.RFC3339, at)
		res = append(res, rem)
	}
	return res, nil
}

func (r *SQLiteRepository) MarkReminderDone(id int) error {
	_, err := r.db.Exec("UPDATE reminders SET done = TRUE WHERE id = ?", id)
	return err
}

// RemindersForDay — несработавшие напоминания пользователя на [start, end).
func (r *SQLiteRepository) RemindersForDay(userID int, start, end time.Time) ([]Reminder, error) {
	rows, err := r.db.Query(
		"SELECT id, text, remind_at FROM reminders WHERE user_id = ? AND done = FALSE AND remind_at >= ? AND remind_at < ? ORDER BY remind_at",
		userID, start.Format(time.RFC3339), end.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("reminders for day: %w", err)
	}
	defer rows.Close()

	var res []Reminder
	for rows.Next() {
		var rem Reminder
		var at string
		if err := rows.Scan(&rem.ID, &rem.Text, &at); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		rem.RemindAt, _ = time.Parse(time.RFC3339, at)
		rem.UserID = userID
		res = append(res, rem)
	}
	return res, nil
}

// --- Выученные термины: таблица с ключом (scope, term) ---

func (r *SQLiteRepository) GetLearnedTerm(scope, term string) (string, bool, error) {
	var category string
	err := r.db.QueryRow(
		"SELECT category FROM learned_terms WHERE scope = ? AND term = ?",
		scope, term,
	).Scan(&category)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get learned term: %w", err)
	}
	return category, true, nil
}

func (r *SQLiteRepository) UpsertLearnedTerm(scope, term, category string) error {
	_, err := r.db.Exec(
		`INSERT INTO learned_terms(scope, term, category, updated_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(scope, term) DO UPDATE SET category = excluded.category, updated_at = excluded.updated_at`,
		scope, term, category, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert learned term: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) LearnedTermsByScope(scope string) (map[string]string, error) {
	rows, err := r.db.Query(
		"SELECT term, category FROM learned_terms WHERE scope = ?",
		scope,
	)
	if err != nil {
		return nil, fmt.Errorf("learned terms: %w", err)
	}
	defer rows.Close()

	res := make(map[string]string)
	for rows.Next() {
		var term, category string
		if err := rows.Scan(&term, &category); err != nil {
			return nil, fmt.Errorf("scan learned term: %w", err)
		}
		res[term] = category
	}
	return res, nil
}

// --- Повторяющиеся операции ---

func (r *SQLiteRepository) AddRecurring(userID int, rec RecurringOp) (int, error) {
	res, err := r.db.Exec(
		"INSERT INTO recurring_ops(user_id, amount, category, description, type, period, hour, minute, next_run, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		userID, rec.Amount, rec.Category, rec.Description, rec.Type, rec.Period, rec.Hour, rec.Minute,
		rec.NextRun.Format(time.RFC3339), time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert recurring: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

func (r *SQLiteRepository) DueRecurring(now time.Time) ([]RecurringOp, error) {
	rows, err := r.db.Query(
		"SELECT id, user_id, amount, category, description, type, period, hour, minute, next_run FROM recurring_ops WHERE next_run <= ?",
		now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("due recurring: %w", err)
	}
	defer rows.Close()

	var res []RecurringOp
	for rows.Next() {
		var rec RecurringOp
		var desc sql.NullString
		var next string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Amount, &rec.Category, &desc, &rec.Type, &rec.Period, &rec.Hour, &rec.Minute, &next); err != nil {
			return nil, fmt.Errorf("scan recurring: %w", err)
		}
		rec.Description = desc.String
		rec.NextRun, _ = time.Parse(time.RFC3339, next)
		res = append(res, rec)
	}
	return res, nil
}

func (r *SQLiteRepository) BumpNextRun(id int, next time.Time) error {
	_, err := r.db.Exec(
		"UPDATE recurring_ops SET next_run = ? WHERE id = ?",
		next.Format(time.RFC3339), id,
	)
	return err
}

func (r *SQLiteRepository) ListRecurring(userID int) ([]RecurringOp, error) {
	rows, err := r.db.Query(
		"SELECT id, amount, category, description, type, period, hour, minute, next_run FROM recurring_ops WHERE user_id = ? ORDER BY next_run",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recurring: %w", err)
	}
	defer rows.Close()

	var res []RecurringOp
	for rows.Next() {
		var rec RecurringOp
		var desc sql.NullString
		var next string
		if err := rows.Scan(&rec.ID, &rec.Amount, &rec.Category, &desc, &rec.Type, &rec.Period, &rec.Hour, &rec.Minute, &next); err != nil {
			return nil, fmt.Errorf("scan recurring: %w", err)
		}
		rec.Description = desc.String
		rec.NextRun, _ = time.Parse(time.RFC3339, next)
		rec.UserID = userID
		res = append(res, rec)
	}
	return res, nil
}

func (r *SQLiteRepository) DeleteRecurring(userID, id int) (bool, error) {
	res, err := r.db.Exec(
		"DELETE FROM recurring_ops WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
