package learning

// TermRepository — кусок репозитория, который нужен SQLite-бэкенду.
type TermRepository interface {
	GetLearnedTerm(scope, term string) (string, bool, error)
	UpsertLearnedTerm(scope, term, category string) error
	LearnedTermsByScope(scope string) (map[string]string, error)
}

// SQLiteStore — термины в таблице learned_terms с ключом (scope, term).
type SQLiteStore struct {
	repo TermRepository
}

func NewSQLiteStore(repo TermRepository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Get(scope, term string) (string, bool, error) {
	return s.repo.GetLearnedTerm(scope, term)
}

func (s *SQLiteStore) Upsert(scope, term, category string) error {
	return s.repo.UpsertLearnedTerm(scope, term, category)
}

func (s *SQLiteStore) Terms(scope string) (map[string]string, error) {
	return s.repo.LearnedTermsByScope(scope)
}
