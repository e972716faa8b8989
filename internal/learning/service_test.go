package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetmind/budget_bot/internal/config"
)

type memStore struct {
	data map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]map[string]string)}
}

func (m *memStore) Get(scope, term string) (string, bool, error) {
	cat, ok := m.data[scope][term]
	return cat, ok, nil
}

func (m *memStore) Upsert(scope, term, category string) error {
	if m.data[scope] == nil {
		m.data[scope] = make(map[string]string)
	}
	m.data[scope][term] = category
	return nil
}

func (m *memStore) Terms(scope string) (map[string]string, error) {
	out := make(map[string]string, len(m.data[scope]))
	for k, v := range m.data[scope] {
		out[k] = v
	}
	return out, nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(store, config.DefaultFuzzyUserThreshold, config.DefaultFuzzyGlobalThreshold), store
}

func TestSaveAndLookupExact(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.SaveUserTerm(1, "Кириешки", "Еда и напитки"))

	cat, ok := svc.LearnedCategory(1, "кириешки")
	require.True(t, ok)
	assert.Equal(t, "Еда и напитки", cat)

	// Терм другого пользователя не виден.
	_, ok = svc.LearnedCategory(2, "кириешки")
	assert.False(t, ok)
}

func TestUserBeatsGlobal(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.SaveGlobalTerm("пряники", "Еда и напитки"))
	require.NoError(t, svc.SaveUserTerm(1, "пряники", "Развлечения"))

	cat, ok := svc.LearnedCategory(1, "пряники")
	require.True(t, ok)
	assert.Equal(t, "Развлечения", cat)

	cat, ok = svc.LearnedCategory(2, "пряники")
	require.True(t, ok)
	assert.Equal(t, "Еда и напитки", cat)
}

func TestUpsertOverwrites(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.SaveUserTerm(1, "квас", "Еда и напитки"))
	require.NoError(t, svc.SaveUserTerm(1, "квас", "Алкоголь"))

	cat, ok := svc.LearnedCategory(1, "квас")
	require.True(t, ok)
	assert.Equal(t, "Алкоголь", cat)
}

func TestFuzzyUserMatch(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.SaveUserTerm(1, "капучино", "Еда и напитки"))

	// Одна вставка на 9 рун: 1 - 1/9 ≈ 0.889 >= 0.88.
	cat, ok := svc.LearnedCategory(1, "капучинос")
	require.True(t, ok)
	assert.Equal(t, "Еда и напитки", cat)
}

func TestFuzzyGlobalStricter(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.SaveGlobalTerm("капучино", "Еда и напитки"))

	// 0.889 проходит пользовательский порог, но не глобальный 0.90.
	_, ok := svc.LearnedCategory(1, "капучинос")
	assert.False(t, ok)
}

func TestFuzzyMissOnDifferentWord(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.SaveUserTerm(1, "капучино", "Еда и напитки"))

	_, ok := svc.LearnedCategory(1, "пельмени")
	assert.False(t, ok)
}

func TestSaveEmptyTermFails(t *testing.T) {
	svc, _ := newTestService()

	assert.Error(t, svc.SaveUserTerm(1, "   ", "Еда и напитки"))
	assert.Error(t, svc.SaveUserTerm(1, "квас", ""))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("такси", "такси"))
	assert.Equal(t, 0.0, similarity("", "такси"))
	assert.InDelta(t, 0.888, similarity("капучино", "капучинос"), 0.01)
	assert.Less(t, similarity("кофе", "такси"), 0.5)
}
