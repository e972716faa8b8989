package learning

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/budgetmind/budget_bot/internal/logger"
)

// document — формат файла categories.json:
//
//	{
//	  "global": { "капучино": "Еда и напитки" },
//	  "users":  { "123456789": { "кириешки": "Еда и напитки" } }
//	}
type document struct {
	Global map[string]string            `json:"global"`
	Users  map[string]map[string]string `json:"users"`
}

// FileStore держит все термины одним JSON-документом: ленивая загрузка при
// первом обращении, полная перезапись файла на каждой мутации. Битый файл
// молча переинициализируется пустым — хранилище не настолько авторитетно,
// чтобы ронять процесс.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  *document
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Get(scope, term string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return "", false, err
	}
	cat, ok := f.scopeMap(doc, scope)[term]
	return cat, ok, nil
}

func (f *FileStore) Upsert(scope, term, category string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if scope == GlobalScope {
		doc.Global[term] = category
	} else {
		m := doc.Users[scope]
		if m == nil {
			m = make(map[string]string)
			doc.Users[scope] = m
		}
		m[term] = category
	}
	return f.flush(doc)
}

func (f *FileStore) Terms(scope string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	src := f.scopeMap(doc, scope)
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out, nil
}

func (f *FileStore) scopeMap(doc *document, scope string) map[string]string {
	if scope == GlobalScope {
		return doc.Global
	}
	return doc.Users[scope]
}

func (f *FileStore) load() (*document, error) {
	if f.doc != nil {
		return f.doc, nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return nil, fmt.Errorf("create learning dir: %w", err)
	}

	doc := emptyDocument()
	data, err := os.ReadFile(f.path)
	switch {
	case os.IsNotExist(err):
		if err := f.flushTo(doc); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("read learning store: %w", err)
	default:
		if jsonErr := json.Unmarshal(data, doc); jsonErr != nil || doc.Global == nil || doc.Users == nil {
			logger.Warn("learning store unreadable, reinitializing", "path", f.path, "error", jsonErr)
			doc = emptyDocument()
			if err := f.flushTo(doc); err != nil {
				return nil, err
			}
		}
	}

	f.doc = doc
	return doc, nil
}

func (f *FileStore) flush(doc *document) error {
	f.doc = doc
	return f.flushTo(doc)
}

func (f *FileStore) flushTo(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode learning store: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write learning store: %w", err)
	}
	return nil
}

func emptyDocument() *document {
	return &document{
		Global: make(map[string]string),
		Users:  make(map[string]map[string]string),
	}
}
