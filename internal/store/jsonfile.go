package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore keeps a whole JSON object of records, keyed by id, in a single file.
// The file is read and written wholesale. A missing or corrupt file reads as an
// empty document.
type JSONStore[T any] struct {
	mu   sync.Mutex
	path string
}

func NewJSONStore[T any](path string) *JSONStore[T] {
	return &JSONStore[T]{path: path}
}

// Load returns the whole document.
func (s *JSONStore[T]) Load() map[string]T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns a single record.
func (s *JSONStore[T]) Get(id string) (T, bool) {
	data := s.Load()
	v, ok := data[id]
	return v, ok
}

// Save replaces the whole document.
func (s *JSONStore[T]) Save(data map[string]T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(data)
}

// Update loads the document, applies fn and writes it back while holding the lock.
// Nothing is written if fn returns an error.
func (s *JSONStore[T]) Update(fn func(data map[string]T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	if err := fn(data); err != nil {
		return err
	}
	return s.save(data)
}

func (s *JSONStore[T]) load() map[string]T {
	data := make(map[string]T)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: could not read %s, treating as empty: %v", s.path, err)
		}
		return data
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("WARN: corrupt JSON in %s, treating as empty: %v", s.path, err)
		return make(map[string]T)
	}
	if data == nil {
		// a literal "null" document
		data = make(map[string]T)
	}
	return data
}

func (s *JSONStore[T]) save(data map[string]T) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}

	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
