package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/trip-weather/internal/weather"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONStoreMissingFileIsEmpty(t *testing.T) {
	s := NewJSONStore[record](filepath.Join(t.TempDir(), "missing.json"))

	if data := s.Load(); len(data) != 0 {
		t.Fatalf("expected empty document, got %v", data)
	}
}

func TestJSONStoreCorruptFileIsEmpty(t *testing.T) {
	for name, content := range map[string]string{
		"garbage": "{not json",
		"null":    "null",
		"array":   "[1,2,3]",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "trips.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}

			data := NewJSONStore[record](path).Load()
			if data == nil || len(data) != 0 {
				t.Fatalf("expected empty non-nil document, got %#v", data)
			}
		})
	}
}

func TestJSONStoreSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "users.json")
	s := NewJSONStore[record](path)

	if err := s.Save(map[string]record{"u1": {Name: "Ada", Count: 1}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok := s.Get("u1")
	if !ok {
		t.Fatal("expected u1 to be present")
	}
	if got.Name != "Ada" || got.Count != 1 {
		t.Errorf("unexpected record %+v", got)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "\n        \"name\"") {
		t.Errorf("expected 4-space indented JSON, got:\n%s", raw)
	}
}

func TestJSONStoreUpdate(t *testing.T) {
	s := NewJSONStore[record](filepath.Join(t.TempDir(), "trips.json"))

	for i := 0; i < 3; i++ {
		err := s.Update(func(data map[string]record) error {
			r := data["k"]
			r.Count++
			data["k"] = r
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	if got, _ := s.Get("k"); got.Count != 3 {
		t.Fatalf("Count = %d, want 3", got.Count)
	}

	boom := errors.New("boom")
	err := s.Update(func(data map[string]record) error {
		data["k"] = record{Count: 100}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got, _ := s.Get("k"); got.Count != 3 {
		t.Fatalf("failed update must not be written, Count = %d", got.Count)
	}
}

func TestMemoryStoreFreshness(t *testing.T) {
	s := NewMemoryStore(10 * time.Minute)
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	dest := weather.Destination{City: "Reno", State: "NV"}
	payload := &weather.Payload{List: []weather.Reading{}}

	if _, err := s.GetLatest(dest); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before save, got %v", err)
	}

	s.SavePayload(dest, payload)

	got, err := s.GetLatest(weather.Destination{City: "reno", State: "nv"})
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if got != payload {
		t.Error("expected the cached payload")
	}

	now = now.Add(10 * time.Minute)
	if _, err := s.GetLatest(dest); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestMemoryStoreDisabled(t *testing.T) {
	s := NewMemoryStore(0)
	dest := weather.Destination{City: "Reno", State: "NV"}

	s.SavePayload(dest, &weather.Payload{})
	if _, err := s.GetLatest(dest); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when cache is disabled, got %v", err)
	}
}
