package storage

import (
	"os"
	"path/filepath"
	"testing"
)

type store interface {
	IncrementAttempts() (int, error)
	HighScore() (int, error)
	SaveHighScore(score int) (bool, error)
}

func TestHighScoreSemantics(t *testing.T) {
	fileStore, err := OpenFileStore(filepath.Join(t.TempDir(), "save.yaml"))
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	stores := map[string]store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			steps := []struct {
				score     int
				wantSaved bool
				wantHigh  int
			}{
				{500, true, 500},
				{500, false, 500}, // equal does not overwrite
				{300, false, 500},
				{501, true, 501},
			}
			for _, st := range steps {
				saved, err := s.SaveHighScore(st.score)
				if err != nil {
					t.Fatalf("SaveHighScore(%d): %v", st.score, err)
				}
				if saved != st.wantSaved {
					t.Errorf("SaveHighScore(%d) = %v, want %v", st.score, saved, st.wantSaved)
				}
				if high, _ := s.HighScore(); high != st.wantHigh {
					t.Errorf("after %d: high = %d, want %d", st.score, high, st.wantHigh)
				}
			}

			for want := 1; want <= 3; want++ {
				got, err := s.IncrementAttempts()
				if err != nil || got != want {
					t.Errorf("IncrementAttempts = %d, %v; want %d", got, err, want)
				}
			}
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.yaml")
	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	if _, err := s.IncrementAttempts(); err != nil {
		t.Fatalf("IncrementAttempts: %v", err)
	}
	if _, err := s.SaveHighScore(1234); err != nil {
		t.Fatalf("SaveHighScore: %v", err)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if high, _ := reopened.HighScore(); high != 1234 {
		t.Errorf("high score = %d, want 1234", high)
	}
	if n, _ := reopened.IncrementAttempts(); n != 2 {
		t.Errorf("attempts = %d, want 2", n)
	}
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.yaml")
	if err := os.WriteFile(path, []byte("attempts: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileStore(path); err == nil {
		t.Error("expected parse error")
	}
}
