package state

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/desertthunder/spotsync/internal/shared"
)

func TestLoad(t *testing.T) {
	t.Run("missing file is ErrStateNotFound", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		if _, err := Load(path); !errors.Is(err, shared.ErrStateNotFound) {
			t.Errorf("expected ErrStateNotFound, got %v", err)
		}
	})

	t.Run("unparseable file is ErrStateCorrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if _, err := Load(path); !errors.Is(err, shared.ErrStateCorrupt) {
			t.Errorf("expected ErrStateCorrupt, got %v", err)
		}
	})

	t.Run("LoadOrNew substitutes an empty document for a missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")

		s, err := LoadOrNew(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s == nil || s.Playlists == nil {
			t.Fatal("expected an initialized empty state")
		}
	})

	t.Run("LoadOrNew still surfaces corruption", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		if err := os.WriteFile(path, []byte("[]"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if _, err := LoadOrNew(path); !errors.Is(err, shared.ErrStateCorrupt) {
			t.Errorf("expected ErrStateCorrupt, got %v", err)
		}
	})
}

func TestSave(t *testing.T) {
	t.Run("round-trips the document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "state.json")

		s := New()
		s.UpdateAuth("access", "refresh", time.Unix(1700000000, 0))
		s.RecordInserted("spotify:user:alice:playlist:abc", []string{"spotify:track:a", "spotify:track:b"})

		if err := s.Save(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if loaded.Auth.AccessToken != "access" || loaded.Auth.RefreshToken != "refresh" {
			t.Errorf("unexpected auth: %+v", loaded.Auth)
		}
		if loaded.Auth.ExpiresAt != 1700000000 {
			t.Errorf("expected expiry 1700000000, got %d", loaded.Auth.ExpiresAt)
		}

		entry := loaded.Playlists["spotify:user:alice:playlist:abc"]
		if entry == nil || !slices.Equal(entry.Inserted, []string{"spotify:track:a", "spotify:track:b"}) {
			t.Errorf("unexpected ledger entry: %+v", entry)
		}
	})
}

func TestAuth(t *testing.T) {
	t.Run("TokenValid respects expiry", func(t *testing.T) {
		s := New()
		s.UpdateAuth("access", "refresh", time.Unix(1000, 0))

		if !s.TokenValid(time.Unix(999, 0)) {
			t.Error("expected token valid before expiry")
		}
		if s.TokenValid(time.Unix(1000, 0)) {
			t.Error("expected token invalid at expiry")
		}
	})

	t.Run("an empty access token is never valid", func(t *testing.T) {
		if New().TokenValid(time.Unix(0, 0)) {
			t.Error("expected empty token to be invalid")
		}
	})

	t.Run("UpdateAuth keeps the old refresh token when the new one is empty", func(t *testing.T) {
		s := New()
		s.UpdateAuth("access", "refresh", time.Unix(1000, 0))
		s.UpdateAuth("access2", "", time.Unix(2000, 0))

		if s.Auth.RefreshToken != "refresh" {
			t.Errorf("expected refresh token to survive, got %q", s.Auth.RefreshToken)
		}
		if s.Auth.AccessToken != "access2" {
			t.Errorf("expected new access token, got %q", s.Auth.AccessToken)
		}
	})
}

func TestLedger(t *testing.T) {
	dest := "spotify:user:alice:playlist:abc"

	t.Run("an unknown destination yields an empty set", func(t *testing.T) {
		set := New().AlreadyInserted(dest)
		if len(set) != 0 {
			t.Errorf("expected empty set, got %v", set)
		}
	})

	t.Run("RecordInserted unions and preserves order", func(t *testing.T) {
		s := New()
		s.RecordInserted(dest, []string{"a", "b"})
		s.RecordInserted(dest, []string{"b", "c", "a", "d"})

		want := []string{"a", "b", "c", "d"}
		if got := s.Playlists[dest].Inserted; !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}

		set := s.AlreadyInserted(dest)
		for _, uri := range want {
			if _, ok := set[uri]; !ok {
				t.Errorf("expected %q in the inserted set", uri)
			}
		}
	})

	t.Run("ClearInserted empties the entry", func(t *testing.T) {
		s := New()
		s.RecordInserted(dest, []string{"a", "b"})
		s.ClearInserted(dest)

		if got := s.Playlists[dest].Inserted; len(got) != 0 {
			t.Errorf("expected empty ledger, got %v", got)
		}
	})

	t.Run("ClearInserted on an unknown destination is a no-op", func(t *testing.T) {
		s := New()
		s.ClearInserted(dest)

		if _, ok := s.Playlists[dest]; ok {
			t.Error("expected no entry to be created")
		}
	})
}
