// package state persists the durable document shared by all batch runs: the
// auth token and the per-destination sync ledger.
//
// The document is loaded once at process start, mutated only in memory, and
// written back once at process end. There is exactly one writer per run.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/spotsync/internal/shared"
)

// Auth holds the persisted token material.
type Auth struct {
	AccessToken  string `json:"accessToken"`
	ExpiresAt    int64  `json:"expiresAt"`
	RefreshToken string `json:"refreshToken"`
}

// PlaylistState is the ledger entry for one destination: the track uris
// previously inserted by the sync orchestrator, in insertion order.
type PlaylistState struct {
	Inserted []string `json:"inserted"`
}

// State is the persisted document.
type State struct {
	Auth      Auth                      `json:"auth"`
	Playlists map[string]*PlaylistState `json:"playlists"`
}

// New returns an empty State.
func New() *State {
	return &State{Playlists: map[string]*PlaylistState{}}
}

// Load reads the state document from disk. A missing file is
// [shared.ErrStateNotFound]; an unparseable one is [shared.ErrStateCorrupt].
// Both are fatal configuration errors for batch runs.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrStateNotFound, path)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStateCorrupt, err)
	}

	if s.Playlists == nil {
		s.Playlists = map[string]*PlaylistState{}
	}

	return &s, nil
}

// LoadOrNew reads the state document, substituting an empty document when the
// file does not exist yet. Used by the auth flow that creates it.
func LoadOrNew(path string) (*State, error) {
	s, err := Load(path)
	if errors.Is(err, shared.ErrStateNotFound) {
		return New(), nil
	}
	return s, err
}

// Save writes the state document, creating parent directories as needed.
func (s *State) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// UpdateAuth replaces the persisted token material.
func (s *State) UpdateAuth(accessToken, refreshToken string, expiresAt time.Time) {
	s.Auth.AccessToken = accessToken
	s.Auth.ExpiresAt = expiresAt.Unix()
	if refreshToken != "" {
		s.Auth.RefreshToken = refreshToken
	}
}

// TokenValid reports whether the stored access token exists and has not expired.
func (s *State) TokenValid(now time.Time) bool {
	return s.Auth.AccessToken != "" && now.Unix() < s.Auth.ExpiresAt
}

// AlreadyInserted returns the set of uris previously inserted into the given
// destination. A destination seen for the first time yields an empty set,
// never an error.
func (s *State) AlreadyInserted(destination string) map[string]struct{} {
	set := map[string]struct{}{}
	if entry, ok := s.Playlists[destination]; ok {
		for _, uri := range entry.Inserted {
			set[uri] = struct{}{}
		}
	}
	return set
}

// RecordInserted unions the given uris into the ledger entry for the
// destination. Additive only; call it only after a fully successful insert.
func (s *State) RecordInserted(destination string, uris []string) {
	entry, ok := s.Playlists[destination]
	if !ok {
		entry = &PlaylistState{}
		s.Playlists[destination] = entry
	}

	existing := make(map[string]struct{}, len(entry.Inserted))
	for _, uri := range entry.Inserted {
		existing[uri] = struct{}{}
	}

	for _, uri := range uris {
		if _, ok := existing[uri]; ok {
			continue
		}
		entry.Inserted = append(entry.Inserted, uri)
		existing[uri] = struct{}{}
	}
}

// ClearInserted empties the ledger entry for the destination. Used after a
// playlist is cleared so the next sync re-inserts from scratch.
func (s *State) ClearInserted(destination string) {
	if entry, ok := s.Playlists[destination]; ok {
		entry.Inserted = []string{}
	}
}
