package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
[credentials.spotify]
client_id = "id"
client_secret = "secret"
redirect_uri = "http://localhost:9999/cb"

[state]
path = "/tmp/spotsync/state.json"

[cache]
enabled = true
path = "/tmp/spotsync/tracks.db"

[backups]
dir = "exports"

[[playlists.backup]]
which = "spotify:user:alice:playlist:abc"
name = "Road Trip"

[[playlists.deduplicate]]
which = "me:tracks"

[[playlists.sync.one_way]]
from = "me:tracks"
to = "spotify:user:alice:playlist:abc"
years = [2023, 2024]
any_artist_not_in = ["Various Artists"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a full configuration", func(t *testing.T) {
		config, err := LoadConfig(writeConfig(t, sampleConfig))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "id" {
			t.Errorf("unexpected client id %q", config.Credentials.Spotify.ClientID)
		}
		if !config.Cache.Enabled {
			t.Error("expected cache enabled")
		}
		if config.Backups.Dir != "exports" {
			t.Errorf("unexpected backups dir %q", config.Backups.Dir)
		}

		if len(config.Playlists.Backup) != 1 || config.Playlists.Backup[0].Name != "Road Trip" {
			t.Errorf("unexpected backup entries: %+v", config.Playlists.Backup)
		}
		if len(config.Playlists.Deduplicate) != 1 || config.Playlists.Deduplicate[0].Which != "me:tracks" {
			t.Errorf("unexpected dedupe entries: %+v", config.Playlists.Deduplicate)
		}

		pairs := config.Playlists.Sync.OneWay
		if len(pairs) != 1 {
			t.Fatalf("expected 1 sync pair, got %d", len(pairs))
		}
		if pairs[0].From != "me:tracks" || len(pairs[0].Years) != 2 {
			t.Errorf("unexpected sync pair: %+v", pairs[0])
		}
		if len(pairs[0].AnyArtistNotIn) != 1 || pairs[0].AnyArtistNotIn[0] != "Various Artists" {
			t.Errorf("unexpected artist filter: %+v", pairs[0].AnyArtistNotIn)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("malformed TOML fails", func(t *testing.T) {
		if _, err := LoadConfig(writeConfig(t, "[credentials\n")); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Credentials.Spotify.RedirectURI == "" {
		t.Error("expected a default redirect uri")
	}
	if config.Backups.Dir == "" {
		t.Error("expected a default backups dir")
	}
	if config.Cache.Enabled {
		t.Error("expected the cache to default off")
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("creates a loadable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := LoadConfig(path); err != nil {
			t.Errorf("expected created config to parse: %v", err)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := writeConfig(t, sampleConfig)

		err := CreateConfigFile(path)
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already-exists error, got %v", err)
		}
	})
}

func TestPaths(t *testing.T) {
	t.Run("configured paths win", func(t *testing.T) {
		config := &Config{}
		config.State.Path = "/custom/state.json"
		config.Cache.Path = "/custom/tracks.db"

		if config.StatePath() != "/custom/state.json" {
			t.Errorf("unexpected state path %q", config.StatePath())
		}
		if config.CachePath() != "/custom/tracks.db" {
			t.Errorf("unexpected cache path %q", config.CachePath())
		}
	})

	t.Run("empty paths fall back to XDG directories", func(t *testing.T) {
		config := &Config{}

		if !strings.HasSuffix(config.StatePath(), filepath.Join("spotsync", "state.json")) {
			t.Errorf("unexpected default state path %q", config.StatePath())
		}
		if !strings.HasSuffix(config.CachePath(), filepath.Join("spotsync", "tracks.db")) {
			t.Errorf("unexpected default cache path %q", config.CachePath())
		}
	})
}

func TestPlaylistEntry(t *testing.T) {
	t.Run("DisplayName prefers the configured name", func(t *testing.T) {
		entry := PlaylistEntry{Which: "spotify:user:alice:playlist:abc", Name: "Road Trip"}
		if entry.DisplayName() != "Road Trip" {
			t.Errorf("expected 'Road Trip', got %q", entry.DisplayName())
		}
	})

	t.Run("DisplayName falls back to the URI", func(t *testing.T) {
		entry := PlaylistEntry{Which: "me:tracks"}
		if entry.DisplayName() != "me:tracks" {
			t.Errorf("expected 'me:tracks', got %q", entry.DisplayName())
		}
	})
}
