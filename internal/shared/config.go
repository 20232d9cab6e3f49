package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	State       StateConfig       `toml:"state"`
	Cache       CacheConfig       `toml:"cache"`
	Backups     BackupsConfig     `toml:"backups"`
	Playlists   PlaylistsConfig   `toml:"playlists"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// StateConfig locates the persisted state document (auth token + sync ledger).
type StateConfig struct {
	Path string `toml:"path"`
}

// CacheConfig contains settings for the local track-cache database written during backups.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// BackupsConfig contains settings for CSV playlist backups.
type BackupsConfig struct {
	Dir string `toml:"dir"`
}

// PlaylistsConfig lists the playlists each batch operation processes.
type PlaylistsConfig struct {
	Backup      []PlaylistEntry `toml:"backup"`
	Deduplicate []PlaylistEntry `toml:"deduplicate"`
	Clear       []PlaylistEntry `toml:"clear"`
	Sync        SyncConfig      `toml:"sync"`
}

// PlaylistEntry identifies one playlist by its URI, with an optional display name.
type PlaylistEntry struct {
	Which string `toml:"which"`
	Name  string `toml:"name"`
}

// DisplayName returns the entry's configured name, falling back to the raw URI.
func (e PlaylistEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Which
}

// SyncConfig groups sync job definitions by direction.
type SyncConfig struct {
	OneWay []SyncPair `toml:"one_way"`
}

// SyncPair configures a single one-way source -> destination sync.
//
// All filter fields are optional; an absent field imposes no constraint.
type SyncPair struct {
	From            string   `toml:"from"`
	To              string   `toml:"to"`
	Years           []int    `toml:"years"`
	AnyArtistIn     []string `toml:"any_artist_in"`
	AnyArtistNotIn  []string `toml:"any_artist_not_in"`
	AllArtistsIn    []string `toml:"all_artists_in"`
	AllArtistsNotIn []string `toml:"all_artists_not_in"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// StatePath returns the configured state file path, defaulting to the XDG state directory.
func (c *Config) StatePath() string {
	if c.State.Path != "" {
		return c.State.Path
	}
	return filepath.Join(xdg.StateHome, "spotsync", "state.json")
}

// CachePath returns the configured track-cache database path, defaulting to the XDG cache directory.
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(xdg.CacheHome, "spotsync", "tracks.db")
}
