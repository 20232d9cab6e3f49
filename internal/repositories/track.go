package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/spotsync/internal/spotify"
)

// TrackRepository caches track metadata keyed by uri.
//
// Backups write through it so local lookups (by uri or ISRC) survive playlist
// edits on the remote side. Re-caching an existing uri is a no-op.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a TrackRepository on the given database connection.
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Cache inserts a track into the cache. Tracks without a uri, and uris
// already cached, are silently ignored.
func (r *TrackRepository) Cache(track spotify.Track) error {
	if track.URI == "" {
		return nil
	}

	artists := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		artists = append(artists, a.Name)
	}

	query := `
		INSERT OR IGNORE INTO tracks (uri, service_id, title, artist, album, release_date, duration_ms, isrc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		track.URI,
		track.ID,
		track.Name,
		strings.Join(artists, ", "),
		track.Album.Name,
		track.Album.ReleaseDate,
		track.DurationMS,
		track.ISRC(),
	)
	if err != nil {
		return fmt.Errorf("failed to cache track: %w", err)
	}

	return nil
}

// CachedTrack is one row of the track cache.
type CachedTrack struct {
	URI         string
	ServiceID   string
	Title       string
	Artist      string
	Album       string
	ReleaseDate string
	DurationMS  int
	ISRC        string
}

// Get retrieves a cached track by uri.
func (r *TrackRepository) Get(uri string) (*CachedTrack, error) {
	query := `
		SELECT uri, service_id, title, artist, album, release_date, duration_ms, isrc
		FROM tracks
		WHERE uri = ?
	`

	var t CachedTrack
	err := r.db.QueryRow(query, uri).Scan(&t.URI, &t.ServiceID, &t.Title, &t.Artist, &t.Album, &t.ReleaseDate, &t.DurationMS, &t.ISRC)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("track not found: %s", uri)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	return &t, nil
}

// GetByISRC retrieves a cached track by its ISRC code.
func (r *TrackRepository) GetByISRC(isrc string) (*CachedTrack, error) {
	query := `
		SELECT uri, service_id, title, artist, album, release_date, duration_ms, isrc
		FROM tracks
		WHERE isrc = ?
		LIMIT 1
	`

	var t CachedTrack
	err := r.db.QueryRow(query, isrc).Scan(&t.URI, &t.ServiceID, &t.Title, &t.Artist, &t.Album, &t.ReleaseDate, &t.DurationMS, &t.ISRC)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("track not found for ISRC: %s", isrc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	return &t, nil
}

// Count returns the number of cached tracks.
func (r *TrackRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}
