package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/spotsync/internal/formatter"
	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/spotify"
)

// backupDirFormat names one backup run's directory after its start time.
const backupDirFormat = "20060102T150405-0700"

// BackupResult summarizes one backup run.
type BackupResult struct {
	Directory string
	Processed int
	Succeeded int
	Failed    int
}

// Backup writes one CSV file per configured playlist into a fresh
// timestamped directory under baseDir.
//
// Failing to create the target directory aborts the run; a single playlist's
// fetch or write failure is reported and skipped. Fetched tracks are written
// through the local cache when one is configured.
func (e *Engine) Backup(ctx context.Context, entries []shared.PlaylistEntry, baseDir string) (*BackupResult, error) {
	dir := filepath.Join(baseDir, time.Now().Format(backupDirFormat))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	e.progressf(" * Created target directory %q ...", dir)
	e.progressf(" * Processing %d playlists from configuration", len(entries))

	result := &BackupResult{Directory: dir, Processed: len(entries)}
	for _, entry := range entries {
		ref, err := spotify.ParseRef(entry.Which)
		if err != nil {
			e.progressf("   * Skipping invalid playlist entry %q ...", entry.Which)
			result.Failed++
			continue
		}

		e.progressf("   * Backing up %q ...", entry.DisplayName())

		occurrences, err := e.svc.FetchTracks(ctx, ref, spotify.FullTrackFields, nil)
		if err != nil {
			e.logger.Warn("backup fetch failed", "playlist", entry.Which, "error", err)
			e.progressf("     * Skipping ...")
			result.Failed++
			continue
		}

		path := filepath.Join(dir, entry.DisplayName()+".csv")
		if err := formatter.WriteCSVBackup(occurrences, path); err != nil {
			e.logger.Warn("backup write failed", "playlist", entry.Which, "error", err)
			e.progressf("     * Skipping ...")
			result.Failed++
			continue
		}

		e.cacheTracks(occurrences)

		e.progressf("     * Stored %d tracks in %q ...", len(occurrences), path)
		result.Succeeded++
	}

	return result, nil
}

// cacheTracks writes fetched tracks through the local cache, if configured.
// Cache failures are logged, never surfaced; the backup itself already succeeded.
func (e *Engine) cacheTracks(occurrences []spotify.PlaylistTrack) {
	if e.cache == nil {
		return
	}
	for _, occ := range occurrences {
		if err := e.cache.Cache(occ.Track); err != nil {
			e.logger.Warn("track cache write failed", "uri", occ.Track.URI, "error", err)
			return
		}
	}
}
