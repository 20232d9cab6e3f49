package tasks

import (
	"context"

	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/spotify"
)

// Deduplicate removes duplicate occurrences of tracks from a collection,
// keyed strictly by uri. The first occurrence (lowest position) of each uri
// survives; occurrences without a uri are never considered duplicates of each
// other. Returns the number of occurrences removed.
func (e *Engine) Deduplicate(ctx context.Context, ref spotify.PlaylistRef) (int, error) {
	occurrences, err := e.svc.FetchTracks(ctx, ref, spotify.OccurrenceFields, nil)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(occurrences))
	dupes := []spotify.PlaylistTrack{}
	for _, occ := range occurrences {
		uri := occ.Track.URI
		if uri == "" {
			continue
		}
		if _, ok := seen[uri]; ok {
			dupes = append(dupes, occ)
			continue
		}
		seen[uri] = struct{}{}
	}

	if len(dupes) == 0 {
		return 0, nil
	}

	if err := e.svc.RemoveTracks(ctx, ref, dupes); err != nil {
		return 0, err
	}

	return len(dupes), nil
}

// DeduplicateAll deduplicates every configured playlist in order. One entry's
// failure is reported and skipped, never aborting the batch. Returns the
// number of entries that failed.
func (e *Engine) DeduplicateAll(ctx context.Context, entries []shared.PlaylistEntry) int {
	e.progressf(" * Processing %d playlists from configuration", len(entries))

	failed := 0
	for _, entry := range entries {
		ref, err := spotify.ParseRef(entry.Which)
		if err != nil {
			e.progressf("   * Skipping invalid playlist entry %q ...", entry.Which)
			failed++
			continue
		}

		e.progressf("   * Deduplicating %q ...", entry.DisplayName())

		removed, err := e.Deduplicate(ctx, ref)
		if err != nil {
			e.logger.Warn("deduplicate failed", "playlist", entry.Which, "error", err)
			e.progressf("     * Skipping ...")
			failed++
			continue
		}

		e.progressf("     * Removed %d duplicate tracks ...", removed)
	}

	return failed
}
