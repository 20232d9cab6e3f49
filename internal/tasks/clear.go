package tasks

import (
	"context"

	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/spotify"
)

// Clear removes every occurrence from a collection and drops the
// destination's sync ledger so a later sync re-inserts from scratch.
// Returns the number of occurrences removed.
func (e *Engine) Clear(ctx context.Context, ref spotify.PlaylistRef) (int, error) {
	occurrences, err := e.svc.FetchTracks(ctx, ref, spotify.OccurrenceFields, nil)
	if err != nil {
		return 0, err
	}

	if len(occurrences) > 0 {
		if err := e.svc.RemoveTracks(ctx, ref, occurrences); err != nil {
			return 0, err
		}
	}

	e.state.ClearInserted(ref.String())
	return len(occurrences), nil
}

// ClearAll clears every configured playlist in order. One entry's failure is
// reported and skipped, never aborting the batch. Returns the number of
// entries that failed.
func (e *Engine) ClearAll(ctx context.Context, entries []shared.PlaylistEntry) int {
	e.progressf(" * Processing %d playlists from configuration", len(entries))

	failed := 0
	for _, entry := range entries {
		ref, err := spotify.ParseRef(entry.Which)
		if err != nil {
			e.progressf("   * Skipping invalid playlist entry %q ...", entry.Which)
			failed++
			continue
		}

		e.progressf("   * Clearing %q ...", entry.DisplayName())

		removed, err := e.Clear(ctx, ref)
		if err != nil {
			e.logger.Warn("clear failed", "playlist", entry.Which, "error", err)
			e.progressf("     * Skipping ...")
			failed++
			continue
		}

		e.progressf("     * Removed %d tracks ...", removed)
	}

	return failed
}
