package tasks

import (
	"context"

	"github.com/desertthunder/spotsync/internal/filter"
	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/spotify"
)

// SyncStatus classifies the outcome of one sync pair.
type SyncStatus int

const (
	// StatusDone: tracks were inserted and recorded in the ledger.
	StatusDone SyncStatus = iota
	// StatusAlreadyUpToDate: the diff was empty; no mutating call was made.
	StatusAlreadyUpToDate
	// StatusSkipped: validation, fetch, or insert failed; the ledger is untouched.
	StatusSkipped
)

// SyncOutcome reports what happened to one configured sync pair.
type SyncOutcome struct {
	Status   SyncStatus
	Inserted int
	Reason   string
}

func done(inserted int) SyncOutcome {
	return SyncOutcome{Status: StatusDone, Inserted: inserted}
}

func skipped(reason string) SyncOutcome {
	return SyncOutcome{Status: StatusSkipped, Reason: reason}
}

var alreadyUpToDate = SyncOutcome{Status: StatusAlreadyUpToDate}

// pairPredicates builds the predicate set from a pair's optional filter fields.
func pairPredicates(pair shared.SyncPair) filter.Predicates {
	return filter.Predicates{
		Years:           pair.Years,
		AnyArtistIn:     pair.AnyArtistIn,
		AnyArtistNotIn:  pair.AnyArtistNotIn,
		AllArtistsIn:    pair.AllArtistsIn,
		AllArtistsNotIn: pair.AllArtistsNotIn,
	}
}

// SyncOneWay performs one incremental source -> destination pass.
//
// Source uris already recorded in the destination's ledger are diffed away;
// the remainder is inserted in source order and recorded only after the whole
// insert succeeded. Re-running with an unchanged source therefore performs
// zero mutating calls.
func (e *Engine) SyncOneWay(ctx context.Context, pair shared.SyncPair) SyncOutcome {
	from, err := spotify.ParseRef(pair.From)
	if err != nil {
		return skipped(`Invalid "from" URI`)
	}

	to, err := spotify.ParseRef(pair.To)
	if err != nil {
		return skipped(`Invalid "to" URI`)
	}
	if to.IsLibrary() {
		return skipped("Cannot sync into the saved-tracks library")
	}

	preds := pairPredicates(pair)
	fields := spotify.URIFields(preds.NeedsReleaseDate(), preds.NeedsArtists())

	uris, err := e.svc.FetchTrackURIs(ctx, from, fields, preds.Matcher())
	if err != nil {
		e.logger.Warn("source fetch failed", "from", pair.From, "error", err)
		return skipped("Could not fetch tracks from playlist")
	}

	inserted := e.state.AlreadyInserted(to.String())
	diff := make([]string, 0, len(uris))
	for _, uri := range uris {
		if _, ok := inserted[uri]; !ok {
			diff = append(diff, uri)
		}
	}

	if len(diff) == 0 {
		return alreadyUpToDate
	}

	if err := e.svc.AddTracks(ctx, to, diff); err != nil {
		e.logger.Warn("insert failed", "to", pair.To, "error", err)
		return skipped("Could not save tracks to playlist")
	}

	e.state.RecordInserted(to.String(), diff)
	return done(len(diff))
}

// SyncAll runs every configured pair in order. One pair's failure never
// aborts the batch.
func (e *Engine) SyncAll(ctx context.Context, pairs []shared.SyncPair) []SyncOutcome {
	e.progressf(" * Processing %d playlists from configuration", len(pairs))

	outcomes := make([]SyncOutcome, 0, len(pairs))
	for _, pair := range pairs {
		if pair.From == "" || pair.To == "" {
			e.progressf("   * Skipping invalid playlist entry ...")
			outcomes = append(outcomes, skipped("Missing from or to"))
			continue
		}

		e.progressf("   * From %q to %q ...", pair.From, pair.To)

		outcome := e.SyncOneWay(ctx, pair)
		switch outcome.Status {
		case StatusDone:
			e.progressf("     * Added %d tracks to playlist ...", outcome.Inserted)
		case StatusAlreadyUpToDate:
			e.progressf("     * Already up to date ...")
		case StatusSkipped:
			e.progressf("     * %s ...", outcome.Reason)
			e.progressf("     * Skipping ...")
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
