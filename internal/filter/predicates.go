// package filter evaluates track records against composable inclusion and
// exclusion predicates. Predicates combine by logical AND; an absent predicate
// imposes no constraint.
package filter

import (
	"strconv"

	"github.com/desertthunder/spotsync/internal/spotify"
)

// Predicates is the full predicate set. Artist sets match a record whose id
// OR name is in the set; the two are treated as equivalent identities for
// matching only, never for deduplication.
type Predicates struct {
	Years           []int
	AnyArtistIn     []string
	AnyArtistNotIn  []string
	AllArtistsIn    []string
	AllArtistsNotIn []string
}

// Empty reports whether no predicate is active.
func (p Predicates) Empty() bool {
	return len(p.Years) == 0 &&
		len(p.AnyArtistIn) == 0 &&
		len(p.AnyArtistNotIn) == 0 &&
		len(p.AllArtistsIn) == 0 &&
		len(p.AllArtistsNotIn) == 0
}

// NeedsArtists reports whether any active predicate inspects the artist list.
func (p Predicates) NeedsArtists() bool {
	return len(p.AnyArtistIn) > 0 ||
		len(p.AnyArtistNotIn) > 0 ||
		len(p.AllArtistsIn) > 0 ||
		len(p.AllArtistsNotIn) > 0
}

// NeedsReleaseDate reports whether any active predicate inspects the album release date.
func (p Predicates) NeedsReleaseDate() bool {
	return len(p.Years) > 0
}

// Matcher compiles the predicate set into a match function. Returns nil when
// no predicate is active, so callers can skip filtering entirely.
func (p Predicates) Matcher() func(spotify.Track) bool {
	if p.Empty() {
		return nil
	}

	years := make(map[int]struct{}, len(p.Years))
	for _, y := range p.Years {
		years[y] = struct{}{}
	}

	anyIn := stringSet(p.AnyArtistIn)
	anyNotIn := stringSet(p.AnyArtistNotIn)
	allIn := stringSet(p.AllArtistsIn)
	allNotIn := stringSet(p.AllArtistsNotIn)

	return func(t spotify.Track) bool {
		if len(years) > 0 {
			year, ok := releaseYear(t)
			if !ok {
				return false
			}
			if _, found := years[year]; !found {
				return false
			}
		}

		if len(anyIn) > 0 && !anyArtistIn(t.Artists, anyIn) {
			return false
		}
		if len(anyNotIn) > 0 && !anyArtistOutside(t.Artists, anyNotIn) {
			return false
		}
		if len(allIn) > 0 && !allArtistsIn(t.Artists, allIn) {
			return false
		}
		if len(allNotIn) > 0 && !allArtistsOutside(t.Artists, allNotIn) {
			return false
		}

		return true
	}
}

// releaseYear extracts the 4-character year prefix of the album release date.
func releaseYear(t spotify.Track) (int, bool) {
	date := t.Album.ReleaseDate
	if len(date) < 4 {
		return 0, false
	}

	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// artistIn reports whether the artist's id or name is in the set.
func artistIn(a spotify.Artist, set map[string]struct{}) bool {
	if _, ok := set[a.ID]; ok {
		return true
	}
	_, ok := set[a.Name]
	return ok
}

// anyArtistIn: at least one artist in the set. A track with no artists never matches.
func anyArtistIn(artists []spotify.Artist, set map[string]struct{}) bool {
	for _, a := range artists {
		if artistIn(a, set) {
			return true
		}
	}
	return false
}

// anyArtistOutside: at least one artist not in the set. Vacuously true for an
// empty artist list.
func anyArtistOutside(artists []spotify.Artist, set map[string]struct{}) bool {
	for _, a := range artists {
		if !artistIn(a, set) {
			return true
		}
	}
	return len(artists) == 0
}

// allArtistsIn: every artist in the set. A track with no artists never matches.
func allArtistsIn(artists []spotify.Artist, set map[string]struct{}) bool {
	if len(artists) == 0 {
		return false
	}
	for _, a := range artists {
		if !artistIn(a, set) {
			return false
		}
	}
	return true
}

// allArtistsOutside: no artist in the set. Vacuously true for an empty artist list.
func allArtistsOutside(artists []spotify.Artist, set map[string]struct{}) bool {
	for _, a := range artists {
		if artistIn(a, set) {
			return false
		}
	}
	return true
}
