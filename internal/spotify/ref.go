package spotify

import (
	"fmt"
	"regexp"

	"github.com/desertthunder/spotsync/internal/shared"
)

// SavedTracksURI is the pseudo-playlist URI for the user's saved-tracks library.
const SavedTracksURI = "me:tracks"

var playlistURIPattern = regexp.MustCompile(`^spotify:user:([^:]+):playlist:([^:]+)$`)

// PlaylistRef identifies either an owned playlist (Owner + ID) or the
// caller's saved-tracks library (Library = true, no owner or id).
//
// Exactly one of the two forms is active; callers branch on [PlaylistRef.IsLibrary].
type PlaylistRef struct {
	Owner   string
	ID      string
	Library bool
}

// ParseRef parses a playlist URI of the form "spotify:user:<owner>:playlist:<id>"
// or the saved-tracks sentinel "me:tracks".
func ParseRef(uri string) (PlaylistRef, error) {
	if uri == SavedTracksURI {
		return PlaylistRef{Library: true}, nil
	}

	m := playlistURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return PlaylistRef{}, fmt.Errorf("%w: %q", shared.ErrInvalidRef, uri)
	}

	return PlaylistRef{Owner: m[1], ID: m[2]}, nil
}

// IsLibrary reports whether the reference points at the saved-tracks library.
func (r PlaylistRef) IsLibrary() bool {
	return r.Library
}

// PageLimit returns the page size the API uses for this collection kind:
// 100 for owned playlists, 50 for the saved-tracks library. The same limit
// bounds mutation windows.
func (r PlaylistRef) PageLimit() int {
	if r.Library {
		return 50
	}
	return 100
}

// String returns the canonical URI form, which doubles as the sync ledger key.
func (r PlaylistRef) String() string {
	if r.Library {
		return SavedTracksURI
	}
	return fmt.Sprintf("spotify:user:%s:playlist:%s", r.Owner, r.ID)
}
