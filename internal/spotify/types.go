// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

// Artist represents an artist attached to a track.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Album represents the album a track belongs to.
//
// ReleaseDate is an ISO-ish date-or-year string; only its 4-character year
// prefix is ever interpreted.
type Album struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URI         string `json:"uri"`
	Type        string `json:"album_type"`
	ReleaseDate string `json:"release_date"`
}

type externalIDs struct {
	ISRC string `json:"isrc"`
}

// Track represents a Spotify track. URI is the identity used for equality
// and deduplication; every other field is optional.
type Track struct {
	URI         string      `json:"uri"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	DurationMS  int         `json:"duration_ms"`
	DiscNumber  int         `json:"disc_number"`
	TrackNumber int         `json:"track_number"`
	ExternalIDs externalIDs `json:"external_ids"`
	Artists     []Artist    `json:"artists"`
	Album       Album       `json:"album"`
}

// ISRC returns the track's International Standard Recording Code, if any.
func (t Track) ISRC() string {
	return t.ExternalIDs.ISRC
}

type addedBy struct {
	URI string `json:"uri"`
}

// PlaylistTrack is one occurrence of a track inside a specific collection.
//
// Position is the absolute index within the collection at fetch time; it is
// assigned by the page fetcher and consumed only by deletion.
type PlaylistTrack struct {
	AddedAt  string  `json:"added_at"`
	AddedBy  addedBy `json:"added_by"`
	Track    Track   `json:"track"`
	Position int     `json:"-"`
}

// Page is one window of a paginated track listing.
//
// Offset+Limit >= Total marks the last page.
type Page struct {
	Items  []PlaylistTrack
	Offset int
	Limit  int
	Total  int
}

// pageResponse is the wire form of a track page. Pointer fields distinguish
// absent keys from zero values so malformed responses fail decoding instead
// of terminating pagination early.
type pageResponse struct {
	Items  *[]PlaylistTrack `json:"items"`
	Offset *int             `json:"offset"`
	Limit  *int             `json:"limit"`
	Total  *int             `json:"total"`
}

type snapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
}
