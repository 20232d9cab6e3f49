package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/spotsync/internal/shared"
)

// OccurrenceFields selects just enough to identify occurrences for deletion:
// the track uri and id (positions come from pagination, not the mask).
const OccurrenceFields = "items(track(uri,id)),offset,limit,total"

// FullTrackFields selects every track attribute the CSV backup renders.
const FullTrackFields = "items(track(uri,id,name,duration_ms,disc_number,track_number,external_ids(isrc),artists(id,name,uri),album(id,name,uri,album_type,release_date)),added_at,added_by(uri)),offset,limit,total"

// URIFields builds the narrowest fields mask for a uri-only read: the track
// uri plus whatever attributes the caller's predicates inspect.
func URIFields(withReleaseDate, withArtists bool) string {
	attrs := []string{"uri"}
	if withArtists {
		attrs = append(attrs, "artists(id,name)")
	}
	if withReleaseDate {
		attrs = append(attrs, "album(release_date)")
	}
	return fmt.Sprintf("items(track(%s)),offset,limit,total", strings.Join(attrs, ","))
}

// trackPageURL builds the paginated GET URL for one page of a collection.
// The saved-tracks endpoint takes no fields mask; it always returns full objects.
func (c *Client) trackPageURL(ref PlaylistRef, fields string, offset int) string {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(ref.PageLimit()))

	if ref.Library {
		return c.baseURL + "/me/tracks?" + query.Encode()
	}

	if fields != "" {
		query.Set("fields", fields)
	}
	return c.tracksEndpoint(ref) + "?" + query.Encode()
}

// tracksEndpoint builds the mutation endpoint for a collection.
func (c *Client) tracksEndpoint(ref PlaylistRef) string {
	if ref.Library {
		return c.baseURL + "/me/tracks"
	}
	return c.baseURL + "/users/" + url.PathEscape(ref.Owner) + "/playlists/" + url.PathEscape(ref.ID) + "/tracks"
}

// FetchPage retrieves one page of the collection at the given offset.
//
// The response must decode into an object carrying items and all three
// pagination fields; anything else is a [shared.ErrDecodeResponse]. Safe to
// invoke repeatedly for the same offset.
func (c *Client) FetchPage(ctx context.Context, ref PlaylistRef, fields string, offset int) (*Page, error) {
	if c.token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	data, err := c.cacheableGet(ctx, c.trackPageURL(ref, fields, offset))
	if err != nil {
		return nil, err
	}

	var resp pageResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDecodeResponse, err)
	}
	if resp.Items == nil || resp.Offset == nil || resp.Limit == nil || resp.Total == nil {
		return nil, fmt.Errorf("%w: missing items or pagination fields", shared.ErrDecodeResponse)
	}

	page := &Page{
		Items:  *resp.Items,
		Offset: *resp.Offset,
		Limit:  *resp.Limit,
		Total:  *resp.Total,
	}
	for i := range page.Items {
		page.Items[i].Position = page.Offset + i
	}

	return page, nil
}

// readAll drives FetchPage across every page of the collection, invoking
// visit for each occurrence in collection order. Any page failure aborts the
// whole read; callers never observe partial results.
func (c *Client) readAll(ctx context.Context, ref PlaylistRef, fields string, visit func(PlaylistTrack)) error {
	offset := 0
	for {
		page, err := c.FetchPage(ctx, ref, fields, offset)
		if err != nil {
			return err
		}

		for _, item := range page.Items {
			visit(item)
		}

		next := page.Offset + page.Limit
		if next >= page.Total {
			return nil
		}
		offset = next
	}
}

// FetchTracks reads the full collection and returns the occurrences matching
// the given predicate, in collection order. A nil match keeps everything.
// Returns an error (never a partial slice) if any page fails.
func (c *Client) FetchTracks(ctx context.Context, ref PlaylistRef, fields string, match func(Track) bool) ([]PlaylistTrack, error) {
	tracks := []PlaylistTrack{}
	err := c.readAll(ctx, ref, fields, func(item PlaylistTrack) {
		if match == nil || match(item.Track) {
			tracks = append(tracks, item)
		}
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

// FetchTrackURIs is the uri-only projection of [Client.FetchTracks].
func (c *Client) FetchTrackURIs(ctx context.Context, ref PlaylistRef, fields string, match func(Track) bool) ([]string, error) {
	uris := []string{}
	err := c.readAll(ctx, ref, fields, func(item PlaylistTrack) {
		if match == nil || match(item.Track) {
			uris = append(uris, item.Track.URI)
		}
	})
	if err != nil {
		return nil, err
	}
	return uris, nil
}

// AddTracks appends the given track uris to an owned playlist, one request
// per window of the endpoint's page limit, in order. The first window whose
// response lacks a snapshot_id acknowledgement fails the whole operation;
// windows already applied are not rolled back.
func (c *Client) AddTracks(ctx context.Context, ref PlaylistRef, uris []string) error {
	if ref.Library {
		return fmt.Errorf("%w: cannot add tracks to the saved-tracks library", shared.ErrInvalidRef)
	}
	if c.token == "" {
		return shared.ErrNotAuthenticated
	}

	limit := ref.PageLimit()
	for start := 0; start < len(uris); start += limit {
		end := min(start+limit, len(uris))

		payload, err := json.Marshal(map[string][]string{"uris": uris[start:end]})
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		data, err := c.request(ctx, http.MethodPost, c.tracksEndpoint(ref), payload)
		if err != nil {
			return fmt.Errorf("failed to add tracks (window %d-%d): %w", start, end, err)
		}

		var snap snapshotResponse
		if err := json.Unmarshal(data, &snap); err != nil || snap.SnapshotID == "" {
			return fmt.Errorf("%w: missing snapshot_id acknowledgement", shared.ErrDecodeResponse)
		}
	}

	return nil
}

// RemoveTracks deletes the given occurrences from a collection, one request
// per window, in ascending position order.
//
// For owned playlists each occurrence is addressed by its read-time position
// made relative to the window's offset: every completed window shifts the
// remaining occurrences down by exactly one window of positions, so relative
// positions stay correct as long as all occurrences come from one read-time
// snapshot and windows are applied in order.
func (c *Client) RemoveTracks(ctx context.Context, ref PlaylistRef, occurrences []PlaylistTrack) error {
	if c.token == "" {
		return shared.ErrNotAuthenticated
	}

	sorted := slices.Clone(occurrences)
	slices.SortFunc(sorted, func(a, b PlaylistTrack) int { return a.Position - b.Position })

	limit := ref.PageLimit()
	for start := 0; start < len(sorted); start += limit {
		end := min(start+limit, len(sorted))
		window := sorted[start:end]

		var err error
		if ref.Library {
			err = c.removeSavedTracks(ctx, window)
		} else {
			err = c.removePlaylistTracks(ctx, ref, window, start)
		}
		if err != nil {
			return fmt.Errorf("failed to remove tracks (window %d-%d): %w", start, end, err)
		}
	}

	return nil
}

// removePlaylistTracks issues one windowed delete against an owned playlist.
func (c *Client) removePlaylistTracks(ctx context.Context, ref PlaylistRef, window []PlaylistTrack, windowOffset int) error {
	type removal struct {
		URI       string `json:"uri"`
		Positions []int  `json:"positions"`
	}

	removals := make([]removal, 0, len(window))
	for _, occ := range window {
		removals = append(removals, removal{
			URI:       occ.Track.URI,
			Positions: []int{occ.Position - windowOffset},
		})
	}

	payload, err := json.Marshal(map[string][]removal{"tracks": removals})
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	_, err = c.request(ctx, http.MethodDelete, c.tracksEndpoint(ref), payload)
	return err
}

// removeSavedTracks issues one windowed delete against the saved-tracks
// library, which addresses tracks by id rather than by position.
func (c *Client) removeSavedTracks(ctx context.Context, window []PlaylistTrack) error {
	ids := make([]string, 0, len(window))
	for _, occ := range window {
		ids = append(ids, occ.Track.ID)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))

	_, err := c.request(ctx, http.MethodDelete, c.baseURL+"/me/tracks?"+query.Encode(), nil)
	return err
}
