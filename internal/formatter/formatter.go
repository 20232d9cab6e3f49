// package formatter renders fetched playlist data to backup files (CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/spotsync/internal/spotify"
)

// backupHeader is the column layout of a playlist backup file.
var backupHeader = []string{
	"Title",
	"ID",
	"URI",
	"ISRC",
	"Artist Name",
	"Artist ID",
	"Artist URI",
	"Album Name",
	"Album ID",
	"Album URI",
	"Album Type",
	"Release Date",
	"Disc Number",
	"Track Number",
	"Duration [ms]",
	"Added By",
	"Added At",
}

// TracksToCSV renders playlist occurrences as CSV in collection order.
//
// Artist columns flatten the ordered artist list into one cell: names joined
// by ", " with literal commas escaped, ids and uris joined by " " with
// literal spaces escaped, so the lists stay splittable.
func TracksToCSV(occurrences []spotify.PlaylistTrack) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(backupHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, occ := range occurrences {
		track := occ.Track
		record := []string{
			track.Name,
			track.ID,
			track.URI,
			track.ISRC(),
			joinArtists(track.Artists, func(a spotify.Artist) string { return a.Name }, ", ", ",", "\\,"),
			joinArtists(track.Artists, func(a spotify.Artist) string { return a.ID }, " ", " ", "\\ "),
			joinArtists(track.Artists, func(a spotify.Artist) string { return a.URI }, " ", " ", "\\ "),
			track.Album.Name,
			track.Album.ID,
			track.Album.URI,
			titleCase(track.Album.Type),
			track.Album.ReleaseDate,
			positiveInt(track.DiscNumber),
			positiveInt(track.TrackNumber),
			positiveInt(track.DurationMS),
			occ.AddedBy.URI,
			occ.AddedAt,
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteCSVBackup renders the occurrences and writes them to the given path.
func WriteCSVBackup(occurrences []spotify.PlaylistTrack, path string) error {
	data, err := TracksToCSV(occurrences)
	if err != nil {
		return fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	return nil
}

// joinArtists extracts one attribute per artist, escapes the separator inside
// each value, and joins the values.
func joinArtists(artists []spotify.Artist, attr func(spotify.Artist) string, sep, old, escaped string) string {
	values := make([]string, 0, len(artists))
	for _, a := range artists {
		values = append(values, strings.ReplaceAll(attr(a), old, escaped))
	}
	return strings.Join(values, sep)
}

// positiveInt formats a positive integer, leaving absent (zero) values blank.
func positiveInt(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// titleCase upper-cases the first letter of an album type ("album" -> "Album").
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
