package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotsync/internal/repositories"
	"github.com/urfave/cli/v3"
)

// CacheStats reports how many tracks the local cache holds.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	config := r.configFrom(cmd)

	db, err := repositories.Open(config.CachePath())
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := repositories.NewTrackRepository(db).Count()
	if err != nil {
		return err
	}

	return r.writePlain("Cached tracks: %d (%s)\n", count, config.CachePath())
}

// CacheGet looks up one cached track by uri, or by ISRC with --isrc.
func (r *Runner) CacheGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("a track uri or ISRC argument is required")
	}

	config := r.configFrom(cmd)

	db, err := repositories.Open(config.CachePath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewTrackRepository(db)

	var track *repositories.CachedTrack
	if cmd.Bool("isrc") {
		track, err = repo.GetByISRC(key)
	} else {
		track, err = repo.Get(key)
	}
	if err != nil {
		return err
	}

	r.writePlain("%s - %s\n", track.Artist, track.Title)
	r.writePlain("  Album: %s (%s)\n", track.Album, track.ReleaseDate)
	r.writePlain("  URI: %s\n", track.URI)
	if track.ISRC != "" {
		r.writePlain("  ISRC: %s\n", track.ISRC)
	}
	r.writePlain("  Duration: %d ms\n", track.DurationMS)
	return nil
}
