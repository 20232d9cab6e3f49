package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotsync/internal/repositories"
	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/tasks"
	"github.com/desertthunder/spotsync/internal/ui"
	"github.com/urfave/cli/v3"
)

// Backup writes CSV backups of the configured playlists into a fresh
// timestamped directory.
func (r *Runner) Backup(ctx context.Context, cmd *cli.Command) error {
	config := r.configFrom(cmd)

	st, err := r.loadState(config)
	if err != nil {
		return err
	}
	if err := r.ensureToken(ctx, st); err != nil {
		return err
	}

	var cache tasks.TrackCacher
	if config.Cache.Enabled {
		db, err := repositories.Open(config.CachePath())
		if err != nil {
			r.logger.Warn("track cache unavailable", "path", config.CachePath(), "error", err)
		} else {
			defer db.Close()
			cache = repositories.NewTrackRepository(db)
		}
	}

	baseDir := cmd.String("dir")
	if baseDir == "" {
		baseDir = config.Backups.Dir
	}
	if baseDir == "" {
		baseDir = "backups"
	}

	engine := r.newEngine(st, cache)
	result, err := engine.Backup(ctx, config.Playlists.Backup, baseDir)
	if err != nil {
		return err
	}

	if err := st.Save(config.StatePath()); err != nil {
		return err
	}

	if result.Failed > 0 {
		r.writePlainln("%s", ui.Err(fmt.Sprintf("%d of %d backups failed", result.Failed, result.Processed)))
		return fmt.Errorf("%d of %d backups failed", result.Failed, result.Processed)
	}

	r.writePlainln("%s", ui.OK(fmt.Sprintf("Backed up %d playlists to %s", result.Succeeded, result.Directory)))
	return nil
}

// Deduplicate removes duplicate tracks from the configured playlists.
func (r *Runner) Deduplicate(ctx context.Context, cmd *cli.Command) error {
	config := r.configFrom(cmd)
	return r.runBatch(ctx, config, func(engine *tasks.Engine) int {
		return engine.DeduplicateAll(ctx, config.Playlists.Deduplicate)
	})
}

// Clear removes every track from the configured playlists.
func (r *Runner) Clear(ctx context.Context, cmd *cli.Command) error {
	config := r.configFrom(cmd)
	return r.runBatch(ctx, config, func(engine *tasks.Engine) int {
		return engine.ClearAll(ctx, config.Playlists.Clear)
	})
}

// Sync runs the configured one-way playlist syncs.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	config := r.configFrom(cmd)
	return r.runBatch(ctx, config, func(engine *tasks.Engine) int {
		failed := 0
		for _, outcome := range engine.SyncAll(ctx, config.Playlists.Sync.OneWay) {
			if outcome.Status == tasks.StatusSkipped {
				failed++
			}
		}
		return failed
	})
}

// runBatch wraps the shared batch-command lifecycle: load state, ensure a
// live token, run the operation, persist state, and reflect entry failures in
// the exit status.
func (r *Runner) runBatch(ctx context.Context, config *shared.Config, run func(*tasks.Engine) int) error {
	st, err := r.loadState(config)
	if err != nil {
		return err
	}
	if err := r.ensureToken(ctx, st); err != nil {
		return err
	}

	engine := r.newEngine(st, nil)
	failed := run(engine)

	if err := st.Save(config.StatePath()); err != nil {
		return err
	}

	if failed > 0 {
		r.writePlainln("%s", ui.Err(fmt.Sprintf("%d playlist entries failed", failed)))
		return fmt.Errorf("%d playlist entries failed", failed)
	}

	r.writePlainln("%s", ui.OK("Done"))
	return nil
}
