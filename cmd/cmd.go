// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that reads config.toml.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles initial configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create a config.toml from the bundled template",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// authCommand handles the OAuth2 authorization-code flow.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:   "url",
				Usage:  "Print the authorization URL to open in a browser",
				Action: r.AuthURL,
			},
			{
				Name:  "login",
				Usage: "Exchange an authorization code for tokens and persist them",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "code"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check whether a valid access token is stored",
				Action: r.AuthStatus,
			},
		},
	}
}

// backupCommand writes CSV backups of the configured playlists.
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Back up configured playlists to timestamped CSV files",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Base directory for backup runs (overrides config)",
			},
		},
		Action: r.Backup,
	}
}

// dedupeCommand removes duplicate tracks from the configured playlists.
func dedupeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dedupe",
		Aliases: []string{"deduplicate"},
		Usage:   "Remove duplicate tracks from configured playlists",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.Deduplicate,
	}
}

// clearCommand empties the configured playlists.
func clearCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Remove every track from configured playlists",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Clear,
	}
}

// syncCommand runs the configured one-way syncs.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  "Run configured one-way playlist syncs",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Sync,
	}
}

// cacheCommand inspects the local track cache written during backups.
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local track cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show how many tracks are cached",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheStats,
			},
			{
				Name:  "get",
				Usage: "Look up a cached track by uri or ISRC",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "isrc",
						Usage: "Treat the key as an ISRC code",
					},
				},
				Action: r.CacheGet,
			},
		},
	}
}
