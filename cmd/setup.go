package main

import (
	"context"

	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/ui"
	"github.com/urfave/cli/v3"
)

// Setup creates a config.toml from the bundled template.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)

	r.writePlain("%s\n", ui.OK("Config file created: "+configPath))
	r.writePlainln("%s", ui.Help("Fill in credentials.spotify, then run 'spotsync auth url' to authenticate."))
	return nil
}
