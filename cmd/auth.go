package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/state"
	"github.com/desertthunder/spotsync/internal/ui"
	"github.com/urfave/cli/v3"
)

// AuthURL prints the authorization URL the user opens to grant access.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	auth, err := r.authenticator()
	if err != nil {
		return err
	}

	url := auth.AuthCodeURL(shared.GenerateID())

	r.writePlain("%s\n", url)
	r.writePlainln("%s", ui.Help("Open the URL, authorize, then run 'spotsync auth login <code>' with the code from the redirect."))
	return nil
}

// AuthLogin exchanges an authorization code for tokens and persists them.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	code := cmd.StringArg("code")
	if code == "" {
		return fmt.Errorf("%w: authorization code argument is required", shared.ErrAuthFailed)
	}

	auth, err := r.authenticator()
	if err != nil {
		return err
	}

	r.logger.Info("exchanging authorization code for tokens")

	token, err := auth.Exchange(ctx, code)
	if err != nil {
		return err
	}

	statePath := r.config.StatePath()
	st, err := state.LoadOrNew(statePath)
	if err != nil {
		return err
	}

	st.UpdateAuth(token.AccessToken, token.RefreshToken, token.Expiry)
	if err := st.Save(statePath); err != nil {
		return err
	}

	r.logger.Info("tokens saved", "path", statePath)

	return r.writePlain("%s\n", ui.OK("Authentication successful"))
}

// AuthStatus reports whether a usable token is stored.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	st, err := r.loadState(r.config)
	if err != nil {
		r.writePlain("%s\n", ui.Err("Not authenticated"))
		return err
	}

	if st.TokenValid(r.now()) {
		expiry := time.Unix(st.Auth.ExpiresAt, 0)
		r.writePlain("%s\n", ui.OK("Authenticated"))
		return r.writePlain("Token expires at %s\n", expiry.Format(time.RFC3339))
	}

	if st.Auth.RefreshToken != "" {
		r.writePlain("%s\n", ui.Warn("Access token expired; it will be refreshed on the next run"))
		return nil
	}

	r.writePlain("%s\n", ui.Err("Not authenticated"))
	return shared.ErrNotAuthenticated
}
