package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/spotify"
	"github.com/desertthunder/spotsync/internal/state"
	"github.com/desertthunder/spotsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	client     *spotify.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	now        func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Client     *spotify.Client
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Now        func() time.Time
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Client == nil {
		opts.Client = spotify.NewClient("", opts.HTTPClient)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Runner{
		config:     opts.Config,
		client:     opts.Client,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		now:        opts.Now,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, backupCommand, dedupeCommand, clearCommand, syncCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// authenticator builds the OAuth2 exchanger from the configured credentials.
func (r *Runner) authenticator() (*spotify.Authenticator, error) {
	creds := r.config.Credentials.Spotify
	return spotify.NewAuthenticator(creds.ClientID, creds.ClientSecret, creds.RedirectURI)
}

// configFrom resolves the config for one command invocation: the --config
// flag when it names a loadable file, the runner's config otherwise.
func (r *Runner) configFrom(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" || path == "config.toml" {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return r.config
	}
	return config
}

// loadState reads the persisted state document. Batch commands require it to
// exist; run `spotsync auth login` first.
func (r *Runner) loadState(config *shared.Config) (*state.State, error) {
	return state.Load(config.StatePath())
}

// ensureToken makes sure the API client carries a live bearer token, refreshing
// the stored one when it has expired. The refreshed token is written back into
// st; the caller persists it.
func (r *Runner) ensureToken(ctx context.Context, st *state.State) error {
	if st.TokenValid(r.now()) {
		r.client.SetToken(st.Auth.AccessToken)
		return nil
	}

	auth, err := r.authenticator()
	if err != nil {
		return err
	}

	r.logger.Info("access token expired, refreshing")

	token, err := auth.Refresh(ctx, st.Auth.RefreshToken)
	if err != nil {
		return err
	}

	st.UpdateAuth(token.AccessToken, token.RefreshToken, token.Expiry)
	r.client.SetToken(token.AccessToken)
	return nil
}

// newEngine wires a batch engine around the runner's client and the given
// state document.
func (r *Runner) newEngine(st *state.State, cache tasks.TrackCacher) *tasks.Engine {
	return tasks.NewEngine(tasks.EngineOpts{
		Service: r.client,
		State:   st,
		Cache:   cache,
		Logger:  r.logger,
		Output:  r.output,
	})
}
