package tasks

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotsync/internal/shared"
	"github.com/desertthunder/spotsync/internal/spotify"
	"github.com/desertthunder/spotsync/internal/state"
)

// Service is the playlist-track API surface the engine drives.
// Implemented by [spotify.Client]; mocked in tests.
type Service interface {
	// FetchTracks reads a full collection, all-or-nothing, in collection order.
	FetchTracks(ctx context.Context, ref spotify.PlaylistRef, fields string, match func(spotify.Track) bool) ([]spotify.PlaylistTrack, error)

	// FetchTrackURIs is the uri-only projection of FetchTracks.
	FetchTrackURIs(ctx context.Context, ref spotify.PlaylistRef, fields string, match func(spotify.Track) bool) ([]string, error)

	// AddTracks appends uris to an owned playlist in windowed requests.
	AddTracks(ctx context.Context, ref spotify.PlaylistRef, uris []string) error

	// RemoveTracks deletes occurrences from a collection in windowed requests.
	RemoveTracks(ctx context.Context, ref spotify.PlaylistRef, occurrences []spotify.PlaylistTrack) error
}

// TrackCacher stores track metadata locally during backups.
type TrackCacher interface {
	Cache(track spotify.Track) error
}

// Engine runs batch playlist operations.
type Engine struct {
	svc    Service
	state  *state.State
	cache  TrackCacher
	logger *log.Logger
	out    io.Writer
}

// EngineOpts contains the dependencies for creating an Engine.
// Cache is optional; Logger and Output default to stderr and stdout.
type EngineOpts struct {
	Service Service
	State   *state.State
	Cache   TrackCacher
	Logger  *log.Logger
	Output  io.Writer
}

// NewEngine creates an Engine with the provided dependencies.
func NewEngine(opts EngineOpts) *Engine {
	if opts.State == nil {
		opts.State = state.New()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Engine{
		svc:    opts.Service,
		state:  opts.State,
		cache:  opts.Cache,
		logger: opts.Logger,
		out:    opts.Output,
	}
}

// State exposes the engine's in-memory state so callers can persist it once
// at the end of a run.
func (e *Engine) State() *state.State {
	return e.state
}

// progressf writes one human-readable progress line.
func (e *Engine) progressf(format string, args ...any) {
	fmt.Fprintf(e.out, format+"\n", args...)
}
