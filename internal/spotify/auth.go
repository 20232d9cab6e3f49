package spotify

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotsync/internal/shared"
	"golang.org/x/oauth2"
)

const (
	authURL  = "https://accounts.spotify.com/authorize"
	tokenURL = "https://accounts.spotify.com/api/token"
)

// Scopes requested during authorization. They cover every batch operation:
// reading playlists and the saved-tracks library, and mutating playlists.
var scopes = []string{
	"playlist-read-private",
	"playlist-read-collaborative",
	"playlist-modify-public",
	"playlist-modify-private",
	"user-library-read",
	"user-library-modify",
}

// Authenticator performs the authorization-code exchange with the Spotify
// accounts service. It produces bearer tokens; it never talks to the API itself.
type Authenticator struct {
	config *oauth2.Config
}

// NewAuthenticator creates an Authenticator from OAuth2 client credentials.
func NewAuthenticator(clientID, clientSecret, redirectURI string) (*Authenticator, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: client_id and client_secret are required", shared.ErrMissingCredentials)
	}
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
	}, nil
}

// AuthCodeURL returns the authorization URL the user opens to grant access.
func (a *Authenticator) AuthCodeURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for an access/refresh token pair.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// Refresh obtains a fresh access token from a previously stored refresh token.
func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token available", shared.ErrNotAuthenticated)
	}

	source := a.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}
