package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")

	// API and decoding errors
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrDecodeResponse = fmt.Errorf("unexpected response shape")

	// Reference and state errors
	ErrInvalidRef    = fmt.Errorf("invalid playlist reference")
	ErrStateCorrupt  = fmt.Errorf("state file corrupt")
	ErrStateNotFound = fmt.Errorf("state file not found")
)
