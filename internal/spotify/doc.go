// package spotify implements the playlist-track surface of the Spotify Web API.
//
// The [Client] owns the HTTP transport, a per-run GET cache, and a request
// rate limiter. Higher layers drive it through paginated reads and windowed
// batch mutations; everything else about the API is out of scope.
package spotify
