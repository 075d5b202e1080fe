// Package chirpysdk is a Go client for the chirpy HTTP API.
//
// Unauthenticated calls (signup, validation, reads, health) live on Client.
// Client.Login returns a Session that carries the token pair, attaches the
// access token to every call and transparently refreshes it once when the
// server answers 401.
//
//	c := chirpysdk.NewClient("http://localhost:8080")
//	s, err := c.Login(ctx, "walt@example.com", "04234")
//	chirp, err := s.CreateChirp(ctx, "hello")
package chirpysdk
