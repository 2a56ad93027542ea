// Package oauth implements the mock OAuth2 authorization server used for
// Google Home Cloud-to-Cloud account linking.
//
// This is deliberately not a general-purpose authorization server. It serves
// exactly one purpose: let Google's account-linking flow complete against a
// single trusted client so smart-home intents can reach the bridge. The
// corners cut are intentional and documented:
//
//   - Login credentials are not verified (any username/password passes)
//   - Access tokens never expire; expires_in is advisory only
//   - Refresh tokens are never rotated or revoked
//   - There is no scope or consent handling
//   - redirect_uri is accepted verbatim with no allow-list. It is stored at
//     code issuance and must match exactly at exchange, but a hostile
//     redirect target would be followed. Do not expose this service beyond
//     the linking sandbox.
//
// What IS enforced, because Google's flow breaks without it:
//
//   - Authorization codes are single-use (consumed exactly once)
//   - The client/redirect pair at exchange must match the pair at issuance
//   - The client secret is validated on every token-endpoint call
//   - Refresh tokens are bound to the issuing client
//
// # Architecture
//
//	GrantMachine (grant.go)      orchestration, the only entry point
//	  ├── Registry (registry.go) static client_id -> secret map
//	  ├── CodeLedger (codes.go)  single-use codes, in-memory
//	  └── TokenStore (tokens.go) token -> client maps, write-through to
//	        TokenRepository (token_repository.go, SQLite)
//
// All tokens are opaque URL-safe random strings (8 bytes of entropy for
// codes, 16 for access tokens, 24 for refresh tokens).
//
// # Persistence
//
// Every successful mint persists synchronously before the response is
// returned; the in-memory maps are rebuilt wholesale from SQLite at startup.
// Authorization codes are not persisted - losing them only repeats the
// linking flow.
package oauth
