package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Grant types accepted at the token endpoint.
const (
	// GrantAuthorizationCode exchanges a single-use code for a token pair.
	GrantAuthorizationCode = "authorization_code"

	// GrantRefreshToken mints a new access token from a refresh token.
	GrantRefreshToken = "refresh_token"
)

// Token entropy, in random bytes before URL-safe encoding.
const (
	codeEntropyBytes         = 8
	accessTokenEntropyBytes  = 16
	refreshTokenEntropyBytes = 24
)

// TokenTTLSeconds is the advisory expires_in value returned with every
// access token. Tokens are not actually expired: they remain valid until the
// process forgets them or the snapshot store is cleared.
const TokenTTLSeconds = 3600

// Client is a registered OAuth2 client. Loaded from config at startup,
// immutable for the process lifetime.
type Client struct {
	ID     string
	Secret string
}

// AuthorizationCode binds a single-use code to the client and redirect URI
// presented at login. Both must match exactly at exchange.
type AuthorizationCode struct {
	Code        string
	ClientID    string
	RedirectURI string
}

// StoredToken is a persisted access or refresh token row.
type StoredToken struct {
	ID        string
	Token     string
	ClientID  string
	CreatedAt time.Time
}

// LoginPrompt carries the pass-through authorization parameters into the
// login form. None of them are validated beyond the client_id lookup.
type LoginPrompt struct {
	ClientID    string
	RedirectURI string
	State       string
}

// TokenRequest is a parsed token-endpoint request.
type TokenRequest struct {
	GrantType    string
	Code         string
	RedirectURI  string
	RefreshToken string
	ClientID     string
	ClientSecret string
}

// TokenResponse is the JSON body returned on a successful exchange.
// RefreshToken is only present for the authorization_code grant.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// newRandomToken returns a cryptographically random, URL-safe token built
// from n random bytes (base64 URL encoding without padding).
func newRandomToken(n int) string {
	buf := make([]byte, n)
	// crypto/rand.Read never returns an error on supported platforms
	if _, err := rand.Read(buf); err != nil {
		panic("oauth: crypto/rand unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
