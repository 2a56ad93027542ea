package oauth

import "errors"

// Domain errors for the oauth package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, oauth.ErrInvalidGrant) {
//	    // respond 400 invalid_grant
//	}
var (
	// ErrUnknownClient is returned when a client_id is not in the registry.
	ErrUnknownClient = errors.New("oauth: unknown client")

	// ErrInvalidClient is returned when the client secret does not match.
	// Maps to HTTP 401 with error code "invalid_client".
	ErrInvalidClient = errors.New("oauth: invalid client")

	// ErrInvalidGrant is returned when an authorization code is absent,
	// already consumed, or bound to a different client or redirect URI, and
	// when a refresh token is unknown or owned by another client.
	// Maps to HTTP 400 with error code "invalid_grant".
	ErrInvalidGrant = errors.New("oauth: invalid grant")

	// ErrUnsupportedGrantType is returned for any grant_type other than
	// authorization_code or refresh_token.
	// Maps to HTTP 400 with error code "unsupported_grant_type".
	ErrUnsupportedGrantType = errors.New("oauth: unsupported grant type")
)
