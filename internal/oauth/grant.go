package oauth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Logger defines the logging interface used by the grant machine.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// GrantMachine orchestrates the authorize -> code -> token -> refresh flow.
//
// It owns no HTTP concerns: the API layer parses requests and calls in, and
// maps the sentinel errors back to OAuth2 wire responses. All state lives in
// the injected registry, ledger, and store; the machine itself is stateless
// and safe for concurrent use.
type GrantMachine struct {
	registry *Registry
	codes    *CodeLedger
	tokens   *TokenStore
	logger   Logger
}

// NewGrantMachine creates a grant machine over the given stores.
func NewGrantMachine(registry *Registry, codes *CodeLedger, tokens *TokenStore) *GrantMachine {
	return &GrantMachine{
		registry: registry,
		codes:    codes,
		tokens:   tokens,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the grant machine.
func (g *GrantMachine) SetLogger(logger Logger) {
	g.logger = logger
}

// BeginAuthorization validates the client and returns the login prompt
// context for the authorization form.
//
// redirect_uri and state are passed through untouched. There is no redirect
// URI allow-list; see the package documentation for why that gap is kept.
//
// Returns:
//   - LoginPrompt: Parameters to render into the login form
//   - error: ErrUnknownClient if client_id is not registered
func (g *GrantMachine) BeginAuthorization(clientID, redirectURI, state string) (LoginPrompt, error) {
	if !g.registry.Known(clientID) {
		g.logger.Warn("authorization attempt from unknown client", "client_id", clientID)
		return LoginPrompt{}, ErrUnknownClient
	}

	return LoginPrompt{
		ClientID:    clientID,
		RedirectURI: redirectURI,
		State:       state,
	}, nil
}

// SubmitLogin completes the login form submission and issues an
// authorization code.
//
// Credentials are accepted unconditionally - this is an account-linking
// sandbox, not an identity provider. The username and password parameters
// exist only to mirror the form.
//
// Returns:
//   - string: The redirect URL carrying code and state query parameters
//   - error: Currently always nil; the signature leaves room for validation
func (g *GrantMachine) SubmitLogin(clientID, redirectURI, state, username, password string) (string, error) {
	_ = username
	_ = password

	code := newRandomToken(codeEntropyBytes)
	g.codes.Put(AuthorizationCode{
		Code:        code,
		ClientID:    clientID,
		RedirectURI: redirectURI,
	})

	g.logger.Info("authorization code issued", "client_id", clientID)

	return buildRedirect(redirectURI, code, state), nil
}

// Exchange handles a token-endpoint request, dispatching on grant_type.
//
// Returns:
//   - *TokenResponse: Token payload on success
//   - error: ErrInvalidClient, ErrInvalidGrant, or ErrUnsupportedGrantType
func (g *GrantMachine) Exchange(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	switch req.GrantType {
	case GrantAuthorizationCode:
		return g.exchangeCode(ctx, req)
	case GrantRefreshToken:
		return g.exchangeRefresh(ctx, req)
	default:
		return nil, ErrUnsupportedGrantType
	}
}

// exchangeCode redeems a single-use authorization code for a token pair.
func (g *GrantMachine) exchangeCode(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	if err := g.registry.Authenticate(req.ClientID, req.ClientSecret); err != nil {
		return nil, err
	}

	// Pop the code first so a losing concurrent exchange cannot redeem it.
	stored, ok := g.codes.Consume(req.Code)
	if !ok || stored.ClientID != req.ClientID || stored.RedirectURI != req.RedirectURI {
		g.logger.Warn("invalid code exchange",
			"client_id", req.ClientID,
			"code_known", ok,
		)
		return nil, ErrInvalidGrant
	}

	accessToken := g.newAccessToken()
	refreshToken := newRandomToken(refreshTokenEntropyBytes)

	if err := g.tokens.PutAccess(ctx, accessToken, req.ClientID); err != nil {
		return nil, fmt.Errorf("storing access token: %w", err)
	}
	if err := g.tokens.PutRefresh(ctx, refreshToken, req.ClientID); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	g.logger.Info("token pair issued", "client_id", req.ClientID)

	return &TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    TokenTTLSeconds,
		RefreshToken: refreshToken,
	}, nil
}

// exchangeRefresh mints a new access token from an existing refresh token.
// The refresh token itself is never rotated or invalidated.
func (g *GrantMachine) exchangeRefresh(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	if err := g.registry.Authenticate(req.ClientID, req.ClientSecret); err != nil {
		return nil, err
	}

	owner, ok := g.tokens.RefreshOwner(req.RefreshToken)
	if !ok || owner != req.ClientID {
		g.logger.Warn("invalid refresh exchange",
			"client_id", req.ClientID,
			"token_known", ok,
		)
		return nil, ErrInvalidGrant
	}

	accessToken := g.newAccessToken()
	if err := g.tokens.PutAccess(ctx, accessToken, req.ClientID); err != nil {
		return nil, fmt.Errorf("storing access token: %w", err)
	}

	g.logger.Info("access token refreshed", "client_id", req.ClientID)

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   TokenTTLSeconds,
	}, nil
}

// newAccessToken generates an access token not already present in the store.
// A collision on 16 random bytes is effectively impossible; the loop exists
// so the uniqueness invariant holds by construction rather than by odds.
func (g *GrantMachine) newAccessToken() string {
	for {
		token := newRandomToken(accessTokenEntropyBytes)
		if !g.tokens.HasAccess(token) {
			return token
		}
	}
}

// buildRedirect appends code and state to the redirect URI, using & when the
// URI already carries a query component and ? otherwise.
func buildRedirect(redirectURI, code, state string) string {
	separator := "?"
	if strings.Contains(redirectURI, "?") {
		separator = "&"
	}
	return redirectURI + separator +
		"code=" + url.QueryEscape(code) +
		"&state=" + url.QueryEscape(state)
}
