package api

import (
	"net/http"

	"github.com/nerrad567/gray-cloud-bridge/internal/oauth"
)

// handleToken implements the POST /token endpoint for both supported
// grant types.
//
// The request is a standard application/x-www-form-urlencoded token
// request. Errors come back as RFC 6749 JSON bodies: invalid_client with
// 401, invalid_grant and unsupported_grant_type with 400.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "malformed form body")
		return
	}

	resp, err := s.grant.Exchange(r.Context(), oauth.TokenRequest{
		GrantType:    r.PostFormValue("grant_type"),
		Code:         r.PostFormValue("code"),
		RedirectURI:  r.PostFormValue("redirect_uri"),
		RefreshToken: r.PostFormValue("refresh_token"),
		ClientID:     r.PostFormValue("client_id"),
		ClientSecret: r.PostFormValue("client_secret"),
	})
	if err != nil {
		writeOAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
