package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// obtainCode walks the authorize flow and returns the issued code.
func obtainCode(t *testing.T, ts *httptest.Server, client *http.Client, redirectURI string) string {
	t.Helper()

	resp, err := client.PostForm(ts.URL+"/authorize", url.Values{
		"client_id":    {"google-home"},
		"redirect_uri": {redirectURI},
		"state":        {"s"},
	})
	if err != nil {
		t.Fatalf("POST /authorize error = %v", err)
	}
	resp.Body.Close()

	location, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("parsing Location header: %v", err)
	}
	code := location.Query().Get("code")
	if code == "" {
		t.Fatal("no code in redirect")
	}
	return code
}

func postToken(t *testing.T, ts *httptest.Server, form url.Values) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.PostForm(ts.URL+"/token", form)
	if err != nil {
		t.Fatalf("POST /token error = %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding token response: %v", err)
	}
	return resp, body
}

func TestToken_AuthorizationCodeFlow(t *testing.T) {
	ts, client := newLinkingServer(t)
	code := obtainCode(t, ts, client, "https://cb.example/redirect")

	resp, body := postToken(t, ts, url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {"https://cb.example/redirect"},
		"client_id":     {"google-home"},
		"client_secret": {"correct-secret"},
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	if body["access_token"] == "" || body["access_token"] == nil {
		t.Error("response missing access_token")
	}
	if body["refresh_token"] == "" || body["refresh_token"] == nil {
		t.Error("response missing refresh_token")
	}
	if body["token_type"] != "Bearer" {
		t.Errorf("token_type = %v, want Bearer", body["token_type"])
	}
	if body["expires_in"] != float64(3600) {
		t.Errorf("expires_in = %v, want 3600", body["expires_in"])
	}
}

func TestToken_CodeReplayRejected(t *testing.T) {
	ts, client := newLinkingServer(t)
	code := obtainCode(t, ts, client, "https://cb.example/redirect")

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {"https://cb.example/redirect"},
		"client_id":     {"google-home"},
		"client_secret": {"correct-secret"},
	}

	if resp, _ := postToken(t, ts, form); resp.StatusCode != http.StatusOK {
		t.Fatalf("first exchange status = %d, want 200", resp.StatusCode)
	}

	resp, body := postToken(t, ts, form)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("replay status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "invalid_grant" {
		t.Errorf("replay error = %v, want invalid_grant", body["error"])
	}
}

func TestToken_RefreshFlow(t *testing.T) {
	ts, client := newLinkingServer(t)
	code := obtainCode(t, ts, client, "https://cb.example/redirect")

	_, granted := postToken(t, ts, url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {"https://cb.example/redirect"},
		"client_id":     {"google-home"},
		"client_secret": {"correct-secret"},
	})

	refreshToken, _ := granted["refresh_token"].(string)
	if refreshToken == "" {
		t.Fatal("no refresh token granted")
	}

	resp, body := postToken(t, ts, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {"google-home"},
		"client_secret": {"correct-secret"},
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	if body["access_token"] == granted["access_token"] {
		t.Error("refresh returned the original access token, want a new one")
	}
	if _, present := body["refresh_token"]; present {
		t.Error("refresh response carries refresh_token, want omitted")
	}
}

func TestToken_ErrorResponses(t *testing.T) {
	ts, client := newLinkingServer(t)
	code := obtainCode(t, ts, client, "https://cb.example/redirect")

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantError  string
	}{
		{
			name: "wrong client secret",
			form: url.Values{
				"grant_type":    {"authorization_code"},
				"code":          {code},
				"redirect_uri":  {"https://cb.example/redirect"},
				"client_id":     {"google-home"},
				"client_secret": {"wrong"},
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid_client",
		},
		{
			name: "unknown client",
			form: url.Values{
				"grant_type":    {"authorization_code"},
				"code":          {code},
				"redirect_uri":  {"https://cb.example/redirect"},
				"client_id":     {"nobody"},
				"client_secret": {"whatever"},
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid_client",
		},
		{
			name: "redirect uri mismatch",
			form: url.Values{
				"grant_type":    {"authorization_code"},
				"code":          {code},
				"redirect_uri":  {"https://evil.example/elsewhere"},
				"client_id":     {"google-home"},
				"client_secret": {"correct-secret"},
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_grant",
		},
		{
			name: "unknown refresh token",
			form: url.Values{
				"grant_type":    {"refresh_token"},
				"refresh_token": {"never-issued"},
				"client_id":     {"google-home"},
				"client_secret": {"correct-secret"},
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_grant",
		},
		{
			name: "unsupported grant type",
			form: url.Values{
				"grant_type":    {"client_credentials"},
				"client_id":     {"google-home"},
				"client_secret": {"correct-secret"},
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "unsupported_grant_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postToken(t, ts, tt.form)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %v, want %s", body["error"], tt.wantError)
			}
		})
	}
}
