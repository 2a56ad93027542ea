package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/config"
	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/gray-cloud-bridge/internal/oauth"
	"github.com/nerrad567/gray-cloud-bridge/internal/smarthome"
)

// memTokenRepository is an in-memory oauth.TokenRepository for handler tests.
type memTokenRepository struct {
	mu      sync.Mutex
	access  []oauth.StoredToken
	refresh []oauth.StoredToken
}

func (m *memTokenRepository) SaveAccess(_ context.Context, token *oauth.StoredToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.CreatedAt = time.Now().UTC()
	m.access = append(m.access, *token)
	return nil
}

func (m *memTokenRepository) SaveRefresh(_ context.Context, token *oauth.StoredToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.CreatedAt = time.Now().UTC()
	m.refresh = append(m.refresh, *token)
	return nil
}

func (m *memTokenRepository) ListAccess(context.Context) ([]oauth.StoredToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]oauth.StoredToken(nil), m.access...), nil
}

func (m *memTokenRepository) ListRefresh(context.Context) ([]oauth.StoredToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]oauth.StoredToken(nil), m.refresh...), nil
}

// recordingTrigger always reports the trigger as forwarded.
type recordingTrigger struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingTrigger) TryTrigger(_ context.Context, action string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	return true
}

// newTestServer builds a fully wired server on in-memory stores.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	registry := oauth.NewRegistry([]oauth.Client{
		{ID: "google-home", Secret: "correct-secret"},
	})
	tokens := oauth.NewTokenStore(&memTokenRepository{})
	grant := oauth.NewGrantMachine(registry, oauth.NewCodeLedger(), tokens)

	dispatcher := smarthome.NewDispatcher(config.SmartHomeConfig{
		AgentUserID: "user-1234",
		DeviceID:    "jenkins_job",
		DeviceName:  "Jenkins Apply",
	}, smarthome.NewStateTable(), &recordingTrigger{})

	srv, err := New(Deps{
		Config:     config.APIConfig{Host: "127.0.0.1", Port: 5000},
		Logger:     logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"}, "test"),
		Grant:      grant,
		Dispatcher: dispatcher,
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func TestNew_MissingDeps(t *testing.T) {
	logger := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"}, "test")

	tests := []struct {
		name string
		deps Deps
	}{
		{name: "no logger", deps: Deps{}},
		{name: "no grant machine", deps: Deps{Logger: logger}},
		{
			name: "no dispatcher",
			deps: Deps{
				Logger: logger,
				Grant:  oauth.NewGrantMachine(oauth.NewRegistry(nil), oauth.NewCodeLedger(), oauth.NewTokenStore(&memTokenRepository{})),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.deps); err == nil {
				t.Error("New() error = nil, want missing dependency error")
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET /api/v1/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestHealthCheck_NotStarted(t *testing.T) {
	srv := newTestServer(t)
	if err := srv.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() before Start() = nil, want error")
	}
}

func TestClose_NotStarted(t *testing.T) {
	srv := newTestServer(t)
	if err := srv.Close(); err != nil {
		t.Errorf("Close() before Start() error = %v, want nil", err)
	}
}
