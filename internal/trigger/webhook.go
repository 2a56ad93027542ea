package trigger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/config"
)

// WebhookClient invokes the automation webhook over HTTP.
//
// The endpoint contract (Jenkins generic webhook trigger):
//
//	POST {url}?token={job_token}&action={action}&autoApprove=true
//	Authorization: Basic {username}:{api_token}
//
// A 200 response means the job was queued; anything else is a failure.
type WebhookClient struct {
	url      string
	username string
	apiToken string
	jobToken string
	client   *http.Client
	logger   Logger
}

// NewWebhookClient creates a webhook client from the webhook configuration.
// The outbound call timeout is fixed at construction.
func NewWebhookClient(cfg config.WebhookConfig) *WebhookClient {
	return &WebhookClient{
		url:      cfg.URL,
		username: cfg.Username,
		apiToken: cfg.APIToken,
		jobToken: cfg.JobToken,
		client: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the webhook client.
func (c *WebhookClient) SetLogger(logger Logger) {
	c.logger = logger
}

// Call performs the webhook POST for an action.
//
// Parameters:
//   - ctx: Context for cancellation; the client timeout also applies
//   - action: ActionApply or ActionDestroy
//
// Returns:
//   - error: ErrUnreachable on transport failure, ErrUnexpectedStatus on a
//     non-200 response, nil on success
func (c *WebhookClient) Call(ctx context.Context, action string) error {
	params := url.Values{}
	params.Set("token", c.jobToken)
	params.Set("action", action)
	params.Set("autoApprove", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.SetBasicAuth(c.username, c.apiToken)

	c.logger.Debug("sending webhook request", "action", action)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // Best effort drain

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
