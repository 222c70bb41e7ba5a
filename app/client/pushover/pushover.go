package pushover

import (
	"careerchat/app/config"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/do"
)

const (
	defaultAPIURL = "https://api.pushover.net/1/messages.json"
	pushTimeout   = 10 * time.Second
)

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	apiURL     string
}

func NewClient(di *do.Injector) (*Client, error) {
	return &Client{
		cfg: do.MustInvoke[*config.Config](di),
		httpClient: &http.Client{
			Timeout: pushTimeout,
		},
		apiURL: defaultAPIURL,
	}, nil
}

// Push delivers a notification on a best-effort basis. Missing credentials
// disable delivery; transport and API errors are logged and swallowed so a
// failed notification never reaches the conversation path.
func (c *Client) Push(ctx context.Context, text string) {
	if c.cfg.Pushover.Token == "" || c.cfg.Pushover.User == "" {
		slog.Warn("Pushover credentials not set, skipping notification")
		return
	}

	form := url.Values{}
	form.Set("token", c.cfg.Pushover.Token)
	form.Set("user", c.cfg.Pushover.User)
	form.Set("message", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		slog.Error("Failed to build pushover request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to send pushover notification", "error", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.Error("Pushover rejected notification", "status", resp.StatusCode)
	}
}
