// Package scoring implements the HTTP adapter for the remote risk-scoring
// service (the PAMA threat-detection API).
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/ports"
)

// DefaultBaseURL is where the scoring service listens unless configured
// otherwise.
const DefaultBaseURL = "http://localhost:8000"

// Client is an HTTP ScoringClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a scoring client for the given base URL. An empty base
// URL falls back to DefaultBaseURL; a zero timeout gets a sane default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ping implements ports.ScoringClient. Any successful response counts as
// online; there is no body contract.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("scoring service: %s", resp.Status)
	}
	return nil
}

// Predict implements ports.ScoringClient.
func (c *Client) Predict(ctx context.Context, scoreReq domain.ScoreRequest) (domain.Verdict, error) {
	body, err := json.Marshal(scoreReq)
	if err != nil {
		return domain.Verdict{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return domain.Verdict{}, err
	}
	req.Header.Set("content-type", "application/json")

	var verdict domain.Verdict
	if err := c.do(req, &verdict); err != nil {
		return domain.Verdict{}, err
	}
	return verdict, nil
}

// Incidents implements ports.ScoringClient.
func (c *Client) Incidents(ctx context.Context) ([]domain.Incident, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/notifications", nil)
	if err != nil {
		return nil, err
	}

	var incidents []domain.Incident
	if err := c.do(req, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// UserCommands implements ports.ScoringClient.
func (c *Client) UserCommands(ctx context.Context, username string) ([]domain.UserCommand, error) {
	endpoint := c.baseURL + "/user_commands/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var commands []domain.UserCommand
	if err := c.do(req, &commands); err != nil {
		return nil, err
	}
	return commands, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("scoring service: %s", resp.Status)
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return err
	}
	if err := json.Unmarshal(responseBody.Bytes(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ ports.ScoringClient = (*Client)(nil)
