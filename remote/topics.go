package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// TopicClient is the HTTP implementation of TopicSource.
type TopicClient struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

var _ TopicSource = (*TopicClient)(nil)

// NewTopicClient creates a client for the external topic refresh API.
func NewTopicClient(cfg Config) (*TopicClient, error) {
	if cfg.TopicURL == "" {
		return nil, ErrEndpointRequired
	}
	cfg.Normalize()

	return &TopicClient{
		url:    cfg.TopicURL,
		http:   newHTTPClient(cfg).StandardClient(),
		logger: slog.Default().With("component", "topic-client"),
	}, nil
}

// FetchTopic retrieves the current payload for a sector.
func (c *TopicClient) FetchTopic(ctx context.Context, sector string) (*TopicPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("sector", sector)
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var payload TopicPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	c.logger.Debug("fetched topic payload", "sector", sector, "contentLength", len(payload.Content))
	return &payload, nil
}
