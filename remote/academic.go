package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/studiolore/studyhall/core"
)

// AcademicClient is the HTTP implementation of AcademicSource.
type AcademicClient struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

var _ AcademicSource = (*AcademicClient)(nil)

// NewAcademicClient creates a client for the academic-resource API.
func NewAcademicClient(cfg Config) (*AcademicClient, error) {
	if cfg.AcademicURL == "" {
		return nil, ErrEndpointRequired
	}
	cfg.Normalize()

	return &AcademicClient{
		url:    cfg.AcademicURL,
		http:   newHTTPClient(cfg).StandardClient(),
		logger: slog.Default().With("component", "academic-client"),
	}, nil
}

// FetchResources retrieves academic resources for a sector, preserving
// upstream order.
func (c *AcademicClient) FetchResources(ctx context.Context, sector string) ([]core.AcademicResource, error) {
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

	var resources []core.AcademicResource
	if err := json.NewDecoder(resp.Body).Decode(&resources); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	c.logger.Debug("fetched academic resources", "sector", sector, "count", len(resources))
	return resources, nil
}
