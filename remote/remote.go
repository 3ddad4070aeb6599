// Package remote provides the HTTP clients for the two upstream feeds:
// the authoritative topic refresh API and the academic-resource API.
//
// Failures are typed so callers can tell transport problems apart from
// malformed payloads; both are expected, recoverable conditions for the
// retrieval pipeline.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/studiolore/studyhall/core"
)

var (
	// ErrEndpointRequired is returned when a client is built without a URL.
	ErrEndpointRequired = errors.New("endpoint URL required")

	// ErrBadStatus indicates the upstream returned a non-success status.
	ErrBadStatus = errors.New("unexpected response status")

	// ErrMalformedResponse indicates a non-JSON or schema-mismatched payload.
	ErrMalformedResponse = errors.New("malformed response payload")
)

const (
	defaultTimeout  = 10 * time.Second
	defaultRetryMax = 2
)

// TopicPayload is the document returned by the external refresh API
// for a sector.
type TopicPayload struct {
	Content        string `json:"content"`
	FurtherReading string `json:"further_reading"`
}

// TopicSource fetches authoritative content for a sector.
type TopicSource interface {
	// FetchTopic retrieves the current payload for a sector.
	// May fail with a transport error, ErrBadStatus, or ErrMalformedResponse.
	FetchTopic(ctx context.Context, sector string) (*TopicPayload, error)
}

// AcademicSource fetches supplementary summaries for a sector.
type AcademicSource interface {
	// FetchResources retrieves academic resources for a sector,
	// in the order the upstream returns them.
	FetchResources(ctx context.Context, sector string) ([]core.AcademicResource, error)
}

// Config holds settings shared by the remote clients.
// Timeout bounds every request so callers never block indefinitely.
type Config struct {
	TopicURL    string
	AcademicURL string
	Timeout     time.Duration
	RetryMax    int
}

// Normalize fills unset fields with defaults.
func (c *Config) Normalize() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryMax <= 0 {
		c.RetryMax = defaultRetryMax
	}
}

// newHTTPClient builds a retrying HTTP client with a bounded overall timeout.
func newHTTPClient(cfg Config) *retryablehttp.Client {
	r := retryablehttp.NewClient()
	r.RetryMax = cfg.RetryMax
	r.HTTPClient.Timeout = cfg.Timeout
	r.Logger = nil
	return r
}
