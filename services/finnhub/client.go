package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"marketmuse_backend/models"
)

const baseURL = "https://finnhub.io/api/v1"

// ErrNoData is returned when the provider answered but no field carried data,
// which is how Finnhub reports unknown symbols.
var ErrNoData = errors.New("finnhub: no data for symbol")

// Fetcher retrieves the latest market data for one symbol.
type Fetcher interface {
	FetchSymbolInfo(ctx context.Context, symbol string) (models.SymbolInfo, error)
}

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=finnhub_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Finnhub REST API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query carries the API token.
	query url.Values
	log   *zap.Logger
}

// ClientOption is a configuration option for the Finnhub client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithLogger sets the logger used for degraded optional lookups.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new Finnhub client.
func NewClient(token string, options ...ClientOption) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{"Accept": []string{"application/json"}},
		query:      url.Values{},
		log:        zap.NewNop(),
	}
	if token != "" {
		// https://finnhub.io/docs/api/authentication
		client.query.Set("token", token)
	}
	for _, option := range options {
		option(client)
	}
	return client
}
