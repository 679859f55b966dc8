package ratelimit

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// PerMinute returns a limiter allowing rpm requests per minute with the given
// burst. Non-positive values are clamped to one.
func PerMinute(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		rpm = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), burst)
}

// Doer is satisfied by *http.Client and the provider client interfaces.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient gates every upstream request through a shared limiter.
type HTTPClient struct {
	Next    Doer
	Limiter *rate.Limiter
}

// NewHTTPClient wraps next with limiter.
func NewHTTPClient(next Doer, limiter *rate.Limiter) *HTTPClient {
	return &HTTPClient{Next: next, Limiter: limiter}
}

func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.Next.Do(req)
}
