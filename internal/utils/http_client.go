package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around resty.Client preconfigured for the vault
// JSON API. It embeds *resty.Client so all of its methods are available
// directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with its own connection pool, targeting
// baseURL. A zero timeout leaves resty's default (no timeout) in place.
//
//	client := utils.NewHTTPClient("http://localhost:8080", 5*time.Second)
//	resp, err := client.R().Get("/api/vault")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
