package jellyfin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Client triggers library rescans on a Jellyfin server. The refresh is
// fire-and-forget: callers treat failures as informational.
type Client struct {
	http   *resty.Client
	apiKey string
	userID string
}

func NewClient(baseURL, apiKey, userID string) *Client {
	client := resty.New().SetBaseURL(baseURL)
	logrus.Infof("Initialized Jellyfin client with baseURL: %s", baseURL)
	return &Client{
		http:   client,
		apiKey: apiKey,
		userID: userID,
	}
}

// Refresh asks the server to rescan its library. Success is an empty
// 204 response.
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("userId", c.userID).
		Post("/Library/Refresh")
	if err != nil {
		return fmt.Errorf("library refresh request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("unexpected response status: %d", resp.StatusCode())
	}
	return nil
}
