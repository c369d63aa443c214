// Package imagehost uploads product images to an external image hosting API
// and returns the public URL to persist on the product record.
package imagehost

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	http *resty.Client
	key  string
}

// New creates an upload client against the host's base URL. The API key is
// sent as a query parameter per the host's contract.
func New(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout)
	return &Client{http: c, key: apiKey}
}

type uploadResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload posts the image bytes base64-encoded and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, name string, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}

	var out uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.key).
		SetFormData(map[string]string{
			"name":  name,
			"image": base64.StdEncoding.EncodeToString(image),
		}).
		SetResult(&out).
		Post("/1/upload")
	if err != nil {
		return "", fmt.Errorf("image upload request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("image host status %d: %s", resp.StatusCode(), resp.String())
	}
	if !out.Success || out.Data.URL == "" {
		return "", fmt.Errorf("image host rejected upload")
	}
	return out.Data.URL, nil
}
