// Package geocoding resolves free-text places to coordinates through the
// Mapbox forward geocoding API.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/wanderlust/config"
	"github.com/Domenick1991/wanderlust/internal/domain"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg config.GeocodingConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

type featureCollection struct {
	Features []struct {
		Geometry domain.Geometry `json:"geometry"`
	} `json:"features"`
}

// Forward returns the point of the best match for query, or nil when there is
// no match or no access token is configured.
func (c *Client) Forward(ctx context.Context, query string) (*domain.Geometry, error) {
	query = strings.TrimSpace(query)
	if c.token == "" || query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("limit", "1")
	endpoint := fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocoding request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request: unexpected status %d", resp.StatusCode)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, nil
	}
	g := fc.Features[0].Geometry
	if g.Type == "" {
		g.Type = "Point"
	}
	return &g, nil
}
