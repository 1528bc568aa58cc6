package fred

import (
	"context"
	"strconv"
	"strings"

	"MarketPulse/internal/domain/errs"
	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
)

const Provider = "fred"

type observationsResponse struct {
	Observations []models.RawObservation `json:"observations"`
}

// Client reads FRED economic series.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{apiKey: apiKey, baseURL: "https://api.stlouisfed.org/fred"}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	return c
}

// FetchSeries returns the latest limit observations of seriesID, newest first.
func (c *Client) FetchSeries(ctx context.Context, seriesID string, limit int) ([]models.RawObservation, error) {
	if c.apiKey == "" {
		return nil, errs.Fetch(Provider, "series", seriesID, errs.ErrMissingAPIKey)
	}
	if limit <= 0 {
		limit = 2
	}

	var resp observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/series/observations",
		QueryParams: map[string][]string{
			"series_id":  {seriesID},
			"api_key":    {c.apiKey},
			"file_type":  {"json"},
			"sort_order": {"desc"},
			"limit":      {strconv.Itoa(limit)},
		},
	}, &resp)
	if err != nil {
		return nil, errs.Fetch(Provider, "series", seriesID, err)
	}
	return resp.Observations, nil
}
