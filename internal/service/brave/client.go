package brave

import (
	"context"
	"strconv"
	"strings"

	"MarketPulse/internal/domain/errs"
	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
)

const Provider = "brave"

type newsResponse struct {
	Results []models.RawArticle `json:"results"`
}

// Client is a Brave Search news client.
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
	c := &Client{apiKey: apiKey, baseURL: "https://api.search.brave.com/res/v1"}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	return c
}

// FetchNews returns up to count news results for query.
func (c *Client) FetchNews(ctx context.Context, query string, count int) ([]models.RawArticle, error) {
	if c.apiKey == "" {
		return nil, errs.Fetch(Provider, "news", query, errs.ErrMissingAPIKey)
	}
	if count <= 0 {
		count = 10
	}

	var resp newsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/news/search",
		Headers: map[string]string{
			"X-Subscription-Token": c.apiKey,
		},
		QueryParams: map[string][]string{
			"q":     {query},
			"count": {strconv.Itoa(count)},
		},
	}, &resp)
	if err != nil {
		return nil, errs.Fetch(Provider, "news", query, err)
	}
	if len(resp.Results) > count {
		resp.Results = resp.Results[:count]
	}
	return resp.Results, nil
}
