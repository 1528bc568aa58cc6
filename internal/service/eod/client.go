package eod

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"MarketPulse/internal/domain/errs"
	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
	xutil "MarketPulse/pkg/util"
)

// Provider names the upstream in errors and metrics.
const Provider = "eod"

// indexSymbols trade on the INDX exchange rather than US.
var indexSymbols = map[string]bool{"VIX": true, "TNX": true, "GSPC": true, "DJI": true, "IXIC": true}

// Client is an EOD Historical Data REST client.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{apiKey: apiKey, baseURL: "https://eodhd.com/api"}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	return c
}

// Ticker maps a display symbol to the provider ticker: VIX -> VIX.INDX, AAPL -> AAPL.US.
// Tickers that already carry an exchange are kept.
func Ticker(symbol string) string {
	s := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(symbol), "^"))
	if strings.Contains(s, ".") {
		return s
	}
	if indexSymbols[s] {
		return s + ".INDX"
	}
	return s + ".US"
}

// FetchQuote reads the real-time quote of ticker.
func (c *Client) FetchQuote(ctx context.Context, ticker string) (models.RawQuote, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/real-time/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return models.RawQuote{}, errs.Fetch(Provider, "quote", ticker, err)
	}

	// multi-ticker requests answer with an array
	raw = bytes.TrimSpace(raw)
	var q models.RawQuote
	if len(raw) > 0 && raw[0] == '[' {
		var qs []models.RawQuote
		if err := json.Unmarshal(raw, &qs); err != nil {
			return models.RawQuote{}, errs.Fetch(Provider, "quote", ticker, &xhttp.DecodeError{Err: err})
		}
		if len(qs) == 0 {
			return models.RawQuote{}, errs.Fetch(Provider, "quote", ticker, errs.ErrNoData)
		}
		q = qs[0]
	} else if err := json.Unmarshal(raw, &q); err != nil {
		return models.RawQuote{}, errs.Fetch(Provider, "quote", ticker, &xhttp.DecodeError{Err: err})
	}
	if q.Code == "" {
		q.Code = ticker
	}
	return q, nil
}

// FetchHistory reads daily bars in [from, to], oldest first.
func (c *Client) FetchHistory(ctx context.Context, ticker string, from, to time.Time) ([]models.RawBar, error) {
	params := map[string][]string{
		"from":   {xutil.FormatDate(from)},
		"to":     {xutil.FormatDate(to)},
		"period": {"d"},
		"order":  {"a"},
	}
	var bars []models.RawBar
	if err := c.get(ctx, "/eod/"+url.PathEscape(ticker), params, &bars); err != nil {
		return nil, errs.Fetch(Provider, "history", ticker, err)
	}
	return bars, nil
}

// Search looks up instruments by code or name.
func (c *Client) Search(ctx context.Context, query string) ([]models.RawSearchResult, error) {
	var res []models.RawSearchResult
	params := map[string][]string{"limit": {"10"}}
	if err := c.get(ctx, "/search/"+url.PathEscape(query), params, &res); err != nil {
		return nil, errs.Fetch(Provider, "search", query, err)
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	if c.apiKey == "" {
		return errs.ErrMissingAPIKey
	}
	q := map[string][]string{
		"api_token": {c.apiKey},
		"fmt":       {"json"},
	}
	for k, v := range params {
		q[k] = v
	}
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		QueryParams: q,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}
