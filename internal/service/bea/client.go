package bea

import (
	"context"
	"fmt"
	"strings"

	"MarketPulse/internal/domain/errs"
	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
)

const Provider = "bea"

// GDPTable is the NIPA table of real GDP percent change.
const GDPTable = "T10101"

type dataResponse struct {
	BEAAPI struct {
		Results struct {
			Data  []models.RawGDPRow `json:"Data"`
			Error *struct {
				APIErrorDescription string `json:"APIErrorDescription"`
			} `json:"Error"`
		} `json:"Results"`
	} `json:"BEAAPI"`
}

// Client reads the BEA NIPA dataset.
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
	c := &Client{apiKey: apiKey, baseURL: "https://apps.bea.gov/api"}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	return c
}

// FetchGDP returns the quarterly rows of the GDP table.
func (c *Client) FetchGDP(ctx context.Context) ([]models.RawGDPRow, error) {
	if c.apiKey == "" {
		return nil, errs.Fetch(Provider, "gdp", GDPTable, errs.ErrMissingAPIKey)
	}

	var resp dataResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/data",
		QueryParams: map[string][]string{
			"UserID":       {c.apiKey},
			"method":       {"GetData"},
			"datasetname":  {"NIPA"},
			"TableName":    {GDPTable},
			"Frequency":    {"Q"},
			"Year":         {"X"},
			"ResultFormat": {"JSON"},
		},
	}, &resp)
	if err != nil {
		return nil, errs.Fetch(Provider, "gdp", GDPTable, err)
	}
	// BEA reports request errors inside a 200 body
	if e := resp.BEAAPI.Results.Error; e != nil {
		return nil, errs.Fetch(Provider, "gdp", GDPTable, fmt.Errorf("%w: %s", errs.ErrNoData, e.APIErrorDescription))
	}
	if len(resp.BEAAPI.Results.Data) == 0 {
		return nil, errs.Fetch(Provider, "gdp", GDPTable, errs.ErrNoData)
	}
	return resp.BEAAPI.Results.Data, nil
}
