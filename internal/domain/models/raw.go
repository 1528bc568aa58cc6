package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	xutil "MarketPulse/pkg/util"
)

// Flex is a lenient upstream number. It accepts JSON numbers and numeric
// strings; null, "NA", booleans, NaN and anything else decode as absent.
type Flex struct {
	Value float64
	Valid bool
}

// F builds a present Flex. Used by fakes and tests.
func F(v float64) Flex { return Flex{Value: v, Valid: true} }

func (f *Flex) UnmarshalJSON(data []byte) error {
	*f = Flex{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
	} else {
		s = string(data)
	}
	if v, ok := xutil.ParseFloat(s); ok {
		f.Value, f.Valid = v, true
	}
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'g', -1, 64)), nil
}

// Float returns the value or 0 when absent.
func (f Flex) Float() float64 {
	if !f.Valid {
		return 0
	}
	return f.Value
}

// First returns the first present value among fs.
func First(fs ...Flex) (float64, bool) {
	for _, f := range fs {
		if f.Valid {
			return f.Value, true
		}
	}
	return 0, false
}

// RawQuote is the EOD real-time payload.
type RawQuote struct {
	Code          string `json:"code"`
	Timestamp     Flex   `json:"timestamp"`
	Open          Flex   `json:"open"`
	High          Flex   `json:"high"`
	Low           Flex   `json:"low"`
	Close         Flex   `json:"close"`
	Price         Flex   `json:"price"`
	Volume        Flex   `json:"volume"`
	PreviousClose Flex   `json:"previousClose"`
	Change        Flex   `json:"change"`
	ChangeP       Flex   `json:"change_p"`
	ChangePercent Flex   `json:"change_percent"`
}

// RawBar is one row of the EOD end-of-day endpoint.
type RawBar struct {
	Date          string `json:"date"`
	Open          Flex   `json:"open"`
	High          Flex   `json:"high"`
	Low           Flex   `json:"low"`
	Close         Flex   `json:"close"`
	AdjustedClose Flex   `json:"adjusted_close"`
	Volume        Flex   `json:"volume"`
}

// RawSearchResult is one row of the EOD search endpoint.
type RawSearchResult struct {
	Code          string `json:"Code"`
	Exchange      string `json:"Exchange"`
	Name          string `json:"Name"`
	Type          string `json:"Type"`
	Country       string `json:"Country"`
	Currency      string `json:"Currency"`
	PreviousClose Flex   `json:"previousClose"`
}

// RawArticle is one Brave news result.
type RawArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Age         string `json:"age"`
	PageAge     string `json:"page_age"`
	Source      string `json:"source"`
	MetaURL     struct {
		Hostname string `json:"hostname"`
	} `json:"meta_url"`
}

// RawObservation is one FRED series observation. Missing values are ".".
type RawObservation struct {
	Date  string `json:"date"`
	Value Flex   `json:"value"`
}

// RawGDPRow is one BEA NIPA data row.
type RawGDPRow struct {
	TableName       string `json:"TableName"`
	SeriesCode      string `json:"SeriesCode"`
	LineNumber      string `json:"LineNumber"`
	LineDescription string `json:"LineDescription"`
	TimePeriod      string `json:"TimePeriod"`
	UnitMult        string `json:"UNIT_MULT"`
	DataValue       Flex   `json:"DataValue"`
}
