package usecase

import "MarketPulse/internal/domain/models"

// Indices are the major index instruments of the snapshot. VIX resolves to VIX.INDX.
var Indices = []string{"SPY", "QQQ", "DIA", "IWM", "VIX"}

// MarketDataSymbols back the /data map.
var MarketDataSymbols = []string{"SPY", "QQQ", "DIA", "IWM", "TLT"}

// WatchList is scanned for the top mover.
var WatchList = []string{"AAPL", "MSFT", "AMZN", "GOOGL", "META", "NVDA", "JPM", "V", "XOM"}

type sectorInfo struct {
	Symbol string
	Name   string
	Color  string
}

// Sectors are the SPDR sector ETFs.
var Sectors = []sectorInfo{
	{"XLF", "Financial", "rgb(54, 162, 235)"},
	{"XLK", "Technology", "rgb(75, 192, 192)"},
	{"XLV", "Healthcare", "rgb(153, 102, 255)"},
	{"XLE", "Energy", "rgb(255, 159, 64)"},
	{"XLI", "Industrial", "rgb(255, 99, 132)"},
	{"XLP", "Consumer Staples", "rgb(255, 205, 86)"},
	{"XLY", "Consumer Discretionary", "rgb(201, 203, 207)"},
	{"XLB", "Materials", "rgb(75, 192, 192)"},
	{"XLU", "Utilities", "rgb(54, 162, 235)"},
	{"XLRE", "Real Estate", "rgb(153, 102, 255)"},
	{"XLC", "Communication", "rgb(255, 159, 64)"},
}

func sectorSymbols() []string {
	out := make([]string, len(Sectors))
	for i, s := range Sectors {
		out[i] = s.Symbol
	}
	return out
}

// Macro proxy legs.
const (
	BondETF     = "TLT"
	CurrencyETF = "UUP"
	CryptoETF   = "IBIT"
	Treasury10Y = "TNX"
)

// FRED series in the macro view.
var MacroSeries = []struct {
	ID   string
	Name string
}{
	{"UNRATE", "Unemployment Rate"},
	{"CPIAUCSL", "Consumer Price Index"},
	{"UMCSENT", "Consumer Sentiment"},
	{"DGS10", "10-Year Treasury Yield"},
}

var Themes = []models.Theme{
	{
		ID:          "ai",
		Name:        "Artificial Intelligence",
		Description: "Companies leading in AI and machine learning",
		Color:       "blue",
		Symbols:     []string{"NVDA", "MSFT", "GOOGL"},
	},
	{
		ID:          "semiconductors",
		Name:        "Semiconductors",
		Description: "Leading semiconductor manufacturers and designers",
		Color:       "purple",
		Symbols:     []string{"NVDA", "AMD", "INTC"},
	},
	{
		ID:          "financials",
		Name:        "Financial Services",
		Description: "Major financial institutions and services",
		Color:       "green",
		Symbols:     []string{"JPM", "GS", "MS"},
	},
	{
		ID:          "energy",
		Name:        "Energy Sector",
		Description: "Traditional and renewable energy companies",
		Color:       "yellow",
		Symbols:     []string{"XLE", "CVX", "XOM"},
	},
}

// MarketNewsQuery feeds the snapshot headlines.
const MarketNewsQuery = "stock market news today"
