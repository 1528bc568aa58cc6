package models

// Requests for market HTTP endpoints.

type SearchRequest struct {
	Query string `query:"query" json:"query" validate:"max=64"`
}

type SymbolRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,max=16"`
}

type HistoryRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,max=16"`
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
}

type MoverHistoryRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=100"`
}
