package http

// DataEnvelope is the success shape of every data endpoint.
type DataEnvelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// ResultsEnvelope is the success shape of search-style endpoints.
type ResultsEnvelope struct {
	Success   bool        `json:"success"`
	Results   interface{} `json:"results"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorEnvelope is returned on any failure.
type ErrorEnvelope struct {
	Error     string            `json:"error"`
	Details   []ValidationError `json:"details,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"symbol"`
	Message string                 `json:"message,omitempty" example:"symbol is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
