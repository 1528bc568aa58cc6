package errs

import (
	"errors"
	"fmt"
	"net/http"

	xhttp "MarketPulse/pkg/http"
)

var (
	ErrMissingAPIKey = errors.New("missing api key")
	ErrNoData        = errors.New("no data")
	ErrInvalidSymbol = errors.New("invalid symbol")
)

// FetchError is a failed upstream call.
type FetchError struct {
	Provider string
	Op       string
	Key      string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s %q: status %d: %v", e.Provider, e.Op, e.Key, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s %q: %v", e.Provider, e.Op, e.Key, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports network failures, 429 and 5xx.
func (e *FetchError) Retryable() bool {
	if errors.Is(e.Err, ErrMissingAPIKey) || errors.Is(e.Err, ErrNoData) {
		return false
	}
	var de *xhttp.DecodeError
	if errors.As(e.Err, &de) {
		return false
	}
	if e.Status == 0 {
		return true
	}
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Fetch wraps err from an upstream call, lifting the HTTP status when there is one.
func Fetch(provider, op, key string, err error) error {
	if err == nil {
		return nil
	}
	fe := &FetchError{Provider: provider, Op: op, Key: key, Err: err}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		fe.Status = se.StatusCode
	}
	return fe
}

// IsFetch reports whether err came from an upstream call.
func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
