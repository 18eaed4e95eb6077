package models

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest        = errors.New("bad request")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUpstream          = errors.New("upstream error")
	ErrFetchFailed       = fmt.Errorf("%w: fetch failed", ErrUpstream)
	ErrStoreBatch        = errors.New("store batch failed")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// UpstreamStatusError reports a non-successful HTTP status from a fetched URL.
type UpstreamStatusError struct {
	Code   int
	Status string
}

func (e *UpstreamStatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("upstream returned %s", e.Status)
	}
	return fmt.Sprintf("upstream returned status code %d", e.Code)
}

func (e *UpstreamStatusError) Unwrap() error { return ErrUpstream }
