package vision

import (
	"fmt"

	"FreshTrack/domain"
)

// UpstreamError is returned when the vision API answers with a non-2xx
// status. It matches domain.ErrUpstreamRejected under errors.Is.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("vision api error: HTTP %d - %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return domain.ErrUpstreamRejected
}

// BlockedError is returned when the model refuses the prompt. It matches
// domain.ErrContentBlocked under errors.Is.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("vision api blocked the request: %s", e.Reason)
}

func (e *BlockedError) Unwrap() error {
	return domain.ErrContentBlocked
}

// ResultError is returned when the candidate text does not decode as the
// expected two-key JSON object. It carries both the raw and the sanitized
// text for diagnostics and matches domain.ErrMalformedResult under errors.Is.
type ResultError struct {
	RawText       string
	SanitizedText string
	Cause         error
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("failed to parse extraction result: %v - sanitized text: %s", e.Cause, e.SanitizedText)
}

func (e *ResultError) Unwrap() error {
	return domain.ErrMalformedResult
}
