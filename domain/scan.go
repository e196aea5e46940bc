package domain

import (
	"errors"
)

var (
	MessageSuccessScanLabel = "label scanned successfully"

	MessageFailedScanLabel      = "failed to scan label"
	MessageFailedScanBlocked    = "label image was rejected by the vision model"
	MessageFailedScanUnreadable = "could not read the label, please enter the details manually"

	ErrInvalidImage     = errors.New("invalid or empty image data")
	ErrTransportFailure = errors.New("vision api unreachable")
	ErrUpstreamRejected = errors.New("vision api rejected the request")
	ErrContentBlocked   = errors.New("vision api blocked the request")
	ErrEmptyResponse    = errors.New("vision api returned no content")
	ErrMalformedPayload = errors.New("vision api response could not be decoded")
	ErrMalformedResult  = errors.New("extracted text is not a valid result object")
)

// ExtractionResult is the structured outcome of a label scan. ExpirationDate
// stays a raw YYYY-MM-DD string (nil when the model could not find one);
// parsing it into a time.Time is the caller's job.
type ExtractionResult struct {
	ProductName    string  `json:"product_name"`
	ExpirationDate *string `json:"expiration_date"`
}
