package optimizer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eternisai/listing-optimizer/internal/config"
)

var (
	// ErrMissingCredential is reported when no completer was configured.
	ErrMissingCredential = config.ErrMissingAPIKey

	// ErrValidation is reported when title or brand is empty.
	ErrValidation = errors.New("Title and brand are required.")

	// ErrInvalidBody wraps JSON decoding failures of the request body.
	ErrInvalidBody = errors.New("invalid request body")

	errNullBody = fmt.Errorf("%w: body is null", ErrInvalidBody)

	// ErrEmptyCompletion is reported when the provider returns no choices.
	ErrEmptyCompletion = errors.New("completion returned no choices")
)

// Error classes used in logs and metrics.
const (
	ClassConfiguration = "configuration"
	ClassValidation    = "validation"
	ClassInvalidBody   = "invalid_body"
	ClassUpstream      = "upstream"
	ClassPanic         = "panic"
	ClassUnexpected    = "unexpected"
)

// UpstreamError wraps a failed call to the completion provider. Its message is
// the provider's own error text.
type UpstreamError struct {
	Model string
	Err   error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Classify maps an error onto its class and HTTP status.
func Classify(err error) (class string, status int) {
	var upstreamErr *UpstreamError

	switch {
	case errors.Is(err, ErrValidation):
		return ClassValidation, http.StatusBadRequest
	case errors.Is(err, ErrMissingCredential):
		return ClassConfiguration, http.StatusInternalServerError
	case errors.Is(err, ErrInvalidBody):
		return ClassInvalidBody, http.StatusInternalServerError
	case errors.As(err, &upstreamErr), errors.Is(err, ErrEmptyCompletion):
		return ClassUpstream, http.StatusInternalServerError
	default:
		return ClassUnexpected, http.StatusInternalServerError
	}
}
