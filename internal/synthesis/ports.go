package synthesis

import (
	"context"
	"errors"
	"fmt"
)

// ErrMalformedResponse means the service answered 2xx but the expected image
// payload field was missing: a contract violation by the upstream, not a
// retryable transport failure.
var ErrMalformedResponse = errors.New("synthesis response missing image payload")

// ServiceError means the text-to-image service returned a non-success status.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("synthesis service: status %d: %s", e.StatusCode, e.Detail)
}

// Client turns a prompt into base64-encoded JPEG bytes.
type Client interface {
	Synthesize(ctx context.Context, prompt string) (string, error)
}
