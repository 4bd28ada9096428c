package mixpanel

import (
	"errors"
	"fmt"
)

// ErrInvalidFunnelProperties is returned when a funnel event is missing the
// distinct_id needed to attribute its step.
var ErrInvalidFunnelProperties = errors.New("funnel events require a distinct_id")

// RetryError marks a submission failure as transient. The job runner decides
// whether and when to retry.
type RetryError struct {
	Err error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("transient submission failure: %s", e.Err)
}

func (e *RetryError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err signals a transient submission failure.
func IsRetryable(err error) bool {
	var retry *RetryError
	return errors.As(err, &retry)
}
