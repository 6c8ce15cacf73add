package textaction

import (
	"errors"

	"github.com/aleister1102/redline/internal/common/errorwrapper"
)

// IsRetryable classifies a failure for the caller's retry decision; the
// client itself never retries. Timeouts and 5xx service failures are worth
// re-issuing with the same request, as is an empty-response classification.
// Validation and authentication failures are terminal, as are 4xx statuses.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var timeoutErr *errorwrapper.TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}

	var serviceErr *errorwrapper.ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Retryable()
	}

	var clsErr *errorwrapper.ClassificationError
	if errors.As(err, &clsErr) {
		return clsErr.Reason == "empty-response"
	}

	return false
}
