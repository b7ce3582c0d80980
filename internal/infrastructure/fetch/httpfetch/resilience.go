package httpfetch

import (
	"context"
	"errors"
	"net"

	"github.com/docqa-labs/docqa/internal/infrastructure/resilience"
)

// The fetch contract is a single attempt per request, so nothing is marked
// retryable; network and 5xx failures still feed the breaker so a dead
// document host stops consuming the timeout budget of every request.
func classifyFetchError(err error) resilience.Verdict {
	if err == nil {
		return resilience.Verdict{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Verdict{Retryable: false, RecordFailure: false}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return resilience.Verdict{Retryable: false, RecordFailure: statusErr.StatusCode >= 500}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.Verdict{Retryable: false, RecordFailure: true}
	}
	return resilience.Verdict{Retryable: false, RecordFailure: false}
}
