package util

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// NewProviderBackOff retries provider calls with exponential backoff until maxElapsed or ctx is done
func NewProviderBackOff(ctx context.Context, maxElapsed time.Duration) backoff.BackOffContext {
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 200 * time.Millisecond
	retryBackoff.MaxInterval = 2 * time.Second
	retryBackoff.MaxElapsedTime = maxElapsed

	return backoff.WithContext(retryBackoff, ctx)
}

// IsRetryableStatus reports statuses worth retrying: rate limiting and upstream failures
func IsRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}
