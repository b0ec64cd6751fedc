package retrier

import "errors"

var (
	ErrNegativeMaxRetries     = errors.New("max retries must not be negative")
	ErrRetryCountPreset       = errors.New("retry count must not be preset")
	ErrNonPositiveBackoffBase = errors.New("backoff base must be positive")
)
