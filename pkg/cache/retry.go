package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks failures to reach a remote cache.
var ErrNetwork = errors.New("cache unreachable")

// RetryableError marks an error that is worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err for [Backoff.Do]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	// Attempts is the total number of calls; values below 1 mean one call.
	Attempts int

	// Delay is the first pause. It doubles after every failed attempt.
	Delay time.Duration
}

// connectBackoff is used when dialing Redis.
var connectBackoff = Backoff{Attempts: 3, Delay: 200 * time.Millisecond}

// Do calls fn until it succeeds, fails with an error not marked retryable,
// runs out of attempts or ctx is done. It returns the last error.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
