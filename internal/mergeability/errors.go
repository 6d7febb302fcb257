package mergeability

import (
	"errors"
	"fmt"
)

var (
	// ErrRetryExhausted is matched by errors.Is when the poll budget is spent
	// without GitHub resolving mergeability.
	ErrRetryExhausted = errors.New("mergeability still unresolved")
	// ErrTransport is matched by errors.Is when a fetch itself failed.
	ErrTransport = errors.New("pull request fetch failed")
)

// RetryExhaustedError is returned after the retry budget is spent.
type RetryExhaustedError struct {
	Number   int
	Attempts int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf(`PR#%d - field "mergeable" is still null after %d attempts, giving up`, e.Number, e.Attempts)
}

func (e *RetryExhaustedError) Is(target error) bool {
	return target == ErrRetryExhausted
}

// TransportError wraps a failed fetch. It is never retried by the resolver.
type TransportError struct {
	Number int
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("PR#%d - fetch failed: %v", e.Number, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// IsRetryExhausted reports whether err is (or wraps) a RetryExhaustedError.
func IsRetryExhausted(err error) bool {
	return errors.Is(err, ErrRetryExhausted)
}

// IsTransportError reports whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}
