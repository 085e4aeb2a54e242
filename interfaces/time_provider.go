package interfaces

import "time"

// TimeProvider supplies the current time for liveness timestamps, lock
// acquisition stamps and expiry comparisons. Injected so tests can use a
// fixed clock instead of time.Now().
//
// Constructed in cmd/main as NewTimeProvider(func() time.Time { return time.Now().UTC() }).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; in tests — fixed or stepped time
	// for deterministic expiry and lock-abandonment checks).
	Now() time.Time
}
