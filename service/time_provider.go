package service

import (
	"time"

	"myregistry/interfaces"
)

// timeProvider implements interfaces.TimeProvider. It returns the current
// time via the injected now func. Every liveness timestamp, lock stamp and
// expiry comparison in the registry goes through it, so tests can step time
// deterministically. Built in cmd/main with time.Now().UTC.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	if now == nil {
		panic("service.time_provider.go: now is required")
	}
	return &timeProvider{now: now}
}

// Now returns current time from the injected function (UTC in prod or fixed in tests).
func (t *timeProvider) Now() time.Time {
	return t.now()
}
