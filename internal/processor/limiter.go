package processor

import "context"

// Limiter bounds how many media files are processed at once. One Limiter
// shared by several processors caps them together.
type Limiter struct {
	slots chan struct{}
}

// NewLimiter allows n concurrent slots; n <= 0 means one.
func NewLimiter(n int) *Limiter {
	if n <= 0 {
		n = 1
	}
	return &Limiter{slots: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Limiter) Release() {
	<-l.slots
}

// Cap is the number of slots.
func (l *Limiter) Cap() int {
	return cap(l.slots)
}
