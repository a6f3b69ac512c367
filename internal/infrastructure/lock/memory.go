package lock

import (
	"context"
	"sync"
	"time"
)

type heldLock struct {
	token     uint64
	expiresAt time.Time
}

// MemoryLocker is the single-process fallback used when Redis is not configured.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]heldLock
	next uint64
	now  func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held: make(map[string]heldLock),
		now:  time.Now,
	}
}

func (l *MemoryLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if current, ok := l.held[key]; ok && current.expiresAt.After(now) {
		return nil, false, nil
	}

	l.next++
	token := l.next
	l.held[key] = heldLock{token: token, expiresAt: now.Add(ttl)}

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if current, ok := l.held[key]; ok && current.token == token {
			delete(l.held, key)
		}
		return nil
	}
	return release, true, nil
}
