package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is the single-instance fallback for the ingest lock, used when
// redis is disabled
type MemoryLocker struct {
	mu    sync.Mutex
	items map[string]time.Time
}

// NewMemoryLocker creates an in-memory locker with background expiry cleanup
func NewMemoryLocker() *MemoryLocker {
	l := &MemoryLocker{
		items: make(map[string]time.Time),
	}
	go l.cleanupExpired()
	return l
}

// Acquire takes the lock for key unless an unexpired holder exists
func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expireTime, exists := l.items[key]; exists && time.Now().Before(expireTime) {
		return false, nil
	}
	l.items[key] = time.Now().Add(ttl)
	return true, nil
}

// Release removes the lock for key
func (l *MemoryLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.items, key)
	return nil
}

// cleanupExpired periodically removes expired locks
func (l *MemoryLocker) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, expireTime := range l.items {
			if now.After(expireTime) {
				delete(l.items, key)
			}
		}
		l.mu.Unlock()
	}
}
