package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// RequestDeduplicator отклоняет повтор того же запроса от того же пользователя, пока
// первый ещё свежий, например двойной клик по "отправить".
type RequestDeduplicator struct {
	locks sync.Map
	now   func() time.Time
}

func NewRequestDeduplicator() *RequestDeduplicator {
	return &RequestDeduplicator{now: time.Now}
}

func dedupKey(userID uint64, parts []string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return fmt.Sprintf("%d_%s", userID, hex.EncodeToString(sum[:]))
}

// TryAcquire сообщает, можно ли продолжать. Части хешируются в ключ.
func (d *RequestDeduplicator) TryAcquire(userID uint64, ttl time.Duration, parts ...string) bool {
	key := dedupKey(userID, parts)
	now := d.now()
	expiry := now.Add(ttl)

	for {
		val, loaded := d.locks.LoadOrStore(key, expiry)
		if !loaded {
			return true
		}
		if now.Before(val.(time.Time)) {
			return false
		}
		if d.locks.CompareAndSwap(key, val, expiry) {
			return true
		}
	}
}

// Release освобождает слот, занятый TryAcquire с теми же частями.
func (d *RequestDeduplicator) Release(userID uint64, parts ...string) {
	d.locks.Delete(dedupKey(userID, parts))
}

func (d *RequestDeduplicator) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.sweep()
		}
	}
}

func (d *RequestDeduplicator) sweep() {
	now := d.now()
	d.locks.Range(func(key, value interface{}) bool {
		if now.After(value.(time.Time)) {
			d.locks.Delete(key)
		}
		return true
	})
}
