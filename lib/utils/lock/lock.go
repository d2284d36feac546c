package lock

import (
	"context"
	"sync"
	"time"
)

type keyLock struct {
	res  *ResourceLock
	refs int
}

var (
	keyLocksMu sync.Mutex
	keyLocks   = map[string]*keyLock{}
)

// WithDelay выполняет safeCode под блокировкой по ключу.
// Если блокировку не удалось получить за wait, safeCode не выполняется и возвращается false.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (bool, error) {
	entry := retainKey(key)
	defer releaseKey(key, entry)

	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	if !entry.res.Acquire(waitCtx) {
		return false, nil
	}
	defer entry.res.Release()
	return true, safeCode()
}

func retainKey(key string) *keyLock {
	keyLocksMu.Lock()
	defer keyLocksMu.Unlock()
	entry, ok := keyLocks[key]
	if !ok {
		entry = &keyLock{res: NewResourceLock(1)}
		keyLocks[key] = entry
	}
	entry.refs++
	return entry
}

// releaseKey ключ удаляется, когда его никто не держит и не ждет
func releaseKey(key string, entry *keyLock) {
	keyLocksMu.Lock()
	defer keyLocksMu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(keyLocks, key)
	}
}
