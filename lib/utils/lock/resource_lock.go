package lock

import (
	"context"
)

// ResourceLock ограничивает число одновременных обращений к внешнему ресурсу (LLM)
type ResourceLock struct {
	slots chan struct{}
}

func NewResourceLock(size int) *ResourceLock {
	if size < 1 {
		size = 1
	}
	return &ResourceLock{slots: make(chan struct{}, size)}
}

// Acquire возвращает false, если контекст завершился раньше, чем освободился слот
func (c *ResourceLock) Acquire(ctx context.Context) bool {
	select {
	case c.slots <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *ResourceLock) Release() {
	select {
	case <-c.slots:
	default:
	}
}
