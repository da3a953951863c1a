package lifecycle

import (
	"context"
	"errors"
	"sync"
)

// ExclusiveBackend 进程内独占的采集设备。
// 工位只有一台摄像设备：任意时刻全进程至多一个有效句柄，跨会话
// 同样互斥。已被占用时 Acquire 立即失败而非等待。
type ExclusiveBackend struct {
	mu   sync.Mutex
	held bool
}

// NewExclusiveBackend 创建独占设备后端
func NewExclusiveBackend() *ExclusiveBackend {
	return &ExclusiveBackend{}
}

// Acquire 获取设备句柄；设备被占用时立即失败
func (b *ExclusiveBackend) Acquire(ctx context.Context) (CaptureHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.held {
		return nil, errors.New("device held by another session")
	}
	b.held = true
	return &exclusiveHandle{backend: b}, nil
}

type exclusiveHandle struct {
	backend *ExclusiveBackend
	once    sync.Once
}

// Stop 归还设备；幂等
func (h *exclusiveHandle) Stop(ctx context.Context) error {
	h.once.Do(func() {
		h.backend.mu.Lock()
		h.backend.held = false
		h.backend.mu.Unlock()
	})
	return nil
}
