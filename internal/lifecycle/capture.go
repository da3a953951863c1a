package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ── 采集设备错误 ──

var (
	// ErrDeviceBusy 设备被占用或重新获取失败
	ErrDeviceBusy = errors.New("capture device busy or unavailable")
	// ErrDeviceReleaseFailed 旧句柄释放失败
	ErrDeviceReleaseFailed = errors.New("capture device release failed")
)

// CaptureState 采集设备状态
//
//	Released → Acquiring → ActivePreview | ActiveRecording → Released
//
// 每次进入 Acquiring 之前必须等待既有句柄完全释放（以硬件释放回调
// 为准，绝不使用定时等待作为同步手段）。
type CaptureState int

const (
	StateReleased CaptureState = iota
	StateAcquiring
	StateActivePreview
	StateActiveRecording
)

// String 状态名（日志用）
func (s CaptureState) String() string {
	switch s {
	case StateReleased:
		return "released"
	case StateAcquiring:
		return "acquiring"
	case StateActivePreview:
		return "active_preview"
	case StateActiveRecording:
		return "active_recording"
	default:
		return "unknown"
	}
}

// CaptureHandle 已获取的硬件句柄；Stop 在硬件真正释放后才返回
type CaptureHandle interface {
	Stop(ctx context.Context) error
}

// CaptureBackend 采集硬件抽象（测试中注入假实现）
type CaptureBackend interface {
	Acquire(ctx context.Context) (CaptureHandle, error)
}

// CaptureDevice 单个向导会话共享的采集设备句柄管理。
// 同一会话任意时刻至多一个有效获取；互斥锁串行化预览与录制的切换。
type CaptureDevice struct {
	mu      sync.Mutex
	backend CaptureBackend
	state   CaptureState
	handle  CaptureHandle
}

// NewCaptureDevice 创建设备管理器（初始为 Released）
func NewCaptureDevice(backend CaptureBackend) *CaptureDevice {
	return &CaptureDevice{backend: backend, state: StateReleased}
}

// State 当前状态
func (d *CaptureDevice) State() CaptureState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// StartPreview 获取设备用于预览
func (d *CaptureDevice) StartPreview(ctx context.Context) error {
	return d.acquire(ctx, StateActivePreview)
}

// StartRecording 获取设备用于录制；既有预览句柄先被完全释放
func (d *CaptureDevice) StartRecording(ctx context.Context) error {
	return d.acquire(ctx, StateActiveRecording)
}

// acquire 释放旧句柄 → Acquiring → 获取 → 目标状态。
// 任一环节失败都回到 Released 并报 DeviceError；绝不悬挂在中间态。
func (d *CaptureDevice) acquire(ctx context.Context, target CaptureState) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handle != nil {
		if err := d.handle.Stop(ctx); err != nil {
			d.handle = nil
			d.state = StateReleased
			return fmt.Errorf("%w: %v", ErrDeviceReleaseFailed, err)
		}
		d.handle = nil
	}

	d.state = StateAcquiring
	h, err := d.backend.Acquire(ctx)
	if err != nil {
		d.state = StateReleased
		return fmt.Errorf("%w: %v", ErrDeviceBusy, err)
	}

	d.handle = h
	d.state = target
	return nil
}

// Release 停止并释放当前句柄（幂等）
func (d *CaptureDevice) Release(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handle == nil {
		d.state = StateReleased
		return nil
	}
	err := d.handle.Stop(ctx)
	d.handle = nil
	d.state = StateReleased
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceReleaseFailed, err)
	}
	return nil
}
