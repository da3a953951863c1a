// Package monitor 实现监控看板：开放工单的周期刷新、停留时长的快照级
// 重算，以及全局条码监听（扫码即完成工单）。
package monitor

import (
	"strings"
	"sync"
	"time"
)

// Scanner 全局条码监听器。
//
// 扫码枪表现为一串毫秒间隔的按键加一个回车。监听器把按键积攒进缓冲，
// 收到回车时作为完整条码派发；超过静默窗口没有新按键则丢弃缓冲
// （半截条码不得污染下一次扫描）。窗口内的多段按键属于同一次扫描，
// 必须积攒为同一个条码。焦点在输入框上时不监听。
type Scanner struct {
	mu      sync.Mutex
	buf     strings.Builder
	last    time.Time
	timeout time.Duration
	focused bool

	dispatch func(code string)
	now      func() time.Time
}

// NewScanner 创建条码监听器；timeout 为按键静默窗口（亚秒级）
func NewScanner(timeout time.Duration, dispatch func(code string)) *Scanner {
	return &Scanner{
		timeout:  timeout,
		dispatch: dispatch,
		now:      time.Now,
	}
}

// SetInputFocused 标记前端焦点是否在输入框上；聚焦期间忽略按键
func (s *Scanner) SetInputFocused(focused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = focused
	if focused {
		s.buf.Reset()
	}
}

// HandleRune 处理一个按键字符
func (s *Scanner) HandleRune(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.focused {
		return
	}

	now := s.now()
	if s.buf.Len() > 0 && now.Sub(s.last) > s.timeout {
		// 静默超时：丢弃半截条码
		s.buf.Reset()
	}
	s.buf.WriteRune(r)
	s.last = now
}

// HandleEnter 回车结束一次扫描，派发完整条码。
// 缓冲已超过静默窗口时视同半截条码，丢弃而不派发。
func (s *Scanner) HandleEnter() {
	s.mu.Lock()
	if s.focused || s.buf.Len() == 0 {
		s.mu.Unlock()
		return
	}
	if s.now().Sub(s.last) > s.timeout {
		s.buf.Reset()
		s.mu.Unlock()
		return
	}
	code := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	s.mu.Unlock()

	if code != "" {
		s.dispatch(code)
	}
}

// Pending 当前缓冲内容（调试用）
func (s *Scanner) Pending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
