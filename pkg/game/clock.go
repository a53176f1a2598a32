package game

import "time"

// Clock 单调递增的毫秒时钟
//
// Ticks 返回会话开始以来经过的毫秒数，射击冷却、陨石生成周期和分数都以它为准，
// 与帧率无关。
type Clock interface {
	Ticks() int64
}

// SystemClock 基于 time.Since 的真实时钟（单调时钟）
type SystemClock struct {
	start time.Time
}

// NewSystemClock 创建从当前时刻开始计时的时钟
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Ticks 返回创建以来经过的毫秒数
func (c *SystemClock) Ticks() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock 手动推进的时钟，用于测试
type ManualClock struct {
	now int64
}

// NewManualClock 创建起始于 start 毫秒的手动时钟
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

// Ticks 返回当前毫秒数
func (c *ManualClock) Ticks() int64 {
	return c.now
}

// Advance 向前推进 ms 毫秒（负值忽略）
func (c *ManualClock) Advance(ms int64) {
	if ms > 0 {
		c.now += ms
	}
}

// Set 设置当前毫秒数，不允许倒退
func (c *ManualClock) Set(ms int64) {
	if ms > c.now {
		c.now = ms
	}
}

// FrameTimer 根据时钟计算帧间隔 dt
type FrameTimer struct {
	clock Clock
	last  int64
}

// NewFrameTimer 创建帧计时器，第一次 Tick 相对于创建时刻计算
func NewFrameTimer(clock Clock) *FrameTimer {
	return &FrameTimer{clock: clock, last: clock.Ticks()}
}

// Tick 返回距上一次调用经过的秒数（毫秒精度，不小于 0）
func (t *FrameTimer) Tick() float64 {
	now := t.clock.Ticks()
	elapsed := now - t.last
	t.last = now
	if elapsed < 0 {
		return 0
	}
	return float64(elapsed) / 1000.0
}
