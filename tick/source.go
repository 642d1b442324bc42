package tick

import (
	"sync/atomic"
	"time"
)

var (
	startTime  = time.Now()
	timeOffset atomic.Int64 // 时间偏移 ns
)

// SetOffset 设置时间偏移量, 对 Milli 和 Micro 同时生效.
// 可以把计数器拨到接近回绕的位置做长时间测试
func SetOffset(d time.Duration) {
	timeOffset.Store(int64(d))
}

// GetOffset 获取时间偏移量
func GetOffset() time.Duration {
	return time.Duration(timeOffset.Load())
}

func elapsed() time.Duration {
	return time.Since(startTime) + GetOffset()
}

// Milli 毫秒时间源, 约 49.7 天回绕一次
type Milli struct{}

func (Milli) Now() Tick {
	return Tick(uint64(elapsed() / time.Millisecond))
}

// Micro 微秒时间源, 约 71.6 分钟回绕一次
type Micro struct{}

func (Micro) Now() Tick {
	return Tick(uint64(elapsed() / time.Microsecond))
}

// Manual 手动驱动的时间源, 用于测试和模拟, 并发安全
type Manual struct {
	now atomic.Uint32
}

// NewManual 创建从 start 开始的手动时间源
func NewManual(start Tick) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

func (m *Manual) Now() Tick {
	return m.now.Load()
}

// Set 设置当前时刻
func (m *Manual) Set(t Tick) {
	m.now.Store(t)
}

// Add 前进 d 个 tick, 返回新的时刻
func (m *Manual) Add(d Tick) Tick {
	return m.now.Add(d)
}
