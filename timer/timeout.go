// Package timer 提供基于回绕计数器的单次超时 Timeout 和相位对齐的周期定时器 PeriodicTimer.
//
// 两者都是单协程持有的值类型, 由调用方在控制循环中轮询, 不阻塞也不分配内存.
// 时间源通过类型参数注入, MilliTimeout/MicroTimeout 等别名共享同一份实现.
package timer

import "github.com/fixkme/ticktimer/tick"

// Timeout 单次超时, 每次 Restart 之后 Execute 最多返回一次 true.
// 零值只有在 S 是零大小的时间源(tick.Milli, tick.Micro)时才能直接使用,
// 其他时间源需要通过 NewTimeout 传入; 接口类型的 S 为 nil 时 Restart 只会停止超时
type Timeout[S tick.Source] struct {
	source     S
	expireTime tick.Tick // 到期时刻
	isRunning  bool
	isExecuted bool // 本轮已经上报过到期
}

type (
	MilliTimeout = Timeout[tick.Milli]
	MicroTimeout = Timeout[tick.Micro]
)

// NewTimeout 创建未启动的超时
func NewTimeout[S tick.Source](src S) Timeout[S] {
	return Timeout[S]{source: src}
}

func NewMilliTimeout() MilliTimeout {
	return NewTimeout(tick.Milli{})
}

func NewMicroTimeout() MicroTimeout {
	return NewTimeout(tick.Micro{})
}

// Restart 从当前时刻起 duration 个 tick 后到期, 超过 tick.MaxDuration 的按 MaxDuration 处理
func (t *Timeout[S]) Restart(duration tick.Tick) {
	if duration > tick.MaxDuration {
		duration = tick.MaxDuration
	}
	if any(t.source) == nil {
		t.Stop()
		return
	}
	t.arm(t.source.Now() + duration)
}

func (t *Timeout[S]) arm(expireTime tick.Tick) {
	t.expireTime = expireTime
	t.isRunning = true
	t.isExecuted = false
}

// Stop 停止, 保留 expireTime
func (t *Timeout[S]) Stop() {
	t.isRunning = false
}

func (t *Timeout[S]) IsStopped() bool {
	return !t.isRunning
}

// Execute 采样时间源后调用 ExecuteAt
func (t *Timeout[S]) Execute() bool {
	if !t.isRunning {
		return false
	}
	return t.ExecuteAt(t.source.Now())
}

// ExecuteAt 第一次观察到 now 到达 expireTime 时返回 true, 之后直到重新启动前都返回 false
func (t *Timeout[S]) ExecuteAt(now tick.Tick) bool {
	if !t.isRunning || t.isExecuted || !tick.After(now, t.expireTime) {
		return false
	}
	t.isExecuted = true
	return true
}

// IsExpired 电平信号, 运行中且已到期即为 true, 不影响 Execute
func (t *Timeout[S]) IsExpired() bool {
	return t.isRunning && tick.After(t.source.Now(), t.expireTime)
}

// Remaining 距离到期的 tick 数, 已过期为负, 停止时为 0
func (t *Timeout[S]) Remaining() int32 {
	if !t.isRunning {
		return 0
	}
	return tick.Sub(t.expireTime, t.source.Now())
}

func (t *Timeout[S]) ExpireTime() tick.Tick {
	return t.expireTime
}
