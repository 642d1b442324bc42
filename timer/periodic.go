package timer

import (
	"github.com/fixkme/ticktimer/errs"
	"github.com/fixkme/ticktimer/tick"
)

// PeriodicTimer 周期定时器.
// 到期后以上一次的 expireTime 为基准按 period 的整数倍推进, 而不是以 now 为基准,
// 所以轮询延迟不会累积成漂移, 到期时刻始终落在 Restart 时刻 + k*period 上.
// 零值的 period 为 0, 处于惰性状态, Execute 永远返回 false.
// 零值的时间源约定同 Timeout
type PeriodicTimer[S tick.Source] struct {
	period  tick.Tick
	timeout Timeout[S]
	skipped tick.Tick // 最近一次到期时跳过的格点数
}

type (
	PeriodicMilliTimer = PeriodicTimer[tick.Milli]
	PeriodicMicroTimer = PeriodicTimer[tick.Micro]
)

// NewPeriodicTimer 创建并启动周期定时器, period 必须在 (0, tick.MaxDuration] 内
func NewPeriodicTimer[S tick.Source](src S, period tick.Tick) (PeriodicTimer[S], error) {
	if period == 0 || period > tick.MaxDuration {
		return PeriodicTimer[S]{}, errs.InvalidPeriod.Printf("period=%d", period)
	}
	p := PeriodicTimer[S]{
		period:  period,
		timeout: NewTimeout(src),
	}
	p.Restart()
	return p, nil
}

func NewPeriodicMilliTimer(period tick.Tick) (PeriodicMilliTimer, error) {
	return NewPeriodicTimer(tick.Milli{}, period)
}

func NewPeriodicMicroTimer(period tick.Tick) (PeriodicMicroTimer, error) {
	return NewPeriodicTimer(tick.Micro{}, period)
}

// Restart 从当前时刻重新建立格点序列, 第一次到期在 period 之后.
// period 为 0 时只会停止定时器
func (p *PeriodicTimer[S]) Restart() {
	p.skipped = 0
	if p.period == 0 {
		p.timeout.Stop()
		return
	}
	p.timeout.Restart(p.period)
}

// RestartPeriod 修改周期后 Restart, 新的格点以调用时刻为基准, 与旧序列无关
func (p *PeriodicTimer[S]) RestartPeriod(period tick.Tick) {
	if period > tick.MaxDuration {
		period = tick.MaxDuration
	}
	p.period = period
	p.Restart()
}

// Stop 停止上报, 格点序列保留但不再推进
func (p *PeriodicTimer[S]) Stop() {
	p.timeout.Stop()
}

func (p *PeriodicTimer[S]) IsStopped() bool {
	return p.timeout.IsStopped()
}

// Execute 采样一次时间源后调用 ExecuteAt
func (p *PeriodicTimer[S]) Execute() bool {
	if p.period == 0 || p.timeout.IsStopped() {
		return false
	}
	return p.ExecuteAt(p.timeout.source.Now())
}

// ExecuteAt 跨过一个或多个格点时返回 true, 并把下一次到期设为严格晚于 now 的最近格点
func (p *PeriodicTimer[S]) ExecuteAt(now tick.Tick) bool {
	if p.period == 0 || !p.timeout.ExecuteAt(now) {
		return false
	}
	// ExecuteAt 返回 true 保证 now-expireTime 在 [0, MaxDuration] 内
	k := (now-p.timeout.expireTime)/p.period + 1
	p.timeout.arm(p.timeout.expireTime + k*p.period)
	p.skipped = k - 1
	return true
}

func (p *PeriodicTimer[S]) Period() tick.Tick {
	return p.period
}

func (p *PeriodicTimer[S]) ExpireTime() tick.Tick {
	return p.timeout.expireTime
}

// Skipped 最近一次到期时错过而没有单独上报的格点数, 轮询及时时为 0
func (p *PeriodicTimer[S]) Skipped() tick.Tick {
	return p.skipped
}
