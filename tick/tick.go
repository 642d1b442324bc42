// Package tick 定义定时器使用的时间域: 一个从进程启动开始单调递增、溢出回绕的 32 位计数器.
package tick

import "time"

// Tick 计数器的一个取值, 单位由时间源决定(毫秒或微秒)
type Tick = uint32

const (
	// MaxDuration 模运算比较能够区分先后的最大跨度
	MaxDuration Tick = 1<<31 - 1
	halfRange   Tick = 1 << 31
)

// Source 时间源
type Source interface {
	Now() Tick
}

// After a 是否在 b 时刻或之后.
// 计数器会回绕, 不能直接比较大小, 只要两者相距不超过 MaxDuration 结果就是正确的
func After(a, b Tick) bool {
	return a-b < halfRange
}

// Before a 是否严格早于 b
func Before(a, b Tick) bool {
	return !After(a, b)
}

// Sub 返回 a-b 的有符号距离
func Sub(a, b Tick) int32 {
	return int32(a - b)
}

// FromDuration 把 d 换算成 unit 精度的 tick 数, 向下取整, 超出 MaxDuration 时截断
func FromDuration(d, unit time.Duration) Tick {
	if d <= 0 || unit <= 0 {
		return 0
	}
	n := d / unit
	if n > time.Duration(MaxDuration) {
		return MaxDuration
	}
	return Tick(n)
}
