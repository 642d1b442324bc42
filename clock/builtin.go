package clock

import (
	"sync"

	"github.com/fixkme/ticktimer/tick"
)

var (
	builtinClock *Clock
	once         sync.Once
	NewTimer     func(period tick.Tick, data any, receiver chan<- *Promise, batch chan<- []*Promise) (id int64, err error)
	CancelTimer  func(id int64) (ok bool, err error)
	UpdateTimer  func(id int64, period tick.Tick) (ok bool, err error)
)

// Start 启动毫秒精度的全局 Clock
func Start(quit <-chan struct{}) {
	once.Do(func() {
		builtinClock = NewClock(tick.Milli{}, _SI, _TASK_CHAN_SZ)
		builtinClock.Start(quit)
		NewTimer = builtinClock.NewTimer
		CancelTimer = builtinClock.CancelTimer
		UpdateTimer = builtinClock.UpdateTimer
	})
}
