// Package clock 在单个协程里按固定节拍轮询一组周期定时器, 把到期事件投递给调用方.
//
// 定时器本身不是并发安全的, 所有修改都通过任务队列切到轮询协程执行.
// 每个节拍只采样一次时间源, 所有任务用同一个 now 判断是否到期, 并按注册顺序触发.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/fixkme/ticktimer/errs"
	"github.com/fixkme/ticktimer/mlog"
	"github.com/fixkme/ticktimer/tick"
	"github.com/fixkme/ticktimer/timer"
)

const (
	_SI           = 20 * time.Millisecond // 默认轮询节拍
	_TASK_CHAN_SZ = 10240
)

type Clock struct {
	genId   int64
	source  tick.Source
	cycle   time.Duration
	timers  *_List
	locs    map[int64]*_Timer //记录位置
	taskch  chan func()
	quit    <-chan struct{}
	done    chan struct{}
	started atomic.Bool
	closed  atomic.Bool
}

// NewClock cycle<=0 使用默认节拍, taskChanSize<=0 使用默认队列长度
func NewClock(src tick.Source, cycle time.Duration, taskChanSize int) *Clock {
	if cycle <= 0 {
		cycle = _SI
	}
	if taskChanSize <= 0 {
		taskChanSize = _TASK_CHAN_SZ
	}
	return &Clock{
		source: src,
		cycle:  cycle,
		timers: newTimerList(),
		locs:   make(map[int64]*_Timer),
		taskch: make(chan func(), taskChanSize),
		done:   make(chan struct{}),
	}
}

// Start 启动轮询协程, quit 关闭后退出, 重复调用无效
func (c *Clock) Start(quit <-chan struct{}) {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	c.quit = quit
	go c.run()
}

// Wait 等待轮询协程退出
func (c *Clock) Wait() {
	if c.started.Load() {
		<-c.done
	}
}

// NewTimer 注册周期任务, 以当前时刻为基准每 period 个 tick 触发一次
func (c *Clock) NewTimer(period tick.Tick, data any, receiver chan<- *Promise, batch chan<- []*Promise) (id int64, err error) {
	if period == 0 || period > tick.MaxDuration {
		return 0, errs.InvalidPeriod.Printf("period=%d", period)
	}
	if receiver == nil && batch == nil {
		return 0, errs.NoReceiver
	}
	var newErr error
	err = c.pushTask(func() {
		pt, e := timer.NewPeriodicTimer(c.source, period)
		if e != nil {
			newErr = e
			return
		}
		c.genId++
		t := &_Timer{
			id:       c.genId,
			pt:       pt,
			data:     data,
			receiver: receiver,
			batch:    batch,
		}
		c.addTimer(t)
		id = t.id
	})
	if err == nil {
		err = newErr
	}
	return
}

// CancelTimer 取消任务, 任务不存在时 ok 为 false
func (c *Clock) CancelTimer(id int64) (ok bool, err error) {
	err = c.pushTask(func() {
		ok = c.delTimer(id) != nil
	})
	return
}

// UpdateTimer 修改周期, 格点从调用时刻重新开始
func (c *Clock) UpdateTimer(id int64, period tick.Tick) (ok bool, err error) {
	if period == 0 || period > tick.MaxDuration {
		return false, errs.InvalidPeriod.Printf("period=%d", period)
	}
	err = c.pushTask(func() {
		ok = c.updateTimer(id, period)
	})
	return
}

func (c *Clock) addTimer(t *_Timer) {
	mlog.Debugf("clock add timer id:%d, period:%d, expire:%d", t.id, t.pt.Period(), t.pt.ExpireTime())
	c.timers.PushBack(t)
	c.locs[t.id] = t
}

func (c *Clock) delTimer(id int64) *_Timer {
	t, ok := c.locs[id]
	if ok {
		c.timers.Remove(t)
		delete(c.locs, id)
		return t
	}
	return nil
}

func (c *Clock) updateTimer(id int64, period tick.Tick) bool {
	t, ok := c.locs[id]
	if !ok {
		return false
	}
	t.pt.RestartPeriod(period)
	mlog.Debugf("clock update timer id:%d, period:%d, expire:%d", id, period, t.pt.ExpireTime())
	return true
}

// trigger 用同一个 now 检查所有任务
func (c *Clock) trigger(now tick.Tick) {
	var batchs map[chan<- []*Promise][]*Promise
	c.timers.Range(func(t *_Timer) bool {
		if !t.pt.ExecuteAt(now) {
			return true
		}
		if t.pt.Skipped() > 0 {
			mlog.Warnf("clock timer %d skipped %d periods, now:%d", t.id, t.pt.Skipped(), now)
		}
		promise := t.promise(now)
		if t.batch != nil {
			if batchs == nil {
				batchs = make(map[chan<- []*Promise][]*Promise)
			}
			batchs[t.batch] = append(batchs[t.batch], promise)
			return true
		}
		select {
		case t.receiver <- promise:
		default:
			// 丢弃本次触发, 格点不受影响
			mlog.Warnf("clock timer %d receiver full, drop promise at %d", t.id, now)
		}
		return true
	})

	for ch, promises := range batchs {
		select {
		case ch <- promises:
		case <-c.quit:
			return
		}
	}
}

func (c *Clock) run() {
	defer close(c.done)
	tickTimer := time.NewTimer(c.cycle)
	defer tickTimer.Stop()
	mlog.Infof("clock started, cycle:%v", c.cycle)
	for {
		select {
		case <-c.quit:
			c.closed.Store(true)
			mlog.Infof("clock stopped, timers:%d", c.timers.Len())
			return
		case <-tickTimer.C:
			c.trigger(c.source.Now())
			tickTimer.Reset(c.cycle)
		case fn := <-c.taskch:
			fn()
		}
	}
}

func (c *Clock) pushTask(f func()) (err error) {
	if !c.started.Load() || c.closed.Load() {
		return errs.ClockClosed
	}
	done := make(chan struct{})
	ff := func() {
		defer close(done)
		f()
	}
	select {
	case c.taskch <- ff:
	default:
		return errs.ClockBusy.Print("task channel full")
	}
	select {
	case <-done:
	case <-c.done:
		select {
		case <-done:
		default:
			// 退出前没来得及执行
			return errs.ClockClosed
		}
	}
	return
}
