package main

import (
	"time"

	"github.com/fixkme/ticktimer/clock"
	"github.com/fixkme/ticktimer/framework/config"
	"github.com/fixkme/ticktimer/mlog"
	"github.com/fixkme/ticktimer/tick"
)

const defaultHeartbeat = time.Second

// clockModule 运行一个轮询 Clock 并输出心跳任务的触发情况
type clockModule struct {
	conf      *config.ClockConfig
	clk       *clock.Clock
	heartbeat tick.Tick
	quit      chan struct{}
	fired     int
	skipped   tick.Tick
}

func newClockModule(conf *config.ClockConfig) *clockModule {
	return &clockModule{conf: conf}
}

func (m *clockModule) Name() string {
	return "clock"
}

func (m *clockModule) OnInit() error {
	var src tick.Source = tick.Milli{}
	unit := time.Millisecond
	if m.conf.ClockResolution == config.ResolutionMicro {
		src, unit = tick.Micro{}, time.Microsecond
	}
	heartbeat := time.Duration(m.conf.HeartbeatMs) * time.Millisecond
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	m.heartbeat = tick.FromDuration(heartbeat, unit)
	m.clk = clock.NewClock(src, time.Duration(m.conf.ClockCycleMs)*time.Millisecond, m.conf.ClockTaskChanSize)
	m.quit = make(chan struct{})
	return nil
}

func (m *clockModule) Run() {
	m.clk.Start(m.quit)
	receiver := make(chan *clock.Promise, 64)
	id, err := m.clk.NewTimer(m.heartbeat, "heartbeat", receiver, nil)
	if err != nil {
		mlog.Errorf("clock module register heartbeat error %v", err)
		return
	}
	mlog.Infof("clock module heartbeat timer %d, period %d ticks", id, m.heartbeat)
	for {
		select {
		case <-m.quit:
			mlog.Infof("clock module exit, fired:%d, skipped:%d", m.fired, m.skipped)
			return
		case p := <-receiver:
			m.fired++
			m.skipped += p.Skipped
			mlog.Debugf("%v timer %d fired at %d, skipped %d", p.Data, p.TimerId, p.NowTick, p.Skipped)
		}
	}
}

func (m *clockModule) Destroy() {
	close(m.quit)
	m.clk.Wait()
}
