package timer

import (
	"errors"
	"math"
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixkme/ticktimer/errs"
	"github.com/fixkme/ticktimer/tick"
)

func newPeriodic(t *testing.T, clk *tick.Manual, period tick.Tick) PeriodicTimer[*tick.Manual] {
	t.Helper()
	p, err := NewPeriodicTimer(clk, period)
	require.NoError(t, err)
	return p
}

func TestPeriodicScenario(t *testing.T) {
	clk := tick.NewManual(0)
	p := newPeriodic(t, clk, 100)
	require.Equal(t, tick.Tick(100), p.ExpireTime())

	clk.Set(50)
	assert.False(t, p.Execute())

	// 错过两个周期, 下一个格点是 300 而不是 350
	clk.Set(250)
	assert.True(t, p.Execute())
	assert.Equal(t, tick.Tick(300), p.ExpireTime())
	assert.Equal(t, tick.Tick(1), p.Skipped())

	clk.Set(305)
	assert.True(t, p.Execute())
	assert.Equal(t, tick.Tick(400), p.ExpireTime())
	assert.Equal(t, tick.Tick(0), p.Skipped())

	assert.False(t, p.Execute())
}

func TestPeriodicExactGridPoint(t *testing.T) {
	clk := tick.NewManual(0)
	p := newPeriodic(t, clk, 100)
	assert.True(t, p.ExecuteAt(100))
	assert.Equal(t, tick.Tick(200), p.ExpireTime())
	assert.False(t, p.ExecuteAt(199))
	assert.True(t, p.ExecuteAt(200))
	assert.Equal(t, tick.Tick(300), p.ExpireTime())
}

func TestPeriodicNoDrift(t *testing.T) {
	const period = 10
	clk := tick.NewManual(7)
	p := newPeriodic(t, clk, period)

	// 每次都晚 1~9 个 tick 轮询, 格点仍然是 7+k*10
	fired := 0
	for now := tick.Tick(7); now < 10007; now += 3 {
		if p.ExecuteAt(now) {
			fired++
			assert.Zero(t, (p.ExpireTime()-7)%period)
			assert.True(t, tick.Before(now, p.ExpireTime()))
			assert.True(t, tick.After(now, p.ExpireTime()-period))
		}
	}
	assert.Equal(t, 999, fired)
}

func TestPeriodicPhaseStabilityRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		t0 := tick.Tick(r.Uint32())
		period := tick.Tick(r.Intn(1000) + 1)
		clk := tick.NewManual(t0)
		p := newPeriodic(t, clk, period)

		now := t0
		for i := 0; i < 200; i++ {
			now += tick.Tick(r.Intn(int(period) * 4))
			prev := p.ExpireTime()
			if !p.ExecuteAt(now) {
				assert.True(t, tick.Before(now, prev))
				continue
			}
			got := p.ExpireTime()
			assert.Zero(t, (got-t0)%period, "t0=%d period=%d now=%d", t0, period, now)
			assert.Equal(t, referenceNext(prev, now, period), got)
			assert.Equal(t, (got-prev)/period-1, p.Skipped())
		}
	}
}

// referenceNext 逐个周期累加直到严格晚于 now
func referenceNext(expire, now, period tick.Tick) tick.Tick {
	for {
		expire += period
		if tick.Before(now, expire) {
			return expire
		}
	}
}

func TestPeriodicWraparound(t *testing.T) {
	start := tick.Tick(math.MaxUint32 - 150)
	clk := tick.NewManual(start)
	p := newPeriodic(t, clk, 100)
	require.Equal(t, tick.Tick(math.MaxUint32-50), p.ExpireTime())

	assert.False(t, p.ExecuteAt(math.MaxUint32-51))
	// 跨越回绕, 错过两个格点
	assert.True(t, p.ExecuteAt(200))
	assert.Equal(t, start+400, p.ExpireTime())
	assert.Equal(t, tick.Tick(249), p.ExpireTime())
	assert.False(t, p.ExecuteAt(248))
	assert.True(t, p.ExecuteAt(249))
}

func TestPeriodicStop(t *testing.T) {
	clk := tick.NewManual(0)
	p := newPeriodic(t, clk, 100)
	p.Stop()
	p.Stop()
	assert.True(t, p.IsStopped())
	assert.Equal(t, tick.Tick(100), p.ExpireTime())
	assert.False(t, p.ExecuteAt(100))
	assert.False(t, p.ExecuteAt(1000))
	assert.Equal(t, tick.Tick(100), p.ExpireTime())

	clk.Set(1000)
	p.Restart()
	assert.False(t, p.IsStopped())
	assert.Equal(t, tick.Tick(1100), p.ExpireTime())
}

func TestPeriodicRestartPeriod(t *testing.T) {
	clk := tick.NewManual(0)
	p := newPeriodic(t, clk, 100)
	clk.Set(130)
	p.RestartPeriod(25)
	assert.Equal(t, tick.Tick(25), p.Period())
	assert.Equal(t, tick.Tick(155), p.ExpireTime())
	assert.True(t, p.ExecuteAt(160))
	assert.Equal(t, tick.Tick(180), p.ExpireTime())

	p.RestartPeriod(math.MaxUint32)
	assert.Equal(t, tick.MaxDuration, p.Period())
}

func TestPeriodicZeroPeriod(t *testing.T) {
	var p PeriodicMilliTimer
	assert.Equal(t, tick.Tick(0), p.Period())
	assert.False(t, p.Execute())
	assert.False(t, p.ExecuteAt(math.MaxUint32))
	p.Restart()
	assert.True(t, p.IsStopped())
	assert.False(t, p.Execute())

	clk := tick.NewManual(0)
	q := newPeriodic(t, clk, 10)
	q.RestartPeriod(0)
	assert.True(t, q.IsStopped())
	assert.False(t, q.ExecuteAt(1000))
}

func TestNewPeriodicTimerInvalid(t *testing.T) {
	clk := tick.NewManual(0)
	_, err := NewPeriodicTimer(clk, 0)
	assert.True(t, errors.Is(err, errs.InvalidPeriod))
	_, err = NewPeriodicTimer(clk, tick.MaxDuration+1)
	assert.True(t, errors.Is(err, errs.InvalidPeriod))
	_, err = NewPeriodicTimer(clk, tick.MaxDuration)
	assert.NoError(t, err)
}

func TestPeriodicMaxPeriodCatchUp(t *testing.T) {
	clk := tick.NewManual(0)
	p := newPeriodic(t, clk, tick.MaxDuration)
	assert.True(t, p.ExecuteAt(tick.MaxDuration))
	assert.Equal(t, 2*tick.MaxDuration, p.ExpireTime())
}

func TestPeriodicMilliMicro(t *testing.T) {
	ms, err := NewPeriodicMilliTimer(60000)
	require.NoError(t, err)
	assert.False(t, ms.Execute())
	assert.False(t, ms.IsStopped())

	us, err := NewPeriodicMicroTimer(1)
	require.NoError(t, err)
	var src tick.Micro
	now := src.Now()
	for tick.Before(src.Now(), now+2) {
		runtime.Gosched()
	}
	assert.True(t, us.Execute())
	assert.True(t, tick.After(us.ExpireTime(), now+3))
}

func TestPeriodicZeroValueInterfaceSource(t *testing.T) {
	var p PeriodicTimer[tick.Source]
	assert.NotPanics(t, func() {
		p.RestartPeriod(10)
	})
	assert.True(t, p.IsStopped())
	assert.Equal(t, tick.Tick(10), p.Period())
	assert.False(t, p.Execute())
	assert.False(t, p.ExecuteAt(1000))

	var to Timeout[tick.Source]
	assert.NotPanics(t, func() {
		to.Restart(10)
	})
	assert.True(t, to.IsStopped())
	assert.False(t, to.Execute())
	assert.False(t, to.IsExpired())
	assert.Equal(t, int32(0), to.Remaining())
}
