package tick

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfter(t *testing.T) {
	cases := []struct {
		a, b Tick
		want bool
	}{
		{100, 100, true},
		{101, 100, true},
		{99, 100, false},
		// 跨越回绕: 5 在 MaxUint32-5 之后
		{5, math.MaxUint32 - 5, true},
		{math.MaxUint32 - 5, 5, false},
		{0, math.MaxUint32, true},
		{MaxDuration, 0, true},
		{halfRange, 0, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, After(c.a, c.b), "After(%d, %d)", c.a, c.b)
		assert.Equal(t, !c.want, Before(c.a, c.b), "Before(%d, %d)", c.a, c.b)
	}
}

func TestSub(t *testing.T) {
	assert.Equal(t, int32(11), Sub(5, math.MaxUint32-5))
	assert.Equal(t, int32(-11), Sub(math.MaxUint32-5, 5))
	assert.Equal(t, int32(0), Sub(42, 42))
}

func TestFromDuration(t *testing.T) {
	assert.Equal(t, Tick(1500), FromDuration(1500*time.Millisecond, time.Millisecond))
	assert.Equal(t, Tick(1500000), FromDuration(1500*time.Millisecond, time.Microsecond))
	assert.Equal(t, Tick(0), FromDuration(-time.Second, time.Millisecond))
	assert.Equal(t, Tick(0), FromDuration(time.Second, 0))
	assert.Equal(t, MaxDuration, FromDuration(24*time.Hour, time.Microsecond))
}

func TestManual(t *testing.T) {
	m := NewManual(math.MaxUint32 - 1)
	require.Equal(t, Tick(math.MaxUint32-1), m.Now())
	assert.Equal(t, Tick(1), m.Add(3))
	m.Set(700)
	assert.Equal(t, Tick(700), m.Now())
}

func TestOffset(t *testing.T) {
	defer SetOffset(0)

	before := Milli{}.Now()
	SetOffset(time.Hour)
	assert.Equal(t, time.Hour, GetOffset())
	after := Milli{}.Now()
	assert.GreaterOrEqual(t, Sub(after, before), int32(time.Hour/time.Millisecond))

	// 微秒计数器在 71.6 分钟左右回绕, 拨到回绕点附近后仍然单调
	SetOffset(time.Duration(math.MaxUint32-1000) * time.Microsecond)
	t0 := Micro{}.Now()
	time.Sleep(5 * time.Millisecond)
	assert.True(t, After(Micro{}.Now(), t0))
}
