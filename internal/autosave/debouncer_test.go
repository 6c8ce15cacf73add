package autosave

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurstIntoOneSave(t *testing.T) {
	var saves int32
	d := NewDebouncer(30*time.Millisecond, func() { atomic.AddInt32(&saves, 1) }, zerolog.Nop())
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Notify()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&saves) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&saves))
}

func TestDebouncer_NotifyResetsTimer(t *testing.T) {
	var saves int32
	d := NewDebouncer(50*time.Millisecond, func() { atomic.AddInt32(&saves, 1) }, zerolog.Nop())
	defer d.Stop()

	d.Notify()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&saves))

	d.Notify()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&saves))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&saves) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_FlushRunsPendingSaveImmediately(t *testing.T) {
	var saves int32
	d := NewDebouncer(time.Hour, func() { atomic.AddInt32(&saves, 1) }, zerolog.Nop())
	defer d.Stop()

	d.Notify()
	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&saves))

	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&saves))
}

func TestDebouncer_FlushWithoutPendingIsNoOp(t *testing.T) {
	var saves int32
	d := NewDebouncer(time.Hour, func() { atomic.AddInt32(&saves, 1) }, zerolog.Nop())
	defer d.Stop()

	d.Flush()
	assert.Equal(t, int32(0), atomic.LoadInt32(&saves))
}

func TestDebouncer_StopCancelsPendingSave(t *testing.T) {
	var saves int32
	d := NewDebouncer(20*time.Millisecond, func() { atomic.AddInt32(&saves, 1) }, zerolog.Nop())

	d.Notify()
	d.Stop()
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&saves))

	d.Notify()
	d.Flush()
	assert.Equal(t, int32(0), atomic.LoadInt32(&saves))
}
