package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerZeroDelay(t *testing.T) {
	p := NewPacer(nil, 0, 0)
	assert.Equal(t, time.Duration(0), p.Delay())
	assert.NoError(t, p.Wait(context.Background()))
}

func TestPacerDelayWithinRange(t *testing.T) {
	p := NewPacer(nil, 500*time.Millisecond, 2*time.Second)
	for i := 0; i < 100; i++ {
		d := p.Delay()
		assert.GreaterOrEqual(t, d, 500*time.Millisecond)
		assert.LessOrEqual(t, d, 2*time.Second)
	}

	fixed := NewPacer(nil, time.Second, time.Second)
	assert.Equal(t, time.Second, fixed.Delay())
}

func TestPacerWaitUsesClock(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	p := NewPacer(clk, time.Minute, time.Minute)

	done := make(chan error, 1)
	go func() { done <- p.Wait(context.Background()) }()

	require.NoError(t, clk.WaitAdvance(time.Minute, time.Second, 1))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("pacer did not return after the clock advanced")
	}
}

func TestPacerWaitCancelled(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	p := NewPacer(clk, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}
