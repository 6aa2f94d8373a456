package idle

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

type events struct {
	mu      sync.Mutex
	warns   []time.Duration
	expires int
}

func (e *events) onWarn(remaining time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.warns = append(e.warns, remaining)
}

func (e *events) onExpire() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expires++
}

func (e *events) snapshot() ([]time.Duration, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]time.Duration(nil), e.warns...), e.expires
}

func newMonitor(clock *fakeClock, ev *events) *Monitor {
	return New(Options{
		Timeout:  DefaultTimeout,
		Warning:  DefaultWarning,
		OnWarn:   ev.onWarn,
		OnExpire: ev.onExpire,
		Clock:    clock,
	})
}

func TestMonitor_WarnsThenExpires(t *testing.T) {
	clock := &fakeClock{}
	ev := &events{}
	m := newMonitor(clock, ev)
	m.Start()

	clock.Advance(12 * time.Minute)
	warns, expires := ev.snapshot()
	require.Empty(t, warns)
	require.Zero(t, expires)

	clock.Advance(time.Minute)
	warns, expires = ev.snapshot()
	require.Equal(t, []time.Duration{2 * time.Minute}, warns)
	require.Zero(t, expires)

	clock.Advance(2 * time.Minute)
	warns, expires = ev.snapshot()
	require.Len(t, warns, 1)
	require.Equal(t, 1, expires)
	require.False(t, m.Running())

	clock.Advance(time.Hour)
	_, expires = ev.snapshot()
	require.Equal(t, 1, expires)
}

func TestMonitor_TouchResetsCountdown(t *testing.T) {
	clock := &fakeClock{}
	ev := &events{}
	m := newMonitor(clock, ev)
	m.Start()

	clock.Advance(14 * time.Minute)
	m.Touch()
	clock.Advance(14 * time.Minute)

	warns, expires := ev.snapshot()
	require.Len(t, warns, 2)
	require.Zero(t, expires)

	clock.Advance(time.Minute)
	_, expires = ev.snapshot()
	require.Equal(t, 1, expires)
}

func TestMonitor_StopDisarms(t *testing.T) {
	clock := &fakeClock{}
	ev := &events{}
	m := newMonitor(clock, ev)

	m.Touch()
	require.False(t, m.Running())

	m.Start()
	m.Stop()
	clock.Advance(time.Hour)

	warns, expires := ev.snapshot()
	require.Empty(t, warns)
	require.Zero(t, expires)
}

func TestNew_NormalizesOptions(t *testing.T) {
	m := New(Options{Warning: time.Hour})
	require.Equal(t, DefaultTimeout, m.opts.Timeout)
	require.Zero(t, m.opts.Warning)

	clock := &fakeClock{}
	ev := &events{}
	m = New(Options{Timeout: time.Minute, Warning: -time.Second, OnWarn: ev.onWarn, OnExpire: ev.onExpire, Clock: clock})
	m.Start()
	clock.Advance(time.Minute)
	warns, expires := ev.snapshot()
	require.Empty(t, warns)
	require.Equal(t, 1, expires)
}

func TestMonitor_RealClock(t *testing.T) {
	done := make(chan struct{})
	m := New(Options{Timeout: 20 * time.Millisecond, OnExpire: func() { close(done) }})
	m.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not expire")
	}
}
