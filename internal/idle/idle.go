// Package idle logs the user out after a period without input.
package idle

import (
	"sync"
	"time"
)

const (
	DefaultTimeout = 15 * time.Minute
	DefaultWarning = 2 * time.Minute
)

// Timer is a stoppable scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The zero Options use time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Options configure a Monitor.
type Options struct {
	Timeout time.Duration
	// Warning is how long before the timeout OnWarn fires. Zero or a value
	// not below Timeout disables the warning.
	Warning  time.Duration
	OnWarn   func(remaining time.Duration)
	OnExpire func()
	Clock    Clock
}

// Monitor tracks inactivity. All methods are safe for concurrent use.
type Monitor struct {
	opts Options

	mu      sync.Mutex
	running bool
	gen     uint64
	warn    Timer
	expire  Timer
}

// New builds a stopped Monitor.
func New(opts Options) *Monitor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Warning < 0 || opts.Warning >= opts.Timeout {
		opts.Warning = 0
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	return &Monitor{opts: opts}
}

// Start arms the timers. Starting a running monitor restarts it.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
	m.arm()
}

// Touch records user activity. It is a no-op when stopped.
func (m *Monitor) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.arm()
}

// Stop disarms the timers.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	m.gen++
	m.disarm()
}

// Running reports whether the monitor is armed.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) arm() {
	m.disarm()
	m.gen++
	gen := m.gen

	if m.opts.Warning > 0 && m.opts.OnWarn != nil {
		remaining := m.opts.Warning
		m.warn = m.opts.Clock.AfterFunc(m.opts.Timeout-m.opts.Warning, func() {
			if m.current(gen, false) {
				m.opts.OnWarn(remaining)
			}
		})
	}
	m.expire = m.opts.Clock.AfterFunc(m.opts.Timeout, func() {
		if m.current(gen, true) && m.opts.OnExpire != nil {
			m.opts.OnExpire()
		}
	})
}

func (m *Monitor) disarm() {
	if m.warn != nil {
		m.warn.Stop()
		m.warn = nil
	}
	if m.expire != nil {
		m.expire.Stop()
		m.expire = nil
	}
}

// current reports whether a firing timer still belongs to the latest arm.
// An expiring timer also stops the monitor.
func (m *Monitor) current(gen uint64, expiring bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running || gen != m.gen {
		return false
	}
	if expiring {
		m.running = false
		m.warn = nil
		m.expire = nil
	}
	return true
}
