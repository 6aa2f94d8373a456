package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kitchen/internal/kitchen"
)

// Bridge carries events raised outside the program (navigation requests
// from the API client, idle timer callbacks) into the running program.
// Events raised before the program starts are held and delivered on attach.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
	pending []tea.Msg
}

// NewBridge returns an unattached Bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Navigate implements kitchen.Navigator.
func (b *Bridge) Navigate(page kitchen.Page) {
	b.send(pageMsg(page))
}

// IdleWarning is an idle.Options.OnWarn callback.
func (b *Bridge) IdleWarning(remaining time.Duration) {
	b.send(idleWarnMsg(remaining))
}

// IdleExpired is an idle.Options.OnExpire callback.
func (b *Bridge) IdleExpired() {
	b.send(idleExpiredMsg{})
}

func (b *Bridge) attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, msg := range pending {
		go p.Send(msg)
	}
}

// send never blocks: Navigate may run inside Update via a synchronous call
// chain, and Program.Send waits for the event loop.
func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.program == nil {
		b.pending = append(b.pending, msg)
		return
	}
	go b.program.Send(msg)
}

type pageMsg kitchen.Page

type idleWarnMsg time.Duration

type idleExpiredMsg struct{}
