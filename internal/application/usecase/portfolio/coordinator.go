package portfolio

import (
	"errors"
	"sync"
)

// ErrBusy is returned when a coordinator already has a mutation in flight.
// Callers disable their submit affordance while Submitting() is true, so
// hitting this means the gate did its job rather than dispatching a
// concurrent write.
var ErrBusy = errors.New("a submission is already in flight")

// submitGate serializes mutations per coordinator instance. Coordinators for
// different entity kinds are independent; their sub-resources are disjoint
// server-side.
type submitGate struct {
	mu         sync.Mutex
	submitting bool
}

func (g *submitGate) begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.submitting {
		return ErrBusy
	}
	g.submitting = true
	return nil
}

func (g *submitGate) end() {
	g.mu.Lock()
	g.submitting = false
	g.mu.Unlock()
}

func (g *submitGate) active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitting
}
