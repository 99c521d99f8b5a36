package hw

import (
	"sort"
	"sync"
	"time"
)

// Transition is one carrier edge on the simulated transmit line, stamped
// with the virtual time at which it happened.
type Transition struct {
	At      time.Duration
	Carrier bool
}

// buttonEvent is a scheduled change of the simulated button lines.
type buttonEvent struct {
	at   time.Duration
	mask uint8
}

// Sim is a simulated Device driven by a virtual clock: Delay advances the
// clock instead of sleeping, button changes are scheduled at virtual times
// and applied as the clock passes them, and Sleep jumps to the next
// scheduled change (or blocks until one is scheduled). Carrier edges are
// recorded for later inspection, which makes transmit timing assertions
// exact rather than wall-clock dependent.
type Sim struct {
	mu   sync.Mutex
	cond *sync.Cond

	now         time.Duration
	carrier     bool
	transitions []Transition

	buttons uint8
	pending []buttonEvent

	wakes int
}

// NewSim returns a simulated device with the clock at zero, the carrier
// gated off and no buttons pressed.
func NewSim() *Sim {
	s := &Sim{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// CarrierOn implements Device.
func (s *Sim) CarrierOn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.carrier {
		s.carrier = true
		s.transitions = append(s.transitions, Transition{At: s.now, Carrier: true})
	}
}

// CarrierOff implements Device.
func (s *Sim) CarrierOff() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.carrier {
		s.carrier = false
		s.transitions = append(s.transitions, Transition{At: s.now, Carrier: false})
	}
}

// ReadButtons implements Device.
func (s *Sim) ReadButtons() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buttons
}

// Delay implements Device: it advances the virtual clock by d, applying any
// button changes scheduled within the window.
func (s *Sim) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now += d
	s.applyPending(s.now)
}

// Sleep implements Device. If a button change is already scheduled it jumps
// the clock to it and returns; otherwise it blocks until one is scheduled,
// mirroring a core that only ever leaves power-down on an input edge.
func (s *Sim) Sleep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.pending) == 0 {
		s.cond.Wait()
	}

	if next := s.pending[0].at; next > s.now {
		s.now = next
	}
	s.applyPending(s.now)
	s.wakes++
}

// ScheduleButtons schedules the button mask to change to mask at virtual
// time at. Events scheduled in the past take effect immediately on the next
// clock movement. Safe to call while the control loop is asleep.
func (s *Sim) ScheduleButtons(at time.Duration, mask uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, buttonEvent{at: at, mask: mask})
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].at < s.pending[j].at
	})
	s.cond.Broadcast()
}

// applyPending applies all scheduled button changes up to and including
// upTo. Callers must hold mu.
func (s *Sim) applyPending(upTo time.Duration) {
	for len(s.pending) > 0 && s.pending[0].at <= upTo {
		s.buttons = s.pending[0].mask
		s.pending = s.pending[1:]
	}
}

// Now returns the current virtual time.
func (s *Sim) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Wakes returns how many times Sleep has returned.
func (s *Sim) Wakes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wakes
}

// Transitions returns a copy of the recorded carrier edges in order.
func (s *Sim) Transitions() []Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Transition, len(s.transitions))
	copy(out, s.transitions)
	return out
}

// Reset clears recorded edges, pending events and the wake count, and
// rewinds the clock. The carrier gate and button state are cleared too.
func (s *Sim) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = 0
	s.carrier = false
	s.transitions = nil
	s.buttons = 0
	s.pending = nil
	s.wakes = 0
}
