// Package remote ties the pieces of the IR transmitter together: it sleeps
// until a button edge, debounces, maps the pressed button to a command code
// and drives the NEC encoder, re-issuing repeat codes for as long as the
// button stays held.
package remote

import (
	"time"

	"github.com/alex-nemo/tinyremote/pkg/hw"
	"github.com/alex-nemo/tinyremote/pkg/nec"
)

const (
	// DebounceDelay is the settle time after a wake before the button lines
	// are trusted.
	DebounceDelay = time.Millisecond

	// RepeatLeadDelay and RepeatTrailDelay pad the 11.8125ms repeat code so
	// that consecutive repeat codes start ~108ms apart (the NEC repeat
	// period). The split between the two is a tunable; the 108ms cadence is
	// the contract.
	RepeatLeadDelay  = 40 * time.Millisecond
	RepeatTrailDelay = 56 * time.Millisecond
)

// Keymap maps a single-button line mask to the command code it transmits.
// Masks with zero or several bits set map to nothing: such reads produce no
// frame.
type Keymap map[uint8]uint8

// Transmitter is the remote-control state machine. It owns the transmit
// line and the carrier gate for the duration of each transmission and is
// not safe for concurrent use; there is exactly one logical thread of
// control.
type Transmitter struct {
	dev  hw.Device
	addr uint8
	keys Keymap
}

// New returns a transmitter sending to the device address addr using the
// given keymap.
func New(dev hw.Device, addr uint8, keys Keymap) *Transmitter {
	return &Transmitter{dev: dev, addr: addr, keys: keys}
}

// Step runs one wake cycle: sleep until an input edge, debounce, scan, send
// the mapped frame if exactly one known button is down, then keep sending
// repeat codes while any line stays active. Unmapped masks (simultaneous
// presses, noise) send no frame and fall straight through to the hold loop.
func (t *Transmitter) Step() {
	t.dev.Sleep()
	t.dev.Delay(DebounceDelay)

	if cmd, ok := t.keys[t.dev.ReadButtons()]; ok {
		nec.SendFrame(t.dev, t.addr, cmd)
	}

	for t.dev.ReadButtons() != 0 {
		t.dev.Delay(RepeatLeadDelay)
		nec.SendRepeat(t.dev)
		t.dev.Delay(RepeatTrailDelay)
	}
}

// Run loops Step forever. The embedded target has no shutdown path; a stuck
// button yields indefinite repeat codes, which is intended behavior.
func (t *Transmitter) Run() {
	for {
		t.Step()
	}
}
