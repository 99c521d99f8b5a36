// Package hw defines the hardware surface the remote-control transmitter
// runs against: a gated IR carrier, a handful of button lines and a
// sleep-until-input primitive. The firmware provides the real,
// machine-backed implementation; Sim provides a deterministic simulated one
// for host-side tests and tooling.
package hw

import "time"

// Device abstracts the transmitter hardware.
//
// The carrier (38kHz, 25% duty) is configured once at start-up; CarrierOn
// and CarrierOff only gate it onto and off the transmit line. CarrierOff
// must leave the line inactive regardless of carrier phase.
//
// All timing-sensitive work runs on one logical thread of control: Sleep is
// the only suspension point, Delay is an active wait accurate to a small
// fraction of the protocol's 562.5us unit.
type Device interface {
	// CarrierOn gates the carrier onto the transmit line. The line starts
	// oscillating immediately; there is no ramp-up.
	CarrierOn()
	// CarrierOff forces the transmit line inactive.
	CarrierOff()
	// ReadButtons returns the current button mask, masked to the wired
	// lines and inverted so that 1 = pressed. No debouncing is done here;
	// the caller waits out the settle time after a wake.
	ReadButtons() uint8
	// Sleep halts in the lowest-power retainable state and returns when an
	// enabled input line changes level. The wake carries no payload.
	Sleep()
	// Delay waits for d without yielding the transmit timing.
	Delay(d time.Duration)
}

// Ensure Sim implements Device.
var _ Device = (*Sim)(nil)
