// Package blaster drives host-side IR transmitter devices. A Blaster takes
// address/command pairs, renders them as NEC pulse trains and hands them to
// a transmitter: either a USB IR blaster stick on a serial port (Serial) or
// a simulated device (Mock). Every transmission is also published on a
// channel so a UI can display what went on air.
package blaster

// Blaster defines the interface for IR transmitter devices (real or mocked).
type Blaster interface {
	Connect() error
	Close() error
	// SendFrame transmits one full NEC frame. With autoRepeat set, the
	// blaster keeps sending NEC repeat codes every 108ms until StopRepeat
	// or Close, emulating a held key.
	SendFrame(addr, cmd uint8, autoRepeat bool) error
	// SendRepeat transmits a single repeat code. Caller is responsible for
	// cadence; prefer SendFrame with autoRepeat.
	SendRepeat() error
	// StopRepeat cancels a running auto-repeat, emulating key release.
	StopRepeat()
	Transmissions() <-chan Transmission
	IsConnected() bool
}

// Ensure Serial implements Blaster.
var _ Blaster = (*Serial)(nil)

// Ensure Mock implements Blaster.
var _ Blaster = (*Mock)(nil)
