// Package nec implements the NEC infrared remote-control protocol as used by
// most consumer devices.
//
// An NEC transmission starts with a 9ms carrier burst followed by a 4.5ms
// pause, then four data bytes (address, inverted address, command, inverted
// command), least significant bit first, and a final 562.5us burst marking the
// end. Every bit starts with a 562.5us burst; a 562.5us pause encodes a "0"
// and a 1687.5us pause encodes a "1". While a key stays held, an abbreviated
// repeat code (9ms burst, 2.25ms pause, 562.5us burst) is re-sent every 108ms
// instead of the full frame.
//
// References:
// https://www.sbprojects.net/knowledge/ir/nec.php
// https://techdocs.altium.com/display/FPGA/NEC+Infrared+Transmission+Protocol
package nec

import "time"

const (
	// CarrierFrequency is the modulation frequency IR receivers are tuned to.
	CarrierFrequency = 38_000
	// CarrierDutyPercent is the carrier duty cycle. 25% trades emitted power
	// against LED ratings.
	CarrierDutyPercent = 25

	// Unit is the base timing unit of the protocol; all other durations are
	// integer multiples of it.
	Unit = 562_500 * time.Nanosecond

	LeadMark    = 16 * Unit // 9ms
	LeadSpace   = 8 * Unit  // 4.5ms
	RepeatSpace = 4 * Unit  // 2.25ms
	BitMark     = Unit      // 562.5us, identical for 0 and 1
	Bit0Space   = Unit      // 562.5us
	Bit1Space   = 3 * Unit  // 1687.5us
	TrailMark   = Unit      // 562.5us

	// RepeatPeriod is the nominal spacing between the starts of consecutive
	// repeat codes while a key is held.
	RepeatPeriod = 192 * Unit // 108ms
)

// FramePulseCount is the number of pulses in a full frame: lead, 32 data
// bits, trail.
const FramePulseCount = 34

// Pulse is one carrier burst followed by a pause. A zero Space means the
// line simply stays idle afterwards for however long the caller decides.
type Pulse struct {
	Mark  time.Duration
	Space time.Duration
}

// Emitter gates a pre-configured carrier onto the transmit line and provides
// the delays that shape it into a signal. CarrierOff must leave the line
// inactive regardless of carrier phase. Delay accuracy requirements are those
// of the protocol itself: a few percent of the 562.5us unit.
type Emitter interface {
	CarrierOn()
	CarrierOff()
	Delay(d time.Duration)
}

// Frame is one complete address+command transmission. It exists only for the
// duration of the physical transmission; nothing retains it.
type Frame struct {
	Addr uint8
	Cmd  uint8
}

// Repeat is the abbreviated "key still held" code. It carries no payload.
type Repeat struct{}

// Marshaller is anything that can render itself as a pulse train.
type Marshaller interface {
	MarshalPulses() []Pulse
}

// MarshalPulses renders the frame as lead pulse, 32 data bits LSB first over
// addr, ^addr, cmd, ^cmd, and the terminal burst.
func (f Frame) MarshalPulses() []Pulse {
	var out [FramePulseCount]Pulse

	out[0] = Pulse{LeadMark, LeadSpace}

	raw := f.Raw()
	for bit := 0; bit < 32; bit++ {
		if raw>>bit&1 == 1 {
			out[bit+1] = Pulse{BitMark, Bit1Space}
		} else {
			out[bit+1] = Pulse{BitMark, Bit0Space}
		}
	}

	out[33] = Pulse{Mark: TrailMark}

	return out[:]
}

// MarshalPulses renders the repeat code: lead burst, short pause, terminal
// burst.
func (Repeat) MarshalPulses() []Pulse {
	return []Pulse{
		{LeadMark, RepeatSpace},
		{Mark: TrailMark},
	}
}

// Raw assembles the 32-bit on-air representation of the frame,
// LSB -> MSB: { addr, ^addr, cmd, ^cmd }.
func (f Frame) Raw() uint32 {
	return uint32(^f.Cmd)<<24 | uint32(f.Cmd)<<16 | uint32(^f.Addr)<<8 | uint32(f.Addr)
}

// FromRaw splits a raw 32-bit code back into a frame, checking both inverse
// bytes. ok is false if either inverse does not match.
func FromRaw(raw uint32) (f Frame, ok bool) {
	f.Addr = uint8(raw)
	f.Cmd = uint8(raw >> 16)
	ok = uint8(raw>>8) == ^f.Addr && uint8(raw>>24) == ^f.Cmd
	return f, ok
}

// Duration is the total on-air time of the pulse train.
func Duration(pulses []Pulse) time.Duration {
	var total time.Duration
	for _, p := range pulses {
		total += p.Mark + p.Space
	}
	return total
}

// Send transmits m on e, blocking for the full transmission. It busy-holds
// the one logical thread of control and is not re-entrant: never invoke it
// concurrently with itself.
func Send(e Emitter, m Marshaller) {
	for _, p := range m.MarshalPulses() {
		e.CarrierOn()
		e.Delay(p.Mark)
		e.CarrierOff()
		if p.Space > 0 {
			e.Delay(p.Space)
		}
	}
}

// SendFrame transmits one full frame for the given address and command.
func SendFrame(e Emitter, addr, cmd uint8) {
	Send(e, Frame{Addr: addr, Cmd: cmd})
}

// SendRepeat transmits one repeat code.
func SendRepeat(e Emitter) {
	Send(e, Repeat{})
}
