package nec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bitsOf extracts the transmitted bit values from the 32 data pulses of a
// full frame, in on-air order (LSB of the address first).
func bitsOf(t *testing.T, pulses []Pulse) []int {
	t.Helper()
	require.Len(t, pulses, FramePulseCount)

	bits := make([]int, 0, 32)
	for _, p := range pulses[1:33] {
		switch p.Space {
		case Bit0Space:
			bits = append(bits, 0)
		case Bit1Space:
			bits = append(bits, 1)
		default:
			t.Fatalf("data pulse with unexpected space %v", p.Space)
		}
	}
	return bits
}

func TestMarshalPulses_FrameStructure(t *testing.T) {
	pulses := Frame{Addr: 0x04, Cmd: 0x08}.MarshalPulses()
	require.Len(t, pulses, FramePulseCount)

	// Lead burst and pause.
	assert.Equal(t, 9*time.Millisecond, pulses[0].Mark)
	assert.Equal(t, 4500*time.Microsecond, pulses[0].Space)

	// Exactly one terminal burst with no following bit.
	assert.Equal(t, TrailMark, pulses[33].Mark)
	assert.Equal(t, time.Duration(0), pulses[33].Space)
}

func TestMarshalPulses_BitMarkConstant(t *testing.T) {
	// The burst duration is identical for 0 and 1 bits; only the pause
	// encodes the value.
	for _, f := range []Frame{{0x00, 0x00}, {0xFF, 0xFF}, {0x04, 0x08}, {0xA5, 0x5A}} {
		pulses := f.MarshalPulses()
		for i, p := range pulses[1:33] {
			assert.Equal(t, BitMark, p.Mark, "frame %+v bit %d", f, i)
		}
	}
}

func TestMarshalPulses_LSBFirst(t *testing.T) {
	// 0b10110000 must go out as 0,0,0,0,1,1,0,1.
	pulses := Frame{Addr: 0b10110000, Cmd: 0x00}.MarshalPulses()
	bits := bitsOf(t, pulses)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 0, 1}, bits[:8])
}

func TestMarshalPulses_InverseBytes(t *testing.T) {
	// For every 8-bit value the second and fourth bytes on air are the
	// bitwise complement of the first and third.
	for v := 0; v < 256; v++ {
		f := Frame{Addr: uint8(v), Cmd: uint8(255 - v)}
		bits := bitsOf(t, f.MarshalPulses())

		for i := 0; i < 8; i++ {
			assert.Equal(t, 1-bits[i], bits[8+i], "addr inverse bit %d of %#02x", i, v)
			assert.Equal(t, 1-bits[16+i], bits[24+i], "cmd inverse bit %d of %#02x", i, v)
		}
	}
}

func TestMarshalPulses_Repeat(t *testing.T) {
	pulses := Repeat{}.MarshalPulses()
	require.Len(t, pulses, 2)
	assert.Equal(t, Pulse{9 * time.Millisecond, 2250 * time.Microsecond}, pulses[0])
	assert.Equal(t, Pulse{Mark: TrailMark}, pulses[1])
}

func TestRaw_RoundTrip(t *testing.T) {
	f := Frame{Addr: 0x04, Cmd: 0x08}
	raw := f.Raw()

	assert.Equal(t, uint32(0xF708FB04), raw)

	got, ok := FromRaw(raw)
	require.True(t, ok)
	assert.Equal(t, f, got)
}

func TestFromRaw_RejectsBadInverse(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
	}{
		{name: "corrupt addr inverse", raw: 0xF708FA04},
		{name: "corrupt cmd inverse", raw: 0xF608FB04},
		{name: "all zero", raw: 0x00000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FromRaw(tt.raw)
			assert.False(t, ok)
		})
	}
}

func TestDuration_NominalFrame(t *testing.T) {
	// All-zero payload is the shortest frame, all-ones the longest. The
	// address/command inverses force exactly 16 ones in every frame, so in
	// fact every frame has the same duration: 9 + 4.5 + 16*1.125 + 16*2.25
	// + 0.5625 ms = 67.5 ms.
	want := LeadMark + LeadSpace +
		16*(BitMark+Bit0Space) + 16*(BitMark+Bit1Space) +
		TrailMark

	for _, f := range []Frame{{0x00, 0x00}, {0xFF, 0xFF}, {0x04, 0x02}} {
		assert.Equal(t, want, Duration(f.MarshalPulses()), "frame %+v", f)
	}
	assert.Equal(t, 67_500*time.Microsecond, want)
}

func TestSend_GatesCarrierPerPulse(t *testing.T) {
	rec := &recordingEmitter{}
	SendFrame(rec, 0x04, 0x02)

	// One on/off gate per pulse, with the mark delayed while the carrier is
	// on and the space while it is off.
	require.Len(t, rec.events, 2*FramePulseCount)
	assert.Equal(t, event{on: true, delay: LeadMark}, rec.events[0])
	assert.Equal(t, event{on: false, delay: LeadSpace}, rec.events[1])
	// Terminal burst: carrier off with no further delay.
	assert.Equal(t, event{on: true, delay: TrailMark}, rec.events[66])
	assert.Equal(t, event{on: false, delay: 0}, rec.events[67])
}

type event struct {
	on    bool
	delay time.Duration
}

// recordingEmitter collapses each carrier transition and the delay that
// follows it into a single event for easy assertions.
type recordingEmitter struct {
	events []event
}

func (r *recordingEmitter) CarrierOn()  { r.events = append(r.events, event{on: true}) }
func (r *recordingEmitter) CarrierOff() { r.events = append(r.events, event{on: false}) }
func (r *recordingEmitter) Delay(d time.Duration) {
	r.events[len(r.events)-1].delay += d
}
