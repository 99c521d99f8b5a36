package main

import (
	"machine"
	"time"

	"github.com/sparques/pwm"

	"github.com/alex-nemo/tinyremote/pkg/hw"
	"github.com/alex-nemo/tinyremote/pkg/nec"
)

// board is the machine-backed hw.Device. The PWM timer free-runs at the
// carrier frequency the whole time; CarrierOn/CarrierOff only move the duty
// cycle between 25% and 0, which gates the wave onto the IR LED without any
// ramp-up.
type board struct {
	pgroup pwm.Group
	ch     uint8
	duty   uint32
	keys   [5]machine.Pin
	wake   chan struct{}
}

var _ hw.Device = (*board)(nil)

func newBoard() *board {
	b := &board{wake: make(chan struct{}, 1)}

	PIN_IR.Configure(machine.PinConfig{Mode: machine.PinPWM})
	b.pgroup = pwm.Get(PIN_IR)
	b.pgroup.Configure(machine.PWMConfig{Period: uint64(1e9) / uint64(nec.CarrierFrequency)})
	b.ch, _ = b.pgroup.Channel(PIN_IR)
	b.pgroup.Set(b.ch, 0)
	b.duty = b.pgroup.Top() * nec.CarrierDutyPercent / 100

	// Buttons pull the line low when pressed. The toggle interrupt exists
	// only to end Sleep; it carries no payload and does no work. No other
	// peripherals (ADC, comparator) are ever enabled, so idle current is
	// the sleeping core plus the pull-ups.
	b.keys = [5]machine.Pin{PIN_KEY1, PIN_KEY2, PIN_KEY3, PIN_KEY4, PIN_KEY5}
	for _, pin := range b.keys {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		pin.SetInterrupt(machine.PinFalling|machine.PinRising, b.wakeInterrupt)
	}

	return b
}

func (b *board) CarrierOn() {
	b.pgroup.Set(b.ch, b.duty)
}

func (b *board) CarrierOff() {
	b.pgroup.Set(b.ch, 0)
}

func (b *board) ReadButtons() uint8 {
	var mask uint8
	for i, pin := range b.keys {
		if !pin.Get() { // active low
			mask |= 1 << i
		}
	}
	return mask
}

// Sleep blocks on the wake channel; with nothing else runnable the
// scheduler parks the core in its low-power wait until a pin interrupt
// fires.
func (b *board) Sleep() {
	<-b.wake
}

func (b *board) Delay(d time.Duration) {
	time.Sleep(d)
}

// wakeInterrupt runs in interrupt context: a non-blocking send, nothing
// else. Edges during active transmission at most leave one stale wake
// token, which the next Step consumes and debounces away.
func (b *board) wakeInterrupt(machine.Pin) {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}
