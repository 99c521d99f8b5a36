package main

import "machine"

const (
	// IR codes: target device address and per-key command codes (LG TV).
	ADDR = 0x04 // Address of LG TV
	KEY1 = 0x02 // Volume+
	KEY2 = 0x00 // Channel+
	KEY3 = 0x03 // Volume-
	KEY4 = 0x01 // Channel-
	KEY5 = 0x08 // Power

	// IR LED pin (PWM capable, carries the 38 kHz carrier)
	PIN_IR = machine.D1

	// Button pins (momentary buttons to ground, internal pull-ups)
	PIN_KEY1 = machine.D0
	PIN_KEY2 = machine.D2
	PIN_KEY3 = machine.D3
	PIN_KEY4 = machine.D4
	PIN_KEY5 = machine.D5

	// Button mask bits as produced by board.ReadButtons
	MASK_KEY1 = 1 << 0
	MASK_KEY2 = 1 << 1
	MASK_KEY3 = 1 << 2
	MASK_KEY4 = 1 << 3
	MASK_KEY5 = 1 << 4
)
