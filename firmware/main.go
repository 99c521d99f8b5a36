//go:generate tinygo flash -target=xiao

// Five-button NEC infrared remote. The board sleeps until a button edge,
// debounces, transmits the mapped command as a 38 kHz modulated NEC frame
// and keeps sending repeat codes while the button is held. All codes and
// pins are compile-time constants in pins.go.
package main

import (
	"github.com/alex-nemo/tinyremote/pkg/remote"
)

func main() {
	b := newBoard()

	tx := remote.New(b, ADDR, remote.Keymap{
		MASK_KEY1: KEY1,
		MASK_KEY2: KEY2,
		MASK_KEY3: KEY3,
		MASK_KEY4: KEY4,
		MASK_KEY5: KEY5,
	})

	tx.Run()
}
