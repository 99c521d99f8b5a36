package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// createKeyRow builds one button per configured key, disabled until a
// blaster is connected.
func createKeyRow(state *appState) fyne.CanvasObject {
	state.keyButtons = make([]*widget.Button, len(state.cfg.Remote.Keys))
	objects := make([]fyne.CanvasObject, len(state.cfg.Remote.Keys))

	for i, key := range state.cfg.Remote.Keys {
		i := i
		btn := widget.NewButton(key.Label, func() {
			handleKeyPress(state, i)
		})
		btn.Disable()
		state.keyButtons[i] = btn
		objects[i] = btn
	}

	return container.NewGridWithColumns(len(objects), objects...)
}

// handleKeyPress sends the key's command. In hold mode the key toggles: the
// first click starts the frame plus auto-repeat, a second click on the same
// key releases it. Outside hold mode each click is one frame.
func handleKeyPress(state *appState, keyIndex int) {
	if state.device == nil || !state.device.IsConnected() {
		return
	}

	if state.holdMode && state.heldKey == keyIndex {
		// Release the held key.
		state.device.StopRepeat()
		state.heldKey = -1
		updateKeyButtonStates(state)
		return
	}

	key := state.cfg.Remote.Keys[keyIndex]
	if err := state.device.SendFrame(state.cfg.Remote.Address, key.Code, state.holdMode); err != nil {
		dialog.ShowError(fmt.Errorf("failed to send %s: %w", key.Label, err), state.window)
		return
	}

	if state.holdMode {
		state.heldKey = keyIndex
	} else {
		state.heldKey = -1
	}
	updateKeyButtonStates(state)
}

// setKeysEnabled enables or disables all key buttons.
func setKeysEnabled(state *appState, enabled bool) {
	for _, btn := range state.keyButtons {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// updateKeyButtonStates updates the visual state of the key buttons: the
// held key is highlighted.
func updateKeyButtonStates(state *appState) {
	for i, btn := range state.keyButtons {
		if i == state.heldKey {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}
