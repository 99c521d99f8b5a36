package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/alex-nemo/tinyremote/pkg/blaster"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createRemoteTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 400))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := blaster.Ports()
	portOptions := []string{}

	if err == nil {
		for _, port := range ports {
			portOptions = append(portOptions, port.Name)
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	found := false
	for _, opt := range portOptions {
		if opt == currentPort {
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
	}

	portSelect := widget.NewSelect(portOptions, func(selected string) {
		// Selection handler - applied on submit
	})
	if currentPort != "" {
		portSelect.SetSelected(currentPort)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
		},
		OnSubmit: func() {
			if portSelect.Selected == "" {
				return
			}

			portChanged := state.cfg.Serial.Port != portSelect.Selected
			wasConnected := state.device != nil && state.device.IsConnected()

			state.cfg.Serial.Port = portSelect.Selected
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
				return
			}

			// If the port changed under a live connection, reconnect.
			if portChanged && wasConnected && !state.useMock {
				disconnect(state)
				handleConnect(state)
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createRemoteTab creates the Remote configuration tab: target address and
// per-key command codes.
func createRemoteTab(state *appState) *container.TabItem {
	addrEntry := widget.NewEntry()
	addrEntry.SetText(fmt.Sprintf("0x%02X", state.cfg.Remote.Address))

	keyEntries := make([]*widget.Entry, len(state.cfg.Remote.Keys))
	items := []*widget.FormItem{
		{Text: "Device Address", Widget: addrEntry},
	}
	for i, key := range state.cfg.Remote.Keys {
		entry := widget.NewEntry()
		entry.SetText(fmt.Sprintf("0x%02X", key.Code))
		keyEntries[i] = entry
		items = append(items, &widget.FormItem{Text: key.Label, Widget: entry})
	}

	form := &widget.Form{
		Items: items,
		OnSubmit: func() {
			addr, err := parseCode(addrEntry.Text)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid device address: %w", err), state.window)
				return
			}

			codes := make([]uint8, len(keyEntries))
			for i, entry := range keyEntries {
				code, err := parseCode(entry.Text)
				if err != nil {
					dialog.ShowError(fmt.Errorf("invalid code for %s: %w", state.cfg.Remote.Keys[i].Label, err), state.window)
					return
				}
				codes[i] = code
			}

			state.cfg.Remote.Address = addr
			for i := range state.cfg.Remote.Keys {
				state.cfg.Remote.Keys[i].Code = codes[i]
			}

			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Remote", form)
}

// createMockTab creates the Mock blaster configuration tab.
func createMockTab(state *appState) *container.TabItem {
	realtimeCheck := widget.NewCheck("Pace transmissions at on-air duration", nil)
	realtimeCheck.SetChecked(state.cfg.Mock.Realtime)

	latencyEntry := widget.NewEntry()
	latencyEntry.SetText(state.cfg.Mock.Latency.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Realtime", Widget: realtimeCheck},
			{Text: "Latency", Widget: latencyEntry},
		},
		OnSubmit: func() {
			latency, err := time.ParseDuration(latencyEntry.Text)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid latency: %w", err), state.window)
				return
			}

			state.cfg.Mock.Realtime = realtimeCheck.Checked
			state.cfg.Mock.Latency = latency

			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}

// parseCode parses an 8-bit code in decimal or 0x-prefixed hex.
func parseCode(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}
