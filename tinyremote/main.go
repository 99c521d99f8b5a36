// TinyRemote desktop app: a virtual NEC remote control. Keys send frames
// through a Blaster (a USB IR blaster stick on a serial port, or a mocked
// device), and every transmission is drawn in the pulse viewer.
package main

import (
	"flag"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/alex-nemo/tinyremote/pkg/blaster"
	"github.com/alex-nemo/tinyremote/pkg/config"
	"github.com/alex-nemo/tinyremote/pkg/scope"
)

// appState holds the pieces of the running application the handlers touch.
type appState struct {
	cfg    *config.Config
	window fyne.Window
	viewer *scope.PulseViewer

	device     blaster.Blaster
	viewerDone chan struct{} // closed when the transmissions goroutine exits
	useMock    bool

	connectBtn *widget.Button
	holdCheck  *widget.Check
	keyButtons []*widget.Button

	holdMode bool
	heldKey  int // index into cfg.Remote.Keys, -1 when no key is held
}

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked blaster instead of serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.alex-nemo.tinyremote")

	window := application.NewWindow("TinyRemote")
	window.Resize(fyne.NewSize(800, 360))
	window.CenterOnScreen()

	state := &appState{
		cfg:     cfg,
		window:  window,
		viewer:  scope.New(),
		useMock: *mockFlag,
		heldKey: -1,
	}

	toolbar := createToolbar(state)
	keys := createKeyRow(state)

	content := container.NewBorder(
		toolbar,
		keys,
		nil,
		nil,
		state.viewer,
	)

	window.SetContent(content)

	// Disconnect cleanly when the window closes.
	window.SetOnClosed(func() {
		disconnect(state)
	})

	window.ShowAndRun()
}

// createToolbar builds the top bar: connect and settings on the left, the
// hold-mode toggle on the right.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	holdCheck := widget.NewCheck("Hold", func(checked bool) {
		state.holdMode = checked
		if !checked && state.heldKey >= 0 && state.device != nil {
			state.device.StopRepeat()
			state.heldKey = -1
			updateKeyButtonStates(state)
		}
	})
	state.holdCheck = holdCheck

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		holdCheck, // right
		nil,       // center (spacer)
	)
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		disconnect(state)
		return
	}

	var device blaster.Blaster
	if state.useMock {
		device = blaster.NewMock(&state.cfg.Mock)
	} else {
		device = blaster.New(state.cfg.Serial.Port, blaster.DefaultBaudRate, blaster.DefaultBufferSize)
	}

	if err := device.Connect(); err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to connect to mocked blaster: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
		}
		return
	}
	state.device = device
	if state.useMock {
		fmt.Println("Using mocked blaster")
	} else {
		fmt.Printf("Connected to serial port: %s\n", state.cfg.Serial.Port)
	}

	// Feed the pulse viewer from the transmissions channel until the
	// device closes it.
	done := make(chan struct{})
	state.viewerDone = done
	go func() {
		defer close(done)
		for tx := range device.Transmissions() {
			fyne.Do(func() {
				state.viewer.SetTransmission(tx.Pulses, tx.Raw, tx.Repeat, tx.Time)
			})
		}
	}()

	setKeysEnabled(state, true)
}

// disconnect gracefully tears down the device and the viewer goroutine.
func disconnect(state *appState) {
	if state.device == nil {
		return
	}

	state.device.Close()
	if state.viewerDone != nil {
		<-state.viewerDone
		state.viewerDone = nil
	}
	state.device = nil
	state.heldKey = -1

	setKeysEnabled(state, false)
	updateKeyButtonStates(state)
	fmt.Println("Disconnected")
}
