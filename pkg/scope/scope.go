package scope

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/alex-nemo/tinyremote/pkg/nec"
)

// PulseViewer is a custom Fyne widget that displays an IR transmission as a
// logic-analyzer style trace: the line is high while the carrier is gated
// on and low during pauses, against a millisecond grid.
type PulseViewer struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu     sync.RWMutex
	pulses []nec.Pulse
	raw    uint32
	repeat bool
	stamp  time.Time
}

// New creates a new PulseViewer instance.
func New() *PulseViewer {
	v := &PulseViewer{}
	v.ExtendBaseWidget(v)
	// Trigger initial refresh to display the empty trace
	v.Refresh()
	return v
}

// SetTransmission updates the widget with a new transmission.
// This should be called from the UI goroutine via fyne.Do().
func (v *PulseViewer) SetTransmission(pulses []nec.Pulse, raw uint32, repeat bool, stamp time.Time) {
	v.mu.Lock()
	v.pulses = pulses
	v.raw = raw
	v.repeat = repeat
	v.stamp = stamp
	v.mu.Unlock()

	// Refresh the widget (must be outside the lock to avoid deadlock)
	v.Refresh()
}

// Clear empties the trace.
func (v *PulseViewer) Clear() {
	v.mu.Lock()
	v.pulses = nil
	v.raw = 0
	v.repeat = false
	v.mu.Unlock()

	v.Refresh()
}

// CreateRenderer creates the renderer for this widget.
func (v *PulseViewer) CreateRenderer() fyne.WidgetRenderer {
	return newPulseRenderer(v)
}
