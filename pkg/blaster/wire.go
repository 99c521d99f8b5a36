package blaster

import (
	"strconv"
	"strings"
	"time"

	"github.com/alex-nemo/tinyremote/pkg/nec"
)

// Transmission represents one IR transmission handed to a blaster device.
type Transmission struct {
	Time   time.Time
	Repeat bool
	Raw    uint32 // raw 32-bit NEC code; zero for repeat codes
	Pulses []nec.Pulse
}

// formatPulses renders a pulse train as one wire-protocol line: alternating
// mark/space durations in microseconds, comma separated, newline terminated.
// A terminal zero space is omitted.
// Example: "9000,4500,562,562,...,562\n"
func formatPulses(pulses []nec.Pulse) string {
	var line strings.Builder
	for i, p := range pulses {
		if i > 0 {
			line.WriteByte(',')
		}
		line.WriteString(strconv.FormatInt(p.Mark.Microseconds(), 10))
		if p.Space > 0 {
			line.WriteByte(',')
			line.WriteString(strconv.FormatInt(p.Space.Microseconds(), 10))
		}
	}
	line.WriteByte('\n')
	return line.String()
}
