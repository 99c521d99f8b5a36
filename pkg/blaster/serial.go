package blaster

import (
	"fmt"
	"log"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/alex-nemo/tinyremote/pkg/nec"
)

const (
	// DefaultBaudRate is the standard baud rate for USB IR blaster sticks.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the transmissions channel buffer.
	DefaultBufferSize = 16
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial drives a USB IR blaster stick over a serial port. The stick speaks
// a line protocol: one transmission per line, alternating mark/space
// durations in microseconds (see formatPulses). The stick owns the carrier;
// the host only ships timing.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn       serial.Port
	out        chan Transmission
	mu         sync.RWMutex
	connected  bool
	stopRepeat chan struct{} // non-nil while an auto-repeat is running
}

// New creates a new Serial blaster for the given port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		out:      make(chan Transmission, bufSize),
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	return nil
}

// Close stops any running auto-repeat and closes the port.
func (d *Serial) Close() error {
	d.StopRepeat()

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false

	close(d.out)

	return nil
}

// Transmissions returns the channel carrying everything sent to the stick.
func (d *Serial) Transmissions() <-chan Transmission {
	return d.out
}

// SendFrame transmits one full NEC frame for the address/command pair and,
// with autoRepeat set, keeps the stick repeating until StopRepeat or Close.
func (d *Serial) SendFrame(addr, cmd uint8, autoRepeat bool) error {
	// A new key press supersedes a running repeat.
	d.StopRepeat()

	frame := nec.Frame{Addr: addr, Cmd: cmd}
	pulses := frame.MarshalPulses()
	if err := d.send(Transmission{Time: time.Now(), Raw: frame.Raw(), Pulses: pulses}); err != nil {
		return err
	}

	if autoRepeat {
		stop := make(chan struct{})
		d.mu.Lock()
		d.stopRepeat = stop
		d.mu.Unlock()
		go repeatLoop(stop, nec.Duration(pulses), d.SendRepeat)
	}

	return nil
}

// SendRepeat transmits a single NEC repeat code.
func (d *Serial) SendRepeat() error {
	return d.send(Transmission{Time: time.Now(), Repeat: true, Pulses: nec.Repeat{}.MarshalPulses()})
}

// StopRepeat cancels a running auto-repeat. Safe to call at any time.
func (d *Serial) StopRepeat() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopRepeat != nil {
		close(d.stopRepeat)
		d.stopRepeat = nil
	}
}

// IsConnected returns whether the port is currently open.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// send writes the transmission to the stick and publishes it.
func (d *Serial) send(tx Transmission) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	if _, err := d.conn.Write([]byte(formatPulses(tx.Pulses))); err != nil {
		return fmt.Errorf("failed to send pulse train: %w", err)
	}

	publish(d.out, tx)
	return nil
}

// publish sends tx to the channel without blocking; a full channel drops the
// transmission (the UI only misses a display update, the signal went out).
func publish(out chan Transmission, tx Transmission) {
	select {
	case out <- tx:
	default:
		log.Printf("Transmissions channel full, dropping transmission")
	}
}

// repeatLoop re-sends the NEC repeat code so that consecutive transmissions
// start RepeatPeriod (108ms) apart, until stop closes or sending fails.
func repeatLoop(stop <-chan struct{}, lastDuration time.Duration, sendRepeat func() error) {
	delay := nec.RepeatPeriod - lastDuration
	repeatDuration := nec.Duration(nec.Repeat{}.MarshalPulses())

	for {
		select {
		case <-stop:
			return
		case <-time.After(delay):
		}

		if err := sendRepeat(); err != nil {
			log.Printf("Auto-repeat stopped: %v", err)
			return
		}
		delay = nec.RepeatPeriod - repeatDuration
	}
}
