package blaster

import (
	"fmt"
	"sync"
	"time"

	"github.com/alex-nemo/tinyremote/pkg/config"
	"github.com/alex-nemo/tinyremote/pkg/nec"
)

// Mock simulates an IR blaster for testing and development. Transmissions
// are published on the channel without any hardware behind them. With
// Realtime set in the config, each send is paced at its on-air duration so
// the UI behaves like a real stick.
type Mock struct {
	cfg *config.MockConfig

	out        chan Transmission
	mu         sync.RWMutex
	connected  bool
	stopRepeat chan struct{}
}

// NewMock creates a new mocked blaster instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{}
	}

	return &Mock{
		cfg: cfg,
		out: make(chan Transmission, DefaultBufferSize),
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.StopRepeat()

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.connected = false
	close(m.out)

	return nil
}

// Transmissions returns the channel carrying the simulated transmissions.
func (m *Mock) Transmissions() <-chan Transmission {
	return m.out
}

// SendFrame simulates transmitting one full NEC frame.
func (m *Mock) SendFrame(addr, cmd uint8, autoRepeat bool) error {
	m.StopRepeat()

	frame := nec.Frame{Addr: addr, Cmd: cmd}
	pulses := frame.MarshalPulses()
	if err := m.send(Transmission{Time: time.Now(), Raw: frame.Raw(), Pulses: pulses}); err != nil {
		return err
	}

	if autoRepeat {
		stop := make(chan struct{})
		m.mu.Lock()
		m.stopRepeat = stop
		m.mu.Unlock()
		go repeatLoop(stop, nec.Duration(pulses), m.SendRepeat)
	}

	return nil
}

// SendRepeat simulates transmitting a single NEC repeat code.
func (m *Mock) SendRepeat() error {
	return m.send(Transmission{Time: time.Now(), Repeat: true, Pulses: nec.Repeat{}.MarshalPulses()})
}

// StopRepeat cancels a running auto-repeat.
func (m *Mock) StopRepeat() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopRepeat != nil {
		close(m.stopRepeat)
		m.stopRepeat = nil
	}
}

// IsConnected returns whether the mocked device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// send paces the transmission if configured, then publishes it.
func (m *Mock) send(tx Transmission) error {
	if m.cfg.Realtime {
		time.Sleep(nec.Duration(tx.Pulses) + m.cfg.Latency)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}

	publish(m.out, tx)
	return nil
}
