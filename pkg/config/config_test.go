package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, uint8(0x04), cfg.Remote.Address)
	assert.Len(t, cfg.Remote.Keys, 5)
	assert.Equal(t, "Vol+", cfg.Remote.Keys[0].Label)
	assert.Equal(t, uint8(0x02), cfg.Remote.Keys[0].Code)
	assert.Equal(t, "Power", cfg.Remote.Keys[4].Label)
	assert.Equal(t, uint8(0x08), cfg.Remote.Keys[4].Code)
	assert.Equal(t, 38_000, cfg.Carrier.FrequencyHz)
	assert.Equal(t, 25, cfg.Carrier.DutyPercent)
	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.False(t, cfg.Mock.Realtime)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
remote:
  address: 0x20
  keys:
    - label: "Play"
      code: 0x40
    - label: "Stop"
      code: 0x41

carrier:
  frequency_hz: 36000
  duty_percent: 33

serial:
  port: "/dev/ttyACM0"

mock:
  realtime: true
  latency: 5ms
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, uint8(0x20), cfg.Remote.Address)
	require.Len(t, cfg.Remote.Keys, 2)
	assert.Equal(t, KeyConfig{Label: "Play", Code: 0x40}, cfg.Remote.Keys[0])
	assert.Equal(t, KeyConfig{Label: "Stop", Code: 0x41}, cfg.Remote.Keys[1])
	assert.Equal(t, 36_000, cfg.Carrier.FrequencyHz)
	assert.Equal(t, 33, cfg.Carrier.DutyPercent)
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.True(t, cfg.Mock.Realtime)
	assert.Equal(t, 5*time.Millisecond, cfg.Mock.Latency)
}

func TestLoad_PartialYAMLUsesDefaults(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("serial:\n  port: \"/dev/ttyUSB1\"\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Port)
	// Missing sections fall back to defaults.
	assert.Len(t, cfg.Remote.Keys, 5)
	assert.Equal(t, 38_000, cfg.Carrier.FrequencyHz)
	assert.Equal(t, 25, cfg.Carrier.DutyPercent)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	_, err = Load(tmpfile.Name())
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	defer os.Remove(tmpfile.Name())

	cfg := Default()
	cfg.Remote.Address = 0x10
	cfg.Serial.Port = "/dev/ttyACM7"
	require.NoError(t, cfg.Save(tmpfile.Name()))

	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
