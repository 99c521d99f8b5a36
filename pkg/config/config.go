package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the host-tool configuration. The firmware itself does
// not read this: its address, key codes and pins are compile-time constants
// in firmware/pins.go. This file configures the desktop remote and the
// blaster devices it talks to.
type Config struct {
	Remote  RemoteConfig  `yaml:"remote"`
	Carrier CarrierConfig `yaml:"carrier"`
	Serial  SerialConfig  `yaml:"serial"`
	Mock    MockConfig    `yaml:"mock"`
}

// RemoteConfig describes the emulated remote: the target device address and
// the key set.
type RemoteConfig struct {
	Address uint8       `yaml:"address"`
	Keys    []KeyConfig `yaml:"keys"`
}

// KeyConfig is one key of the remote.
type KeyConfig struct {
	Label string `yaml:"label"`
	Code  uint8  `yaml:"code"`
}

// CarrierConfig contains the IR carrier parameters.
type CarrierConfig struct {
	FrequencyHz int `yaml:"frequency_hz"`
	DutyPercent int `yaml:"duty_percent"`
}

// SerialConfig contains serial port configuration for a USB IR blaster.
type SerialConfig struct {
	Port string `yaml:"port"`
}

// MockConfig contains mock blaster configuration.
type MockConfig struct {
	Realtime bool          `yaml:"realtime"` // pace transmissions at their on-air duration
	Latency  time.Duration `yaml:"latency"`  // extra per-transmission latency
}

// Default returns a default configuration with sensible values: the LG TV
// key set of the reference remote.
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			Address: 0x04, // LG TV
			Keys: []KeyConfig{
				{Label: "Vol+", Code: 0x02},
				{Label: "Ch+", Code: 0x00},
				{Label: "Vol-", Code: 0x03},
				{Label: "Ch-", Code: 0x01},
				{Label: "Power", Code: 0x08},
			},
		},
		Carrier: CarrierConfig{
			FrequencyHz: 38_000,
			DutyPercent: 25,
		},
		Serial: SerialConfig{
			Port: "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
		},
		Mock: MockConfig{
			Realtime: false,
			Latency:  0,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if len(c.Remote.Keys) == 0 {
		c.Remote.Keys = def.Remote.Keys
	}

	if c.Carrier.FrequencyHz == 0 {
		c.Carrier.FrequencyHz = def.Carrier.FrequencyHz
	}
	if c.Carrier.DutyPercent == 0 {
		c.Carrier.DutyPercent = def.Carrier.DutyPercent
	}

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
}
