// ABOUTME: Application configuration
// ABOUTME: Loads YAML settings with env expansion, defaults and validation
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/tonegen/pkg/audio"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Backends lists the output backend names
var Backends = []string{"oto", "malgo", "portaudio", "wav"}

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	UI      UIConfig      `yaml:"ui"`
}

type DeviceConfig struct {
	Backend    string `yaml:"backend"`
	SampleRate int    `yaml:"sample_rate"`
	BitDepth   int    `yaml:"bit_depth"`
	Signed     *bool  `yaml:"signed"`
	Channels   int    `yaml:"channels"`
	WAVPath    string `yaml:"wav_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type UIConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads path, expanding ${VAR} references, and applies defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Device.Backend == "" {
		c.Device.Backend = "oto"
	}
	if c.Device.SampleRate == 0 {
		c.Device.SampleRate = 44100
	}
	if c.Device.BitDepth == 0 {
		c.Device.BitDepth = 16
	}
	if c.Device.Channels == 0 {
		c.Device.Channels = 2
	}
	if c.Device.WAVPath == "" {
		c.Device.WAVPath = "tonegen.wav"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "tonegen.log"
	}
	if c.UI.Enabled == nil {
		enabled := true
		c.UI.Enabled = &enabled
	}
}

// Validate checks the settings the application owns. Bit depth is left to
// the synthesizer so an unsupported width surfaces when a tone is played.
func (c *Config) Validate() error {
	known := false
	for _, b := range Backends {
		if c.Device.Backend == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: unknown backend %q (want one of %v)", ErrInvalid, c.Device.Backend, Backends)
	}
	if c.Device.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive, got %d", ErrInvalid, c.Device.SampleRate)
	}
	if c.Device.Channels <= 0 {
		return fmt.Errorf("%w: channels must be positive, got %d", ErrInvalid, c.Device.Channels)
	}
	if c.Device.Backend == "wav" && c.Device.WAVPath == "" {
		return fmt.Errorf("%w: wav backend requires wav_path", ErrInvalid)
	}
	return nil
}

// Format returns the device sample format described by the config.
// Signedness defaults to the usual PCM convention: unsigned 8-bit, signed otherwise.
func (d DeviceConfig) Format() audio.Format {
	signed := d.BitDepth != 8
	if d.Signed != nil {
		signed = *d.Signed
	}
	return audio.Format{
		SampleRate: d.SampleRate,
		BitDepth:   d.BitDepth,
		Signed:     signed,
		Channels:   d.Channels,
	}
}

// UIEnabled reports whether the TUI should run
func (c *Config) UIEnabled() bool {
	return c.UI.Enabled == nil || *c.UI.Enabled
}
