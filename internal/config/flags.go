// ABOUTME: Command-line overrides for configuration
// ABOUTME: Binds device and logging flags and applies only those explicitly set
package config

import "flag"

// Overrides holds flag values bound to a FlagSet
type Overrides struct {
	fs *flag.FlagSet

	ConfigPath  *string
	Backend     *string
	SampleRate  *int
	BitDepth    *int
	Unsigned    *bool
	Channels    *int
	WAVPath     *string
	LogLevel    *string
	LogFile     *string
	MetricsAddr *string
	NoTUI       *bool
}

// BindFlags registers the shared flags on fs
func BindFlags(fs *flag.FlagSet) *Overrides {
	return &Overrides{
		fs:          fs,
		ConfigPath:  fs.String("config", "", "YAML config file"),
		Backend:     fs.String("backend", "oto", "Output backend: oto, malgo, portaudio, wav"),
		SampleRate:  fs.Int("rate", 44100, "Device sample rate in Hz"),
		BitDepth:    fs.Int("bits", 16, "Sample bit depth (8 or 16)"),
		Unsigned:    fs.Bool("unsigned", false, "Use unsigned samples"),
		Channels:    fs.Int("channels", 2, "Channel count (1 or 2)"),
		WAVPath:     fs.String("wav", "tonegen.wav", "Output file for the wav backend"),
		LogLevel:    fs.String("log-level", "info", "Log level: debug, info, warn, error"),
		LogFile:     fs.String("log-file", "tonegen.log", "Log file path"),
		MetricsAddr: fs.String("metrics-addr", "", "Serve Prometheus metrics on this address"),
		NoTUI:       fs.Bool("no-tui", false, "Disable TUI, use streaming logs instead"),
	}
}

// Resolve loads the config file if one was given, otherwise defaults,
// then applies overrides and validates the result
func (o *Overrides) Resolve() (*Config, error) {
	cfg := Default()
	if *o.ConfigPath != "" {
		loaded, err := Load(*o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	o.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies flags that were set on the command line into cfg
func (o *Overrides) Apply(cfg *Config) {
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Device.Backend = *o.Backend
		case "rate":
			cfg.Device.SampleRate = *o.SampleRate
		case "bits":
			cfg.Device.BitDepth = *o.BitDepth
		case "unsigned":
			signed := !*o.Unsigned
			cfg.Device.Signed = &signed
		case "channels":
			cfg.Device.Channels = *o.Channels
		case "wav":
			cfg.Device.WAVPath = *o.WAVPath
		case "log-level":
			cfg.Log.Level = *o.LogLevel
		case "log-file":
			cfg.Log.File = *o.LogFile
		case "metrics-addr":
			cfg.Metrics.Addr = *o.MetricsAddr
		case "no-tui":
			enabled := !*o.NoTUI
			cfg.UI.Enabled = &enabled
		}
	})
}
