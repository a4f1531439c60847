package config

import "flag"

// Flags holds the global command-line overrides.
type Flags struct {
	Config   string
	Debug    bool
	Palette  string
	Builtin  bool
	MaxWidth int // -1 when not given
	LogFile  string
}

// RegisterFlags defines the global flags on fs. The returned Flags is filled
// in when fs is parsed.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Palette, "palette", "", "Path to palette CSV")
	fs.BoolVar(&f.Builtin, "builtin", false, "Use the built-in SVG color names")
	fs.IntVar(&f.MaxWidth, "max-width", -1, "Scale images wider than this (0 = never)")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file as well")
	return f
}

// apply applies CLI flag overrides to the config. A nil Flags changes nothing.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Palette != "" {
		cfg.Palette.Path = f.Palette
		cfg.Palette.Builtin = false
	}
	if f.Builtin {
		cfg.Palette.Builtin = true
	}
	if f.MaxWidth >= 0 {
		cfg.Image.MaxWidth = f.MaxWidth
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
