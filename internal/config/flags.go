package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags. Pointers distinguish
// unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	LogLevel        *string
	LogFilePath     *string
	TabWidth        *int
	ScrollOff       *int
	Wrap            *bool
	SystemClipboard *bool
	CaseSensitive   *bool
}

// DefineFlags registers the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - overrides config file")
	f.TabWidth = flag.Int("tabwidth", 0, "Number of spaces per tab - overrides config file")
	f.ScrollOff = flag.Int("scrolloff", -1, "Lines of context above/below cursor - overrides config file")
	f.Wrap = flag.Bool("wrap", true, "Enable soft line wrapping - overrides config file")
	f.SystemClipboard = flag.Bool("system-clipboard", true, "Use the system clipboard - overrides config file")
	f.CaseSensitive = flag.Bool("case-sensitive", false, "Case-sensitive search by default - overrides config file")
}

// ParseFlags parses the defined flags and returns the remaining non-flag
// arguments (the file path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates cfg with flag values that were explicitly set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "tabwidth":
			if f.TabWidth != nil && *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if f.ScrollOff != nil && *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "wrap":
			if f.Wrap != nil {
				cfg.Editor.Wrap = *f.Wrap
			}
		case "system-clipboard":
			if f.SystemClipboard != nil {
				cfg.Editor.SystemClipboard = *f.SystemClipboard
			}
		case "case-sensitive":
			if f.CaseSensitive != nil {
				cfg.Editor.CaseSensitiveSearch = *f.CaseSensitive
			}
		}
	})
}
