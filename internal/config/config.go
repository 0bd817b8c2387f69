package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/scribe-editor/scribe/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth            int  `toml:"tab_width"`
	ScrollOff           int  `toml:"scroll_off"`
	Wrap                bool `toml:"wrap"`
	SystemClipboard     bool `toml:"system_clipboard"`
	CaseSensitiveSearch bool `toml:"case_sensitive_search"`
	StatusBarHeight     int  `toml:"status_bar_height"`
	HistoryLimit        int  `toml:"history_limit"`

	// ThemeFile points at a TOML theme; empty keeps the built-in theme.
	ThemeFile string `toml:"theme_file"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			TabWidth:            DefaultTabWidth,
			ScrollOff:           DefaultScrollOff,
			Wrap:                true,
			SystemClipboard:     SystemClipboard,
			CaseSensitiveSearch: false,
			StatusBarHeight:     StatusBarHeight,
			HistoryLimit:        DefaultHistoryLimit,
		},
	}
}

// loadFromFile reads a TOML config file. A missing file is not an error.
func loadFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("config file '%s': unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate resets out-of-range values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Editor.HistoryLimit <= 0 {
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig merges defaults, the config file and flag overrides. Called
// once from main, before the logger is initialized.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, AppName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
				if fileCfg.Editor.TabWidth > 0 {
					cfg.Editor.TabWidth = fileCfg.Editor.TabWidth
				}
				if fileCfg.Editor.ScrollOff >= 0 {
					cfg.Editor.ScrollOff = fileCfg.Editor.ScrollOff
				}
				if fileCfg.Editor.HistoryLimit > 0 {
					cfg.Editor.HistoryLimit = fileCfg.Editor.HistoryLimit
				}
				cfg.Editor.Wrap = fileCfg.Editor.Wrap
				cfg.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
				cfg.Editor.CaseSensitiveSearch = fileCfg.Editor.CaseSensitiveSearch
				if fileCfg.Editor.ThemeFile != "" {
					cfg.Editor.ThemeFile = fileCfg.Editor.ThemeFile
				}
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig
// wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
