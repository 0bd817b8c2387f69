// cmd/scribe/main.go
package main

import (
	"fmt"
	"io"
	stlog "log"
	"os"

	"github.com/scribe-editor/scribe/internal/app"
	"github.com/scribe-editor/scribe/internal/config"
	"github.com/scribe-editor/scribe/internal/logger"
)

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}

	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		// The returned config still carries usable defaults; report the
		// file problem and keep going.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if cfg == nil {
		stlog.Fatalf("failed to load configuration")
	}

	var logOutput io.Writer = os.Stderr
	var logFile *os.File
	if path := cfg.Logger.LogFilePath; path != "" && path != "-" {
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", path, err)
		}
		defer logFile.Close()
		logOutput = logFile
	}
	logger.Init(cfg.Logger.Level(), logOutput)

	logger.Infof("Starting %s...", config.AppName)
	logger.Debugf("Log level: %s", cfg.Logger.Level().String())
	if filePath != "" {
		logger.Debugf("Opening file: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	scribeApp, err := app.NewApp(filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := scribeApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
