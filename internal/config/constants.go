package config

import "time"

// Base application details
const AppName = "scribe"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "scribe.log"

// HistoryDirName is the directory under the user's home where per-file
// undo logs are kept.
const HistoryDirName = ".scribe"

// UI layout
const StatusBarHeight = 1

// Status bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true

// DefaultHistoryLimit bounds the number of undo entries kept per document.
const DefaultHistoryLimit = 1000

// DefaultFindHistoryLimit bounds the persisted search-pattern history.
const DefaultFindHistoryLimit = 50
