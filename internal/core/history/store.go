package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scribe-editor/scribe/internal/types"
)

// Log is the serialized form of a document's history plus the session
// state that rides along with it: cursor, scroll position, the save
// watermark and the search-pattern history.
type Log struct {
	Edits       []Edit           `json:"edits"`
	Current     int              `json:"current"`
	SavedAt     int              `json:"saved_at"`
	Cursor      types.Position   `json:"cursor"`
	ScrollTop   int              `json:"scroll_top"`
	FindHistory []string         `json:"find_history,omitempty"`
	SavedTime   time.Time        `json:"saved_time"`
}

// Store persists history logs.
type Store interface {
	Save(log *Log) error
	Load() (*Log, error)
}

// FileStore keeps one JSON log per document under
// ~/.scribe/files/<mangled absolute path>.scribe.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore builds the store for a document path. Documents without a
// path get no persistence; callers should skip the store then.
func NewFileStore(docPath string) (*FileStore, error) {
	if docPath == "" {
		return nil, fmt.Errorf("no document path for history store")
	}
	abs, err := filepath.Abs(docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document path: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate home directory: %w", err)
	}
	// Flatten the absolute path into a single file name.
	mangled := strings.ReplaceAll(strings.TrimPrefix(abs, string(filepath.Separator)), string(filepath.Separator), "%")
	return &FileStore{
		path: filepath.Join(home, ".scribe", "files", mangled+".scribe"),
	}, nil
}

// NewFileStoreAt builds a store writing to an explicit path. Tests use it
// to avoid touching the real home directory.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the log file location.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the log, creating parent directories as needed.
func (s *FileStore) Save(log *Log) error {
	log.SavedTime = time.Now()
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to encode history log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history log '%s': %w", s.path, err)
	}
	return nil
}

// Load reads the log. A missing file yields an empty log; a corrupt file
// yields an error so the caller can degrade to empty history with a
// warning instead of crashing.
func (s *FileStore) Load() (*Log, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Log{}, nil
		}
		return nil, fmt.Errorf("failed to read history log '%s': %w", s.path, err)
	}
	var log Log
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("corrupt history log '%s': %w", s.path, err)
	}
	return &log, nil
}
