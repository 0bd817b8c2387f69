// Package clipboard abstracts the clipboard behind a small interface so
// the edit engine takes it as an injected resource. Tests substitute the
// in-memory backend; the real editor wires the system backend when the
// config asks for it.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/scribe-editor/scribe/internal/logger"
)

// Clipboard reads and writes one text register.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Internal is an in-process register.
type Internal struct {
	mu   sync.Mutex
	text string
}

var _ Clipboard = (*Internal)(nil)

// NewInternal creates an empty in-memory clipboard.
func NewInternal() *Internal {
	return &Internal{}
}

func (c *Internal) Get() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *Internal) Set(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// System bridges to the OS clipboard, falling back to an internal
// register when the platform has no clipboard utility available.
type System struct {
	fallback Internal
}

var _ Clipboard = (*System)(nil)

// NewSystem creates a system clipboard.
func NewSystem() *System {
	return &System{}
}

func (c *System) Get() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		logger.Debugf("clipboard: system read failed (%v), using fallback", err)
		return c.fallback.Get()
	}
	return text, nil
}

func (c *System) Set(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		logger.Debugf("clipboard: system write failed (%v), using fallback", err)
		return c.fallback.Set(text)
	}
	// Mirror into the fallback so a later failed read still sees it.
	return c.fallback.Set(text)
}

// New picks the backend per configuration.
func New(system bool) Clipboard {
	if system && !clipboard.Unsupported {
		return NewSystem()
	}
	return NewInternal()
}
