// Package clipboard connects yank and paste to the system clipboard.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/tide-rebase/internal/logger"
)

// ErrUnsupported is returned when no system clipboard is available.
var ErrUnsupported = errors.New("system clipboard unavailable")

// Clipboard reads and writes text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System uses the operating system clipboard.
type System struct{}

func (System) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard, used when the system one is unavailable.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Default returns the system clipboard, or an in-memory one when the platform has no
// clipboard tool.
func Default() Clipboard {
	if clipboard.Unsupported {
		logger.Warnf("System clipboard unavailable, yanked text stays inside the editor")
		return &Memory{}
	}
	return System{}
}
