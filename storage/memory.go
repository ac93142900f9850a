// Package storage provides session-scoped key/value adapters for the
// widget runtime.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-auth-widget/internal/utils"
	"github.com/jrsteele09/go-auth-widget/session"
)

var _ session.Storage = (*Memory)(nil)

// Memory is an in-memory implementation of session.Storage. Values live
// for the lifetime of the process, matching the browser-session scope
// the widget persists into.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates a new in-memory session store
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

// Get retrieves the value under key; nil when absent.
func (m *Memory) Get(_ context.Context, key string) (*string, error) {
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return utils.Ptr(value), nil
}

// Set stores value under key, replacing any previous value.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (m *Memory) Remove(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
