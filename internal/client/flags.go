package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FlagStore persists the advisory UI flags (the localStorage analog).
// Values stored here control what the UI shows, never what the server
// allows.
type FlagStore interface {
	Get(key string) string
	Set(key, value string)
	Delete(key string)
}

// MemoryFlags is the default, non-persistent store.
type MemoryFlags struct {
	mu    sync.RWMutex
	flags map[string]string
}

var _ FlagStore = (*MemoryFlags)(nil)

func NewMemoryFlags() *MemoryFlags {
	return &MemoryFlags{flags: make(map[string]string)}
}

func (m *MemoryFlags) Get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[key]
}

func (m *MemoryFlags) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = value
}

func (m *MemoryFlags) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flags, key)
}

// FileFlags persists flags as a small JSON file so they survive restarts,
// the way browser local storage survives page loads.
type FileFlags struct {
	mu    sync.Mutex
	path  string
	flags map[string]string
}

var _ FlagStore = (*FileFlags)(nil)

// NewFileFlags loads the store at path, starting empty if the file does not
// exist yet.
func NewFileFlags(path string) (*FileFlags, error) {
	f := &FileFlags{path: path, flags: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("read flag store %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &f.flags); err != nil {
		return nil, fmt.Errorf("decode flag store %q: %w", path, err)
	}
	return f, nil
}

func (f *FileFlags) Get(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flags[key]
}

func (f *FileFlags) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags[key] = value
	f.persist()
}

func (f *FileFlags) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.flags, key)
	f.persist()
}

// persist writes best-effort; flags are advisory, so a failed write only
// means the UI forgets them on restart.
func (f *FileFlags) persist() {
	data, err := json.Marshal(f.flags)
	if err != nil {
		return
	}
	_ = os.WriteFile(f.path, data, 0o600)
}
