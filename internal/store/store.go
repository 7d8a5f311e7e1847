// Package store provides the key-value string stores the address book persists into.
package store

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been written
var ErrNotFound = errors.New("key not found")

// Store is a key-value string store
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}

// Driver names accepted by Open
const (
	DriverBolt    = "bolt"
	DriverLevelDB = "leveldb"
	DriverRedis   = "redis"
	DriverMemory  = "memory"
)

// Options selects and configures a backend
type Options struct {
	Driver    string
	Path      string // bolt file or leveldb directory
	RedisAddr string
	// Password enables at-rest encryption when non-empty
	Password []byte
}

// Open creates the configured store
func Open(opts Options) (Store, error) {
	var (
		s   Store
		err error
	)

	switch opts.Driver {
	case DriverBolt, "":
		s, err = OpenBolt(opts.Path)
	case DriverLevelDB:
		s, err = OpenLevelDB(opts.Path)
	case DriverRedis:
		s, err = OpenRedis(opts.RedisAddr)
	case DriverMemory:
		s = NewMemory()
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if len(opts.Password) > 0 {
		return NewEncrypted(s, opts.Password), nil
	}
	return s, nil
}

// Memory is an in-process store, used by tests and dry runs
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns how many Set calls succeeded
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *Memory) Close() error {
	return nil
}
