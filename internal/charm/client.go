// ABOUTME: Charm KV client wrapper for fitness log storage.
// ABOUTME: Implements the storage KV port with optional cloud pulls after writes.
package charm

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fitlog/internal/storage"
)

const (
	// DefaultDBName is the Charm KV database holding the fitness log.
	DefaultDBName = "fitlog"
	// DefaultHost is the Charm server used when none is configured.
	DefaultHost = "charm.2389.dev"
)

// ErrLocked is returned by Open when another process holds the database.
var ErrLocked = errors.New("charm database is locked by another process (is `fitlog serve` or `fitlog mcp` running?)")

// store is the part of *kv.KV the client uses.
type store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	Close() error
}

// Client stores fitness log slots in Charm KV.
type Client struct {
	kv       store
	account  func() (string, error)
	autoSync bool
	mu       sync.RWMutex
}

var _ storage.KV = (*Client)(nil)

// Open opens the named Charm KV database against host and tries to pull
// remote changes once.
func Open(name, host string) (*Client, error) {
	if name == "" {
		name = DefaultDBName
	}
	if host == "" {
		host = DefaultHost
	}

	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaults(name)
	if err != nil {
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	// Offline is fine; the next write or sync catches up.
	_ = db.Sync()
	return newClient(db, db.Client().ID), nil
}

func newClient(db store, account func() (string, error)) *Client {
	return &Client{kv: db, account: account, autoSync: true}
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// Sync pulls changes made on other devices from Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Sync()
}

// SetAutoSync enables or disables the pull after every write. Writes are
// always pushed to the cloud.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the linked account.
func (c *Client) ID() (string, error) {
	id, err := c.account()
	if err != nil {
		return "", fmt.Errorf("charm account: %w", err)
	}
	return id, nil
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.kv.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value with the given key.
func (c *Client) Set(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(key), data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes a key.
func (c *Client) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Keys lists every key in the database.
func (c *Client) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, string(k))
	}
	return keys, nil
}

// syncIfEnabled pulls remote changes if autoSync is on. Callers hold the lock.
func (c *Client) syncIfEnabled() {
	if c.autoSync {
		_ = c.kv.Sync()
	}
}
