package plugin

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// ErrNoPlugin is returned by New before Register was called.
var ErrNoPlugin = errors.New("plugin: no plugin registered")

var (
	registryMu   sync.RWMutex
	globalPlugin Plugin
	globalConfig *Config

	// Live instances indexed by ID, for hosts that pass a handle rather
	// than a Go pointer.
	instances   = make(map[uintptr]*Bridge)
	instancesMu sync.RWMutex
	nextID      uintptr = 1
)

// Register sets the global plugin instance
func Register(p Plugin) {
	registryMu.Lock()
	globalPlugin = p
	registryMu.Unlock()
}

// Registered returns the plugin passed to Register, or nil.
func Registered() Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return globalPlugin
}

// SetConfig sets the configuration used by New. Without it New reads the
// file named by CLAPGO_CONFIG, or uses the defaults.
func SetConfig(cfg *Config) {
	registryMu.Lock()
	globalConfig = cfg
	registryMu.Unlock()
}

func currentConfig() (*Config, error) {
	registryMu.RLock()
	cfg := globalConfig
	registryMu.RUnlock()
	if cfg != nil {
		return cfg, nil
	}
	if path := os.Getenv(EnvConfigPath); path != "" {
		return LoadConfig(path)
	}
	cfg = DefaultConfig()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New creates a bridge for the registered plugin and records it in the
// instance table.
func New(host clap.Host) (*Bridge, error) {
	p := Registered()
	if p == nil {
		return nil, ErrNoPlugin
	}

	cfg, err := currentConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	proc := p.CreateProcessor()
	if proc == nil {
		return nil, fmt.Errorf("plugin %s: CreateProcessor returned nil", p.GetInfo().ID)
	}

	b, err := NewBridge(host, p.GetInfo(), proc, cfg)
	if err != nil {
		return nil, err
	}

	instancesMu.Lock()
	b.id = nextID
	nextID++
	instances[b.id] = b
	instancesMu.Unlock()
	return b, nil
}

// Lookup returns a live instance by ID.
func Lookup(id uintptr) *Bridge {
	if id == 0 {
		return nil
	}
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	return instances[id]
}

// Release removes an instance from the table and closes it.
func Release(id uintptr) {
	instancesMu.Lock()
	b := instances[id]
	delete(instances, id)
	instancesMu.Unlock()

	if b != nil {
		b.Destroy()
	}
}
