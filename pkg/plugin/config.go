package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/debug"
	"github.com/justyntemme/clapgo/pkg/framework/queue"
)

// EnvLogLevel overrides Config.LogLevel when set.
const EnvLogLevel = "CLAPGO_LOG_LEVEL"

// EnvConfigPath names a configuration file for New.
const EnvConfigPath = "CLAPGO_CONFIG"

const maxQueueCapacity = 1 << 16

// QueueConfig sizes the cross-thread queues. SPSC capacities are rounded up
// to a power of two.
type QueueConfig struct {
	// UI to audio
	UIMIDI  int `toml:"ui_midi" json:"ui_midi" yaml:"ui_midi"`
	UISysEx int `toml:"ui_sysex" json:"ui_sysex" yaml:"ui_sysex"`

	// audio to UI
	FeedbackMIDI  int `toml:"feedback_midi" json:"feedback_midi" yaml:"feedback_midi"`
	FeedbackSysEx int `toml:"feedback_sysex" json:"feedback_sysex" yaml:"feedback_sysex"`

	// audio to host
	ParamChanges int `toml:"param_changes" json:"param_changes" yaml:"param_changes"`
	OutputMIDI   int `toml:"output_midi" json:"output_midi" yaml:"output_midi"`
	OutputSysEx  int `toml:"output_sysex" json:"output_sysex" yaml:"output_sysex"`
}

// Config holds bridge settings that are not part of the plugin core.
type Config struct {
	LogLevel string `toml:"log_level" json:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" json:"log_file" yaml:"log_file"`

	// Buses is a YAML file that replaces the core's I/O configurations.
	Buses string `toml:"buses" json:"buses" yaml:"buses"`
	// ChannelIO is a channel-I/O string such as "1-1 2-2" that replaces the
	// core's I/O configurations. Buses wins when both are set.
	ChannelIO string `toml:"channel_io" json:"channel_io" yaml:"channel_io"`

	// MaxChannels raises the channel capacity above what the I/O
	// configurations require.
	MaxChannels int `toml:"max_channels" json:"max_channels" yaml:"max_channels"`

	Queues QueueConfig `toml:"queues" json:"queues" yaml:"queues"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Queues: QueueConfig{
			UIMIDI:        256,
			UISysEx:       16,
			FeedbackMIDI:  256,
			FeedbackSysEx: 16,
			ParamChanges:  512,
			OutputMIDI:    1024,
			OutputSysEx:   16,
		},
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the settings and rounds queue capacities up to powers of
// two.
func (c *Config) Validate() error {
	var errs []error
	if _, err := debug.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.MaxChannels < 0 {
		errs = append(errs, fmt.Errorf("max_channels must not be negative: %d", c.MaxChannels))
	}
	if c.Buses == "" && c.ChannelIO != "" {
		if _, err := bus.ParseChannelIO(c.ChannelIO); err != nil {
			errs = append(errs, err)
		}
	}

	q := &c.Queues
	for _, f := range []struct {
		name string
		v    *int
		pow2 bool
	}{
		{"ui_midi", &q.UIMIDI, true},
		{"ui_sysex", &q.UISysEx, true},
		{"feedback_midi", &q.FeedbackMIDI, true},
		{"feedback_sysex", &q.FeedbackSysEx, true},
		{"param_changes", &q.ParamChanges, true},
		{"output_midi", &q.OutputMIDI, false},
		{"output_sysex", &q.OutputSysEx, true},
	} {
		if *f.v < 1 || *f.v > maxQueueCapacity {
			errs = append(errs, fmt.Errorf("queues.%s must be in [1, %d]: %d", f.name, maxQueueCapacity, *f.v))
			continue
		}
		if f.pow2 {
			*f.v = int(queue.NextPowerOf2(uint32(*f.v)))
		}
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, Info when invalid.
func (c *Config) Level() debug.LogLevel {
	level, _ := debug.ParseLevel(c.LogLevel)
	return level
}

// BusSet returns the configured replacement I/O configurations, or nil
// when the core's own should be used.
func (c *Config) BusSet() (*bus.Set, error) {
	switch {
	case c.Buses != "":
		return bus.LoadSetFile(c.Buses)
	case c.ChannelIO != "":
		return bus.ParseChannelIO(c.ChannelIO)
	}
	return nil, nil
}

// LoadConfig reads a TOML, JSON or YAML file chosen by extension, applies
// environment overrides and validates the result. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	}
	return cfg, nil
}

// ConfigWatcher reloads a configuration file when it changes on disk.
// Only settings that can change without reallocating the bridge, such as
// the log level, are meant to be applied from OnChange.
type ConfigWatcher struct {
	path     string
	mu       sync.RWMutex
	config   *Config
	watcher  *fsnotify.Watcher
	onChange []func(*Config)
	ctx      context.Context
	cancel   context.CancelFunc
	errChan  chan error
	debounce time.Duration
}

// WatchConfig loads path and starts watching its directory.
func WatchConfig(path string) (*ConfigWatcher, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &ConfigWatcher{
		path:     path,
		config:   cfg,
		watcher:  watcher,
		ctx:      ctx,
		cancel:   cancel,
		errChan:  make(chan error, 1),
		debounce: 100 * time.Millisecond,
	}
	go w.watchLoop()
	return w, nil
}

// Config returns the most recently loaded configuration.
func (w *ConfigWatcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// OnChange registers a callback run after each successful reload. It must
// be called before the file changes.
func (w *ConfigWatcher) OnChange(cb func(*Config)) {
	w.mu.Lock()
	w.onChange = append(w.onChange, cb)
	w.mu.Unlock()
}

// Errors reports reload failures. Errors are dropped when nobody reads.
func (w *ConfigWatcher) Errors() <-chan error {
	return w.errChan
}

// Close stops watching.
func (w *ConfigWatcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

func (w *ConfigWatcher) watchLoop() {
	var debounceTimer *time.Timer

	for {
		select {
		case <-w.ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.report(fmt.Errorf("reload config: %w", err))
		return
	}

	w.mu.Lock()
	w.config = cfg
	callbacks := slices.Clone(w.onChange)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (w *ConfigWatcher) report(err error) {
	select {
	case w.errChan <- err:
	default:
	}
}
