// Package state serializes parameter values plus an optional custom section
// into the opaque blob hosts store with a project.
package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/clapgo/pkg/framework/param"
)

const (
	magic = "CLAPGO"

	// Version is the blob layout written by Save.
	Version uint32 = 2

	// maxCustomSize bounds the custom section accepted by Load.
	maxCustomSize = 64 << 20
)

var (
	ErrInvalidFormat = errors.New("state: invalid state format")
	ErrNewerVersion  = errors.New("state: state version is newer than supported")
)

// Manager handles plugin state saving and loading
type Manager struct {
	registry   *param.Registry
	saveCustom CustomSaveFunc
	loadCustom CustomLoadFunc
}

// CustomSaveFunc writes plugin data beyond parameter values.
type CustomSaveFunc func(w io.Writer) error

// CustomLoadFunc reads what the matching CustomSaveFunc wrote.
type CustomLoadFunc func(r io.Reader) error

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{registry: registry}
}

// SetCustomState registers functions for the custom section.
func (m *Manager) SetCustomState(save CustomSaveFunc, load CustomLoadFunc) {
	m.saveCustom = save
	m.loadCustom = load
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(magic)
	write := func(v any) {
		// bytes.Buffer writes do not fail
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}

	write(Version)
	params := m.registry.All()
	write(int32(len(params)))
	for _, p := range params {
		write(p.ID)
		write(p.GetValue())
	}

	if m.saveCustom != nil {
		var custom bytes.Buffer
		if err := m.saveCustom(&custom); err != nil {
			return fmt.Errorf("save custom state: %w", err)
		}
		write(uint32(1))
		write(uint32(custom.Len()))
		buf.Write(custom.Bytes())
	} else {
		write(uint32(0))
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Bytes returns the serialized state.
func (m *Manager) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type entry struct {
	id    uint32
	value float64
}

// Load reads the plugin state from a reader. Nothing is applied unless the
// whole parameter section parses.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if string(header) != magic {
		return ErrInvalidFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("%w: version: %v", ErrInvalidFormat, err)
	}
	if version > Version {
		return fmt.Errorf("%w: %d > %d", ErrNewerVersion, version, Version)
	}

	var paramCount int32
	if err := binary.Read(r, binary.LittleEndian, &paramCount); err != nil {
		return fmt.Errorf("%w: count: %v", ErrInvalidFormat, err)
	}
	if paramCount < 0 {
		return fmt.Errorf("%w: negative parameter count", ErrInvalidFormat)
	}

	entries := make([]entry, 0, min(int(paramCount), 4096))
	for i := int32(0); i < paramCount; i++ {
		var e entry
		if err := binary.Read(r, binary.LittleEndian, &e.id); err != nil {
			return fmt.Errorf("%w: parameter %d: %v", ErrInvalidFormat, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &e.value); err != nil {
			return fmt.Errorf("%w: parameter %d: %v", ErrInvalidFormat, i, err)
		}
		entries = append(entries, e)
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return fmt.Errorf("%w: custom flag: %v", ErrInvalidFormat, err)
	}

	var custom []byte
	if hasCustom != 0 {
		var size uint32
		if version >= 2 {
			if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
				return fmt.Errorf("%w: custom size: %v", ErrInvalidFormat, err)
			}
			if size > maxCustomSize {
				return fmt.Errorf("%w: custom section of %d bytes", ErrInvalidFormat, size)
			}
			custom = make([]byte, size)
			if _, err := io.ReadFull(r, custom); err != nil {
				return fmt.Errorf("%w: custom section: %v", ErrInvalidFormat, err)
			}
		} else {
			// Version 1 wrote the custom section unframed.
			rest, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			custom = rest
		}
	}

	// Unknown parameters are ignored for forward compatibility
	for _, e := range entries {
		if p := m.registry.Get(e.id); p != nil {
			p.SetValue(e.value)
		}
	}

	if custom != nil && m.loadCustom != nil {
		if err := m.loadCustom(bytes.NewReader(custom)); err != nil {
			return fmt.Errorf("load custom state: %w", err)
		}
	}
	return nil
}

// LoadBytes restores state from a blob.
func (m *Manager) LoadBytes(data []byte) error {
	return m.Load(bytes.NewReader(data))
}
