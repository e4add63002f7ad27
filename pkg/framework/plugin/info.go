package plugin

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyID is returned by ValidateUID for a plugin without an ID.
var ErrEmptyID = errors.New("plugin: empty plugin ID")

// namespace scopes plugin UIDs so they cannot collide with other SHA-1 UUIDs
// derived from the same reverse-DNS string.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/justyntemme/clapgo"))

// Info contains plugin metadata
type Info struct {
	ID          string   // Unique plugin identifier (e.g., "com.example.myplugin")
	Name        string   // Display name
	Version     string   // Semantic version (e.g., "1.0.0")
	Vendor      string   // Company/developer name
	URL         string   // Product page
	Description string   // One line summary
	Category    string   // Plugin category (e.g., "Fx", "Instrument")
	Features    []string // Host feature tags such as "audio-effect" or "stereo"
}

// UID derives a stable 16-byte identifier from the string ID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(namespace, []byte(i.ID))
}

// UIDString returns the UID in canonical UUID form.
func (i Info) UIDString() string {
	return uuid.UUID(i.UID()).String()
}

// ValidateUID checks that a UID can be derived.
func (i Info) ValidateUID() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyID
	}
	return nil
}

// IsInstrument reports whether the plugin generates sound from notes.
func (i Info) IsInstrument() bool {
	if strings.Contains(strings.ToLower(i.Category), "instrument") {
		return true
	}
	for _, f := range i.Features {
		if f == "instrument" {
			return true
		}
	}
	return false
}
