package plugin

import (
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/framework/state"
)

// Base provides core functionality for all plugins
type Base struct {
	Info   Info
	params *param.Registry
	state  *state.Manager
}

// NewBase creates a new plugin base
func NewBase(info Info) *Base {
	b := &Base{
		Info:   info,
		params: param.NewRegistry(),
	}

	// Initialize state manager with parameter registry
	b.state = state.NewManager(b.params)

	return b
}

// GetInfo returns the plugin metadata.
func (b *Base) GetInfo() Info {
	return b.Info
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// State returns the state manager bound to the registry.
func (b *Base) State() *state.Manager {
	return b.state
}
