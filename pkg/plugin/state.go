package plugin

import (
	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/param"
)

// StateSave writes the parameter values and any custom state to s.
func (b *Bridge) StateSave(s clap.OStream) bool {
	data, err := b.state.Bytes()
	if err != nil {
		b.log.Error("state save: %v", err)
		return false
	}
	if err := clap.WriteAll(s, data); err != nil {
		b.log.Error("state save: %v", err)
		return false
	}
	b.log.Debug("state saved, %d bytes", len(data))
	return true
}

// StateLoad restores a blob written by StateSave. On failure the current
// parameter values are kept.
func (b *Bridge) StateLoad(s clap.IStream) bool {
	data, err := clap.ReadAll(s)
	if err != nil {
		b.log.Error("state load: %v", err)
		return false
	}
	if err := b.state.LoadBytes(data); err != nil {
		b.log.Error("state load: %v", err)
		return false
	}
	if b.paramResetter != nil {
		b.paramResetter.OnParamReset(param.SourcePreset)
	}
	b.log.Debug("state loaded, %d bytes", len(data))
	return true
}
