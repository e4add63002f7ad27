package plugin

import (
	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/param"
)

// ParamsCount returns the number of parameters exposed to the host.
func (b *Bridge) ParamsCount() uint32 {
	return uint32(b.params.Count())
}

// ParamsInfo describes the parameter at index. Its host id is the index.
func (b *Bridge) ParamsInfo(index uint32) (clap.ParamInfo, bool) {
	p := b.param(index)
	if p == nil {
		return clap.ParamInfo{}, false
	}

	flags := clap.ParamRequiresProcess
	if p.Flags&param.CanAutomate != 0 {
		flags |= clap.ParamIsAutomatable
	}
	if !p.IsContinuous() {
		flags |= clap.ParamIsStepped
	}
	if p.Flags&param.IsHidden != 0 {
		flags |= clap.ParamIsHidden
	}
	if p.Flags&param.IsReadOnly != 0 {
		flags |= clap.ParamIsReadonly
	}
	if p.Flags&param.IsBypass != 0 {
		flags |= clap.ParamIsBypass
	}
	if p.Flags&param.IsWrapAround != 0 {
		flags |= clap.ParamIsPeriodic
	}

	lo, hi, def := p.HostRange()
	return clap.ParamInfo{
		ID:           index,
		Flags:        flags,
		Name:         truncate(p.Name, clap.NameSize),
		Module:       truncate(p.Group, clap.PathSize),
		MinValue:     lo,
		MaxValue:     hi,
		DefaultValue: def,
	}, true
}

// ParamsValue returns the current value of parameter id in the host's
// representation.
func (b *Bridge) ParamsValue(id uint32) (float64, bool) {
	p := b.param(id)
	if p == nil {
		return 0, false
	}
	return p.HostValue(), true
}

// ParamsValueToText formats a host value. It fails when the text does not
// fit the host's buffer.
func (b *Bridge) ParamsValueToText(id uint32, value float64) (string, bool) {
	p := b.param(id)
	if p == nil {
		return "", false
	}
	text := p.DisplayText(p.FromHost(value))
	if len(text) >= clap.NameSize {
		return "", false
	}
	return text, true
}

// ParamsTextToValue parses display text into a host value.
func (b *Bridge) ParamsTextToValue(id uint32, text string) (float64, bool) {
	p := b.param(id)
	if p == nil {
		return 0, false
	}
	normalized, err := p.ParseValue(text)
	if err != nil {
		b.log.Debug("parse %q for %s: %v", text, p.Name, err)
		return 0, false
	}
	return p.ToHost(normalized), true
}

// ParamsFlush applies host parameter events and emits queued UI edits while
// the bridge is not processing. Non-parameter events are ignored.
func (b *Bridge) ParamsFlush(in clap.InputEvents, out clap.OutputEvents) {
	if in != nil {
		n := in.Size()
		for i := uint32(0); i < n; i++ {
			ev := in.Get(i)
			if ev == nil {
				continue
			}
			h := ev.Header()
			if h.SpaceID != clap.CoreEventSpaceID || h.Type != clap.EventParamValue {
				continue
			}
			if v, ok := ev.(*clap.ParamValueEvent); ok {
				b.applyHostParam(v.ParamID, v.Value, int32(h.Time))
			}
		}
	}
	b.drainParamChanges(out)
}

// NotifyParamsRescan tells the host to re-read the given aspects of the
// parameter list.
func (b *Bridge) NotifyParamsRescan(flags uint32) {
	if b.paramsHost != nil {
		b.paramsHost.RescanParams(flags)
	}
}

func (b *Bridge) param(id uint32) *param.Parameter {
	if id >= uint32(b.params.Count()) {
		return nil
	}
	return b.params.GetByIndex(int32(id))
}

func truncate(s string, size int) string {
	if len(s) < size {
		return s
	}
	return s[:size-1]
}
