package plugin

import (
	"errors"
	"testing"

	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

func TestBaseProcessorDefaults(t *testing.T) {
	p := NewBaseProcessor(Info{ID: "com.example.fx"}, nil)

	if p.GetBuses().Count() != 1 {
		t.Fatalf("expected one default configuration, got %d", p.GetBuses().Count())
	}
	if got := p.GetBuses().Get(0).Name(); got != "2-2" {
		t.Errorf("default configuration = %q, want 2-2", got)
	}
	if p.GetParameters() != p.Parameters() {
		t.Error("GetParameters and Parameters should share a registry")
	}
	if p.State() == nil {
		t.Error("expected a state manager")
	}
}

func TestBaseProcessorCallbacks(t *testing.T) {
	p := NewBaseProcessor(Info{ID: "com.example.fx"}, bus.NewEffectSet())

	var initRate float64
	var resets int
	p.OnInitialize(func(sampleRate float64, maxBlockSize int32) error {
		initRate = sampleRate
		return nil
	})
	p.OnReset(func() { resets++ })
	p.OnSetActive(func(active bool) error {
		if !active {
			return errors.New("refused")
		}
		return nil
	})

	if err := p.Initialize(44100, 256); err != nil {
		t.Fatal(err)
	}
	if initRate != 44100 || p.SampleRate() != 44100 || p.MaxBlockSize() != 256 {
		t.Errorf("initialize not recorded: %f %d", p.SampleRate(), p.MaxBlockSize())
	}

	p.Reset()
	if resets != 1 {
		t.Errorf("expected one reset, got %d", resets)
	}
	if err := p.SetActive(false); err == nil {
		t.Error("expected callback error")
	}

	p.SetLatencySamples(64)
	p.SetTailSamples(4800)
	if p.GetLatencySamples() != 64 || p.GetTailSamples() != 4800 {
		t.Error("latency or tail not reported")
	}
}

func TestSimpleProcessor(t *testing.T) {
	var called bool
	p := NewSimpleProcessor(Info{ID: "com.example.simple"}, nil, func(ctx *process.Context) {
		called = true
		ctx.PassThrough()
	})

	ctx := process.NewContext(4, param.NewRegistry())
	in := [][]float32{{1, 2}}
	out := [][]float32{{0, 0}}
	ctx.Attach32(in, out, 2)
	p.ProcessAudio(ctx)

	if !called || out[0][1] != 2 {
		t.Error("process function not applied")
	}
}
