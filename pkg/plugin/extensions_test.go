package plugin

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

func TestParamsInfo(t *testing.T) {
	core := newTestCore(t, nil)
	require.NoError(t, core.Parameters().Add(
		param.BypassParameter(30, "Bypass").Build(),
		param.New(40, "Meter").Group("Meters").ReadOnly().Hidden().Build(),
	))
	b := newTestBridge(t, clap.HostInfo{}, core)

	assert.Equal(t, uint32(4), b.ParamsCount())

	gain, ok := b.ParamsInfo(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0), gain.ID)
	assert.Equal(t, "Gain", gain.Name)
	assert.Equal(t, clap.ParamRequiresProcess|clap.ParamIsAutomatable, gain.Flags)
	assert.Equal(t, 0.0, gain.MinValue)
	assert.Equal(t, 1.0, gain.MaxValue)
	assert.InDelta(t, 60.0/72.0, gain.DefaultValue, 1e-9)

	mode, ok := b.ParamsInfo(1)
	require.True(t, ok)
	assert.NotZero(t, mode.Flags&clap.ParamIsStepped)
	assert.Equal(t, 2.0, mode.MaxValue)

	bypass, ok := b.ParamsInfo(2)
	require.True(t, ok)
	assert.NotZero(t, bypass.Flags&clap.ParamIsBypass)

	meter, ok := b.ParamsInfo(3)
	require.True(t, ok)
	assert.Equal(t, "Meters", meter.Module)
	assert.NotZero(t, meter.Flags&clap.ParamIsReadonly)
	assert.NotZero(t, meter.Flags&clap.ParamIsHidden)
	assert.Zero(t, meter.Flags&clap.ParamIsAutomatable)

	_, ok = b.ParamsInfo(4)
	assert.False(t, ok)
}

func TestParamsText(t *testing.T) {
	b := newTestBridge(t, clap.HostInfo{}, newTestCore(t, nil))

	text, ok := b.ParamsValueToText(1, 2)
	require.True(t, ok)
	assert.Equal(t, "C", text)

	v, ok := b.ParamsTextToValue(1, "b")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	text, ok = b.ParamsValueToText(0, 1)
	require.True(t, ok)
	assert.Equal(t, "12.00 dB", text)

	v, ok = b.ParamsTextToValue(0, "-24 dB")
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-9)

	_, ok = b.ParamsTextToValue(0, "loud")
	assert.False(t, ok)
	_, ok = b.ParamsValueToText(7, 0)
	assert.False(t, ok)
}

func TestParamsFlush(t *testing.T) {
	core := newTestCore(t, nil)
	host := &testHost{}
	b := newTestBridge(t, host, core)
	b.StopProcessing()

	require.True(t, b.Editor().PerformEdit(1, 1))
	assert.Equal(t, 1, host.flushes)

	in := clap.NewEventList(0)
	in.Add(
		clap.NewParamValueEvent(0, 0, 0.75),
		clap.NewMIDIEvent(0, 0x90, 60, 100),
	)
	out := clap.NewEventList(0)
	b.ParamsFlush(in, out)

	v, _ := b.ParamsValue(0)
	assert.Equal(t, 0.75, v)
	assert.Empty(t, core.midi)

	require.Len(t, out.Events(), 1)
	ev, ok := out.Events()[0].(*clap.ParamValueEvent)
	require.True(t, ok)
	assert.Equal(t, uint32(1), ev.ParamID)
	assert.Equal(t, 2.0, ev.Value)

	b.NotifyParamsRescan(1)
	assert.Equal(t, 1, host.rescans)
}

func TestEditorRejectsUnknownParam(t *testing.T) {
	b := newTestBridge(t, clap.HostInfo{}, newTestCore(t, nil))
	ed := b.Editor()

	assert.False(t, ed.BeginEdit(5))
	assert.False(t, ed.PerformEdit(-1, 0))
	assert.False(t, ed.EndEdit(2))

	require.True(t, ed.PerformEdit(0, 0.3))
	v, ok := ed.ParamValue(0)
	require.True(t, ok)
	assert.Equal(t, 0.3, v)
}

func TestAudioPorts(t *testing.T) {
	core := newTestCore(t, bus.NewEffectSet())
	b := newTestBridge(t, clap.HostInfo{}, core)

	// Stereo with the most buses wins.
	require.Equal(t, uint32(2), b.AudioPortsConfigIndex())
	assert.Equal(t, uint32(2), b.AudioPortsCount(true))
	assert.Equal(t, uint32(1), b.AudioPortsCount(false))

	main, ok := b.AudioPortsInfo(0, true)
	require.True(t, ok)
	assert.Equal(t, clap.PortStereo, main.PortType)
	assert.NotZero(t, main.Flags&clap.AudioPortIsMain)
	assert.NotZero(t, main.Flags&clap.AudioPortSupports64Bits)
	assert.Equal(t, clap.InvalidID, main.InPlacePair)

	side, ok := b.AudioPortsInfo(1, true)
	require.True(t, ok)
	assert.Equal(t, "Sidechain In", side.Name)
	assert.Zero(t, side.Flags&clap.AudioPortIsMain)

	_, ok = b.AudioPortsInfo(1, false)
	assert.False(t, ok)

	assert.Equal(t, uint32(3), b.AudioPortsConfigCount())
	cfg, ok := b.AudioPortsGetConfig(2)
	require.True(t, ok)
	assert.Equal(t, "2.2-2", cfg.Name)
	assert.Equal(t, uint32(2), cfg.InputPortCount)
	assert.True(t, cfg.HasMainOutput)
	assert.Equal(t, clap.PortStereo, cfg.MainOutputPortType)

	mono, ok := b.AudioPortsGetConfig(0)
	require.True(t, ok)
	assert.Equal(t, "1-1", mono.Name)
	assert.Equal(t, clap.PortMono, mono.MainInputPortType)

	assert.False(t, b.AudioPortsSetConfig(0), "refused while active")
	b.Deactivate()
	assert.True(t, b.AudioPortsSetConfig(0))
	assert.False(t, b.AudioPortsSetConfig(9))
	assert.Equal(t, uint32(1), b.AudioPortsCount(true))
}

func TestInitUsesTrackChannels(t *testing.T) {
	core := newTestCore(t, bus.NewEffectSet())
	host := trackHost{channels: 1}
	b := newTestBridge(t, host, core)
	assert.Equal(t, uint32(0), b.AudioPortsConfigIndex())
}

type trackHost struct {
	clap.HostInfo
	channels int32
}

func (h trackHost) TrackInfo() (clap.TrackInfo, bool) {
	return clap.TrackInfo{Flags: clap.TrackInfoHasAudioChannel, AudioChannelCount: h.channels}, true
}

func TestNotePorts(t *testing.T) {
	b := newTestBridge(t, clap.HostInfo{}, newTestCore(t, bus.NewInstrumentSet()))

	assert.Equal(t, uint32(1), b.NotePortsCount(true))
	assert.Zero(t, b.NotePortsCount(false))

	info, ok := b.NotePortsInfo(0, true)
	require.True(t, ok)
	assert.Equal(t, "MIDI Input", info.Name)
	assert.Equal(t, clap.NoteDialectMIDI, info.PreferredDialect)

	_, ok = b.NotePortsInfo(0, false)
	assert.False(t, ok)
}

// customCore stores a string beside its parameters.
type customCore struct {
	*testCore
	text string
}

func (c *customCore) SaveState(w io.Writer) error {
	_, err := io.WriteString(w, c.text)
	return err
}

func (c *customCore) LoadState(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if bytes.HasPrefix(data, []byte("bad")) {
		return errors.New("rejected")
	}
	c.text = string(data)
	return nil
}

func TestStateRoundTrip(t *testing.T) {
	src := &customCore{testCore: newTestCore(t, nil), text: "scene 4"}
	b := newTestBridge(t, clap.HostInfo{}, src)

	in := clap.NewEventList(0)
	in.Add(clap.NewParamValueEvent(0, 0, 0.25), clap.NewParamValueEvent(0, 1, 2))
	b.Process(stereoBlock(16, in, nil))

	stream := clap.NewMemoryStream(nil)
	require.True(t, b.StateSave(stream))

	dst := &customCore{testCore: newTestCore(t, nil)}
	fresh := newTestBridge(t, clap.HostInfo{}, dst)
	stream.Rewind()
	require.True(t, fresh.StateLoad(stream))

	gain, _ := fresh.ParamsValue(0)
	mode, _ := fresh.ParamsValue(1)
	assert.Equal(t, 0.25, gain)
	assert.Equal(t, 2.0, mode)
	assert.Equal(t, "scene 4", dst.text)
	assert.Equal(t, []param.Source{param.SourceReset, param.SourcePreset}, dst.sources)
}

func TestStateLoadedBeforeActivateSurvives(t *testing.T) {
	src := &customCore{testCore: newTestCore(t, nil), text: "scene 9"}
	b := newTestBridge(t, clap.HostInfo{}, src)
	in := clap.NewEventList(0)
	in.Add(clap.NewParamValueEvent(0, 0, 0.4), clap.NewParamValueEvent(0, 1, 1))
	b.Process(stereoBlock(16, in, nil))

	stream := clap.NewMemoryStream(nil)
	require.True(t, b.StateSave(stream))

	cfg := DefaultConfig()
	cfg.LogLevel = "off"
	require.NoError(t, cfg.Validate())
	dst := &customCore{testCore: newTestCore(t, nil)}
	fresh, err := NewBridge(clap.HostInfo{}, testInfo, dst, cfg)
	require.NoError(t, err)
	t.Cleanup(fresh.Destroy)
	require.NoError(t, fresh.Init())

	stream.Rewind()
	require.True(t, fresh.StateLoad(stream))
	require.NoError(t, fresh.Activate(44100, 1, 256))

	gain, _ := fresh.ParamsValue(0)
	mode, _ := fresh.ParamsValue(1)
	assert.Equal(t, 0.4, gain)
	assert.Equal(t, 1.0, mode)
	assert.Equal(t, "scene 9", dst.text)
	assert.Equal(t, []param.Source{param.SourcePreset, param.SourceReset}, dst.sources)
}

func TestReactivateKeepsParamValues(t *testing.T) {
	core := newTestCore(t, nil)
	b := newTestBridge(t, clap.HostInfo{}, core)
	in := clap.NewEventList(0)
	in.Add(clap.NewParamValueEvent(0, 0, 0.7))
	b.Process(stereoBlock(16, in, nil))
	require.True(t, b.Editor().PerformEdit(1, 1))

	b.Deactivate()
	require.NoError(t, b.Activate(96000, 1, 512))
	require.True(t, b.StartProcessing())

	gain, _ := b.ParamsValue(0)
	mode, _ := b.ParamsValue(1)
	assert.Equal(t, 0.7, gain)
	assert.Equal(t, 2.0, mode)
	assert.Equal(t, []param.Source{param.SourceReset, param.SourceReset}, core.sources)

	var seen float64
	core.process = func(ctx *process.Context) { seen = ctx.Param(10) }
	b.Process(stereoBlock(16, nil, nil))
	assert.InDelta(t, 0.7, seen, 1e-9)
}

func TestStateLoadRejectsGarbage(t *testing.T) {
	core := newTestCore(t, nil)
	b := newTestBridge(t, clap.HostInfo{}, core)
	before, _ := b.ParamsValue(0)

	assert.False(t, b.StateLoad(clap.NewMemoryStream([]byte("not a state blob"))))
	after, _ := b.ParamsValue(0)
	assert.Equal(t, before, after)
	assert.Equal(t, []param.Source{param.SourceReset}, core.sources)
}

func TestStateLoadCustomError(t *testing.T) {
	src := &customCore{testCore: newTestCore(t, nil), text: "bad data"}
	b := newTestBridge(t, clap.HostInfo{}, src)
	stream := clap.NewMemoryStream(nil)
	require.True(t, b.StateSave(stream))

	stream.Rewind()
	assert.False(t, b.StateLoad(stream))
}
