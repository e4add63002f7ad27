package plugin

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/debug"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	fwplugin "github.com/justyntemme/clapgo/pkg/framework/plugin"
	"github.com/justyntemme/clapgo/pkg/framework/process"
	"github.com/justyntemme/clapgo/pkg/framework/queue"
	"github.com/justyntemme/clapgo/pkg/framework/state"
	"github.com/justyntemme/clapgo/pkg/midi"
)

var (
	// ErrNotActive is returned by calls that need an activated bridge.
	ErrNotActive = errors.New("plugin: not active")
	// ErrActive is returned by calls that are only valid while deactivated.
	ErrActive = errors.New("plugin: active")
)

// ParamChangeKind tags a queued parameter record.
type ParamChangeKind uint8

const (
	GestureBegin ParamChangeKind = iota
	GestureValue
	GestureEnd
)

// ParamChange is a parameter edit travelling from the UI to the host.
// Value is in the host's representation and only meaningful for
// GestureValue.
type ParamChange struct {
	Index int32
	Kind  ParamChangeKind
	Value float64
}

// Bridge connects one plugin core to a host. Process and ParamsFlush run on
// the audio thread; the Editor and the parameter text conversions run on
// the UI thread; everything else is main-thread lifecycle.
type Bridge struct {
	id   uintptr
	host clap.Host
	info fwplugin.Info
	proc Processor
	cfg  *Config
	log  *debug.Logger

	logCloser io.Closer

	params *param.Registry
	buses  *bus.Set
	state  *state.Manager

	configIndex int
	hostVersion int

	sampleRate float64
	maxFrames  uint32
	offline    bool
	active     atomic.Bool
	processing atomic.Bool

	time    process.TimeInfo
	ctx     *process.Context
	inputs  *process.ChannelSet
	outputs *process.ChannelSet
	sink    eventSink

	// UI to audio
	uiMIDI  *queue.SPSC[midi.Event]
	uiSysEx *queue.SPSC[midi.SysEx]
	// audio to UI
	feedbackMIDI  *queue.SPSC[midi.Event]
	feedbackSysEx *queue.SPSC[midi.SysEx]
	// audio to host
	paramChanges *queue.SPSC[ParamChange]
	outMIDI      *midi.Queue
	outSysEx     *queue.SPSC[midi.SysEx]

	// Audio thread scratch; the host copies events on push.
	sysexIn    midi.SysEx
	sysexSend  midi.SysEx
	sysexDrain midi.SysEx
	change     ParamChange
	noteOut    clap.NoteEvent
	midiOut    clap.MIDIEvent
	sysexEvent clap.MIDISysExEvent
	valueOut   clap.ParamValueEvent
	gestureOut clap.ParamGestureEvent

	tailSamples  atomic.Int64
	tailInfinite atomic.Bool
	tailChanged  bool

	counters counters

	// Optional core interfaces
	midiProc      MIDIProcessor
	sysexProc     SysExProcessor
	paramListener ParamChangeListener
	paramResetter ParamResetter
	resetter      Resetter
	tailReporter  TailReporter
	renderMode    RenderModeListener

	// Optional host extensions
	tailHost    clap.TailHost
	latencyHost clap.LatencyHost
	paramsHost  clap.ParamsHost

	editor *Editor
}

// stateOwner is implemented by cores built on framework/plugin.Base.
type stateOwner interface {
	State() *state.Manager
}

// NewBridge wires a processor to a host. Every queue and channel array is
// sized here; nothing on the audio path allocates afterwards.
func NewBridge(host clap.Host, info fwplugin.Info, proc Processor, cfg *Config) (*Bridge, error) {
	if proc == nil {
		return nil, errors.New("plugin: nil processor")
	}
	if err := info.ValidateUID(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	buses := proc.GetBuses()
	override, err := cfg.BusSet()
	if err != nil {
		return nil, fmt.Errorf("plugin %s: bus override: %w", info.ID, err)
	}
	if override != nil {
		buses = override
	}
	if buses == nil {
		return nil, fmt.Errorf("plugin %s: %w", info.ID, bus.ErrNoConfigurations)
	}
	if err := buses.Validate(); err != nil {
		return nil, fmt.Errorf("plugin %s: %w", info.ID, err)
	}

	params := proc.GetParameters()
	if params == nil {
		params = param.NewRegistry()
	}

	b := &Bridge{
		host:   host,
		info:   info,
		proc:   proc,
		cfg:    cfg,
		params: params,
		buses:  buses,
		time:   process.DefaultTimeInfo(),
	}

	if err := b.openLog(); err != nil {
		return nil, err
	}

	capacity := max(buses.RequiredChannels(), cfg.MaxChannels)
	b.inputs = process.NewChannelSet(capacity)
	b.outputs = process.NewChannelSet(capacity)

	b.sink.b = b
	b.ctx = process.NewContext(0, params)
	b.ctx.SetTime(&b.time)
	b.ctx.SetSink(&b.sink)
	b.ctx.Buses = buses.Get(0)

	q := cfg.Queues
	b.uiMIDI = queue.NewSPSC[midi.Event](q.UIMIDI)
	b.uiSysEx = queue.NewSPSC[midi.SysEx](q.UISysEx)
	b.feedbackMIDI = queue.NewSPSC[midi.Event](q.FeedbackMIDI)
	b.feedbackSysEx = queue.NewSPSC[midi.SysEx](q.FeedbackSysEx)
	b.paramChanges = queue.NewSPSC[ParamChange](q.ParamChanges)
	b.outMIDI = midi.NewQueue(q.OutputMIDI)
	b.outSysEx = queue.NewSPSC[midi.SysEx](q.OutputSysEx)

	if so, ok := proc.(stateOwner); ok && so.State() != nil {
		b.state = so.State()
	} else {
		b.state = state.NewManager(params)
	}
	if sp, ok := proc.(StateProcessor); ok {
		b.state.SetCustomState(sp.SaveState, sp.LoadState)
	}

	b.midiProc, _ = proc.(MIDIProcessor)
	b.sysexProc, _ = proc.(SysExProcessor)
	b.paramListener, _ = proc.(ParamChangeListener)
	b.paramResetter, _ = proc.(ParamResetter)
	b.resetter, _ = proc.(Resetter)
	b.tailReporter, _ = proc.(TailReporter)
	b.renderMode, _ = proc.(RenderModeListener)

	if host != nil {
		b.tailHost, _ = host.(clap.TailHost)
		b.latencyHost, _ = host.(clap.LatencyHost)
		b.paramsHost, _ = host.(clap.ParamsHost)
		b.hostVersion = ParseHostVersion(host.Info().Version)
	}

	b.editor = &Editor{b: b}

	b.log.Debug("created %s (%s), %d configurations, %d channels", info.Name, info.UIDString(), buses.Count(), capacity)
	return b, nil
}

func (b *Bridge) openLog() error {
	name := b.info.Name
	if name == "" {
		name = b.info.ID
	}
	if b.cfg.LogFile != "" {
		l, closer, err := debug.NewFileLogger(b.cfg.LogFile, name, debug.DefaultFlags)
		if err != nil {
			return fmt.Errorf("plugin %s: %w", b.info.ID, err)
		}
		b.log, b.logCloser = l, closer
	} else {
		b.log = debug.Default().With(name)
	}
	b.log.SetLevel(b.cfg.Level())
	return nil
}

// ParseHostVersion packs "major.minor.patch" as major<<16 | minor<<8 |
// patch. Missing components count as 0; an unparsable string yields 0.
func ParseHostVersion(v string) int {
	var major, minor, patch int
	n, _ := fmt.Sscanf(v, "%d.%d.%d", &major, &minor, &patch)
	if n == 0 {
		return 0
	}
	return major<<16 + minor<<8 + patch
}

// ID returns the instance table key assigned by New, 0 for bridges made
// with NewBridge.
func (b *Bridge) ID() uintptr { return b.id }

// Info returns the plugin metadata.
func (b *Bridge) Info() fwplugin.Info { return b.info }

// HostVersion returns the packed host version.
func (b *Bridge) HostVersion() int { return b.hostVersion }

// Logger returns the bridge's logger.
func (b *Bridge) Logger() *debug.Logger { return b.log }

// Editor returns the UI thread handle.
func (b *Bridge) Editor() *Editor { return b.editor }

// IsActive reports whether Activate succeeded and Deactivate was not called.
func (b *Bridge) IsActive() bool { return b.active.Load() }

// ApplyConfig applies the settings that can change on a live instance.
// It is meant for ConfigWatcher.OnChange.
func (b *Bridge) ApplyConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	b.log.SetLevel(cfg.Level())
	b.log.Info("log level set to %s", cfg.Level())
}

// Init selects the default I/O configuration, using the host track's
// channel count when the host reports one.
func (b *Bridge) Init() error {
	trackChannels, haveTrack := 0, false
	if th, ok := b.host.(clap.TrackInfoHost); ok {
		if ti, ok := th.TrackInfo(); ok && ti.Flags&clap.TrackInfoHasAudioChannel != 0 {
			trackChannels, haveTrack = int(ti.AudioChannelCount), true
		}
	}

	idx := b.buses.DefaultIndex(trackChannels, haveTrack, b.info.IsInstrument())
	b.selectConfig(idx)
	b.log.Info("init: host %q version %#x, configuration %d (%s)",
		b.hostName(), b.hostVersion, idx, b.buses.Get(idx).Name())
	return nil
}

func (b *Bridge) hostName() string {
	if b.host == nil {
		return ""
	}
	return b.host.Info().Name
}

func (b *Bridge) selectConfig(idx int) {
	b.configIndex = idx
	b.ctx.Buses = b.buses.Get(idx)
}

// Activate prepares the core for processing at sampleRate and clears its DSP
// state. Parameter values are left as the host or a loaded state set them;
// the core is told to resync through OnParamReset.
func (b *Bridge) Activate(sampleRate float64, minFrames, maxFrames uint32) error {
	if b.active.Load() {
		return ErrActive
	}
	if sampleRate <= 0 || maxFrames == 0 || minFrames > maxFrames {
		return fmt.Errorf("plugin %s: invalid activation %.0f Hz, %d..%d frames", b.info.ID, sampleRate, minFrames, maxFrames)
	}

	b.sampleRate = sampleRate
	b.maxFrames = maxFrames
	b.ctx.SampleRate = sampleRate
	b.ctx.Reserve(b.inputs.Cap(), int(maxFrames))

	if err := b.proc.Initialize(sampleRate, int32(maxFrames)); err != nil {
		return fmt.Errorf("plugin %s: initialize: %w", b.info.ID, err)
	}

	if b.paramResetter != nil {
		b.paramResetter.OnParamReset(param.SourceReset)
	}
	if b.resetter != nil {
		b.resetter.Reset()
	}

	samples, infinite := int(b.proc.GetTailSamples()), false
	if b.tailReporter != nil {
		samples, infinite = b.tailReporter.TailSize()
	}
	b.tailSamples.Store(int64(samples))
	b.tailInfinite.Store(infinite)
	b.tailChanged = false

	b.time.Reset()
	b.outMIDI.Clear()

	if err := b.proc.SetActive(true); err != nil {
		return fmt.Errorf("plugin %s: activate: %w", b.info.ID, err)
	}
	b.active.Store(true)
	b.log.Info("activated at %.0f Hz, %d..%d frames", sampleRate, minFrames, maxFrames)
	return nil
}

// Deactivate stops processing and logs a summary of dropped events.
func (b *Bridge) Deactivate() {
	if !b.active.Swap(false) {
		return
	}
	b.processing.Store(false)
	if err := b.proc.SetActive(false); err != nil {
		b.log.Warn("deactivate: %v", err)
	}

	if s := b.Stats(); s.Dropped() > 0 {
		b.log.Warn("dropped events: %s", s)
	}
	b.log.Info("deactivated")
}

// StartProcessing is called by the host on the audio thread before the
// first Process of a run.
func (b *Bridge) StartProcessing() bool {
	if !b.active.Load() {
		return false
	}
	b.processing.Store(true)
	return true
}

// StopProcessing ends a processing run.
func (b *Bridge) StopProcessing() {
	b.processing.Store(false)
}

// Reset clears the core's DSP state and pending output MIDI. It runs on the
// audio thread while not processing.
func (b *Bridge) Reset() {
	if b.resetter != nil {
		b.resetter.Reset()
	}
	b.outMIDI.Clear()
}

// RenderSetMode switches between real-time and offline rendering.
func (b *Bridge) RenderSetMode(offline bool) bool {
	b.offline = offline
	b.ctx.SetOffline(offline)
	if b.renderMode != nil {
		b.renderMode.OnRenderMode(offline)
	}
	return true
}

// IsOffline reports the last render mode.
func (b *Bridge) IsOffline() bool { return b.offline }

// Destroy deactivates the bridge and releases the log file.
func (b *Bridge) Destroy() {
	b.Deactivate()
	if b.logCloser != nil {
		if err := b.logCloser.Close(); err != nil {
			debug.Warn("close log: %v", err)
		}
		b.logCloser = nil
	}
}

// LatencyGet returns the core's latency in samples.
func (b *Bridge) LatencyGet() uint32 {
	return uint32(max(b.proc.GetLatencySamples(), 0))
}

// NotifyLatencyChanged tells the host to query LatencyGet again.
func (b *Bridge) NotifyLatencyChanged() {
	if b.latencyHost != nil {
		b.latencyHost.LatencyChanged()
	}
}

// TailGet returns the tail in samples, MaxUint32 for an infinite tail.
func (b *Bridge) TailGet() uint32 {
	if b.tailInfinite.Load() {
		return ^uint32(0)
	}
	return uint32(max(b.tailSamples.Load(), 0))
}

// eventSink is the bridge side of process.Context's outbound calls. It only
// runs on the audio thread.
type eventSink struct {
	b *Bridge
}

func (s *eventSink) SendMIDI(e midi.Event) bool {
	return s.b.outMIDI.Add(e)
}

func (s *eventSink) SendSysEx(offset int32, data []byte) bool {
	b := s.b
	if !b.sysexSend.Set(offset, data) {
		b.counters.sysexTruncated.Add(1)
	}
	return b.outSysEx.Push(b.sysexSend)
}

func (s *eventSink) SetTailSize(samples int, infinite bool) {
	b := s.b
	if b.tailInfinite.Load() == infinite && (infinite || b.tailSamples.Load() == int64(samples)) {
		return
	}
	b.tailSamples.Store(int64(samples))
	b.tailInfinite.Store(infinite)
	b.tailChanged = true
}
