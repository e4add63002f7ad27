package plugin

import (
	"github.com/justyntemme/clapgo/pkg/clap"
)

// Process runs one block: transport, inbound events, UI queues, buffer
// attachment, the core, outbound events and the tail notification. It
// never blocks and never allocates. A panic in the core is recovered and
// reported as ProcessError.
func (b *Bridge) Process(p *clap.Process) (status clap.ProcessStatus) {
	if p == nil || !b.active.Load() {
		return clap.ProcessError
	}

	defer func() {
		if r := recover(); r != nil {
			b.counters.panics.Add(1)
			status = clap.ProcessError
		}
	}()

	updateTimeInfo(&b.time, p.Transport, b.sampleRate)
	b.processInputEvents(p.InEvents)
	b.drainUIQueues()
	b.attachBuffers(p)

	b.proc.ProcessAudio(b.ctx)
	b.ctx.Commit()

	b.processOutputEvents(p.OutEvents, p.FramesCount)
	b.counters.outputMIDIDropped.Store(b.outMIDI.Dropped())

	if b.tailChanged {
		b.tailChanged = false
		if b.tailHost != nil {
			b.tailHost.TailChanged()
		}
	}

	if b.tailHost != nil {
		return clap.ProcessTail
	}
	return clap.ProcessContinue
}
