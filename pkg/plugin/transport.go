package plugin

import (
	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

// updateTimeInfo copies the fields the host advertises into ti. Fields
// without their capability bit keep their previous value. The sample
// position comes from the seconds timeline only.
func updateTimeInfo(ti *process.TimeInfo, t *clap.Transport, sampleRate float64) {
	if t == nil {
		return
	}

	if t.Has(clap.TransportHasTempo) {
		ti.Tempo = t.Tempo
		ti.Known |= process.TimeTempo
	}

	if t.Has(clap.TransportHasSecondsTimeline) {
		ti.SamplePos = sampleRate * float64(t.SongPosSeconds) / float64(clap.SecTimeFactor)
		ti.Known |= process.TimeSamplePos
	}

	if t.Has(clap.TransportHasBeatsTimeline) {
		const f = float64(clap.BeatTimeFactor)
		ti.PPQPos = float64(t.SongPosBeats) / f
		ti.LastBar = float64(t.BarStart) / f
		ti.CycleStart = float64(t.LoopStartBeats) / f
		ti.CycleEnd = float64(t.LoopEndBeats) / f
		ti.Known |= process.TimeMusical
	}

	if t.Has(clap.TransportHasTimeSignature) {
		ti.Numerator = int(t.TSigNum)
		ti.Denominator = int(t.TSigDenom)
		ti.Known |= process.TimeSignature
	}

	ti.TransportIsRunning = t.Has(clap.TransportIsPlaying)
	ti.TransportLoopEnabled = t.Has(clap.TransportIsLoopActive)
}
