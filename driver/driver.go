// Package driver composes the input-processing pipeline that runs on the
// producer side of the app/GPU-executor boundary: raw pointer input is
// uniformly resampled, framed into bounded sample chunks, and pushed onto
// the bridge toward the stroke-processing thread. Composing the three
// stages here, rather than at the bridge itself, keeps the bridge's
// payload a finished SampleChunk and lets the resampler/framer run
// wherever raw input arrives (normally the UI thread).
package driver

import (
	"github.com/glaphica/paintcore/chunk"
	"github.com/glaphica/paintcore/inputbridge"
	"github.com/glaphica/paintcore/obs"
	"github.com/glaphica/paintcore/resample"
)

// Config bundles the per-stage configuration needed to start a stroke.
type Config struct {
	Resample resample.Config
	Framer   chunk.FramerConfig
}

// Pipeline drives one pointer's raw input through resampling and
// chunk-framing and onto an inputbridge.Bridge.
type Pipeline struct {
	bridge    *inputbridge.Bridge
	resampler *resample.Resampler
	framer    *chunk.Framer
	cfg       Config

	chunkIndex uint32
}

// New creates a Pipeline that pushes finished chunks onto bridge.
func New(bridge *inputbridge.Bridge, cfg Config) *Pipeline {
	p := &Pipeline{bridge: bridge, resampler: resample.New(), cfg: cfg}
	p.framer = chunk.NewFramer(cfg.Framer, p.onChunk)
	return p
}

func (p *Pipeline) onChunk(c *chunk.SampleChunk) {
	obs.RecordDriver(obs.DriverEvent{
		StrokeSessionId:         c.SessionId,
		ChunkIndex:              p.chunkIndex,
		SampleCount:             uint32(c.SampleCount()),
		StartsStroke:            c.StartsStroke,
		EndsStroke:              c.EndsStroke,
		DiscontinuityBefore:     c.DiscontinuityBefore,
		DroppedChunkCountBefore: c.DroppedChunkCountBefore,
	})
	p.chunkIndex++
	_ = p.bridge.Push(c)
}

// BeginStroke starts a new stroke session identified by sessionId, with
// frameSequenceId stamped onto every chunk the session produces until the
// next BeginStroke.
func (p *Pipeline) BeginStroke(sessionId, pointerId, frameSequenceId uint64) error {
	if err := p.resampler.BeginStroke(resample.StrokeContext{SessionId: sessionId, PointerId: pointerId}, p.cfg.Resample); err != nil {
		return err
	}
	p.framer.BeginStroke(sessionId, frameSequenceId)
	p.chunkIndex = 0
	return nil
}

// FeedInput resamples one raw pointer input, emitting zero or more
// uniformly-spaced samples into the current stroke's chunks.
func (p *Pipeline) FeedInput(input resample.RawPointerInput) error {
	return p.resampler.FeedInput(input, emitterFunc(p.emitSample))
}

func (p *Pipeline) emitSample(s resample.Sample) {
	p.framer.EmitSample(chunk.Sample{
		CanvasX:       s.CanvasX,
		CanvasY:       s.CanvasY,
		Pressure:      s.Pressure,
		TiltXDegrees:  s.TiltXDegrees,
		TiltYDegrees:  s.TiltYDegrees,
		TwistDegrees:  s.TwistDegrees,
	})
}

// EndStroke closes the current stroke session, flushing its final chunk
// (possibly zero-sample) with the end-of-stroke boundary flag set.
func (p *Pipeline) EndStroke() {
	p.resampler.EndStroke()
	p.framer.EndStroke()
}

// emitterFunc adapts a plain function to resample.Emitter.
type emitterFunc func(resample.Sample)

func (f emitterFunc) EmitSample(s resample.Sample) { f(s) }
