// Package chunk accumulates resampled stroke samples into bounded
// SampleChunks stamped with stroke-boundary and frame-sequence metadata.
package chunk

// SampleChunk is a bounded, frozen group of samples belonging to one
// stroke session, carrying the boundary flags the translator needs to
// drive its state machine.
//
// Attributes are stored as parallel slices (array-of-structures would
// cost an extra allocation per sample on the hot input path); a chunk
// with zero samples is only ever produced when it carries a boundary
// flag.
type SampleChunk struct {
	SessionId               uint64
	StartsStroke            bool
	EndsStroke               bool
	DiscontinuityBefore     bool
	DroppedChunkCountBefore uint64
	FrameSequenceId         uint64

	X        []float32
	Y        []float32
	Pressure []float32
	TiltX    []float32
	TiltY    []float32
	Twist    []float32
}

// SampleCount returns the number of samples in the chunk.
func (c *SampleChunk) SampleCount() int {
	return len(c.X)
}

// Builder accumulates samples for one in-progress chunk. A Builder is
// not safe for concurrent use; it is owned by whichever thread is
// currently filling it.
type Builder struct {
	sessionId               uint64
	frameSequenceId         uint64
	startsStroke            bool
	endsStroke              bool
	discontinuityBefore     bool
	droppedChunkCountBefore uint64

	x        []float32
	y        []float32
	pressure []float32
	tiltX    []float32
	tiltY    []float32
	twist    []float32
}

// NewBuilder starts a builder for the given session and frame sequence.
func NewBuilder(sessionId, frameSequenceId uint64, startsStroke, endsStroke bool) *Builder {
	return &Builder{
		sessionId:       sessionId,
		frameSequenceId: frameSequenceId,
		startsStroke:    startsStroke,
		endsStroke:      endsStroke,
	}
}

// SetDiscontinuityBefore marks the chunk as following a gap in input
// (e.g. a dropped boundary chunk was retried, or samples were coalesced).
func (b *Builder) SetDiscontinuityBefore(v bool) { b.discontinuityBefore = v }

// SetDroppedChunkCountBefore records how many chunks were silently
// coalesced immediately before this one (see inputbridge's drop policy).
func (b *Builder) SetDroppedChunkCountBefore(n uint64) { b.droppedChunkCountBefore = n }

// Sample is the attribute set a Builder appends per resampled point.
// It mirrors resample.Sample's position, pressure, tilt and twist fields
// (not its timestamp or velocity) without importing that package,
// so chunk stays usable independent of which resampling strategy fed it.
type Sample struct {
	CanvasX      float32
	CanvasY      float32
	Pressure     float32
	TiltXDegrees float32
	TiltYDegrees float32
	TwistDegrees float32
}

// Push appends one sample to the chunk under construction.
func (b *Builder) Push(s Sample) {
	b.x = append(b.x, s.CanvasX)
	b.y = append(b.y, s.CanvasY)
	b.pressure = append(b.pressure, s.Pressure)
	b.tiltX = append(b.tiltX, s.TiltXDegrees)
	b.tiltY = append(b.tiltY, s.TiltYDegrees)
	b.twist = append(b.twist, s.TwistDegrees)
}

// Len reports how many samples have been pushed so far.
func (b *Builder) Len() int { return len(b.x) }

// Finish freezes the builder into a SampleChunk.
func (b *Builder) Finish() *SampleChunk {
	return &SampleChunk{
		SessionId:               b.sessionId,
		StartsStroke:            b.startsStroke,
		EndsStroke:              b.endsStroke,
		DiscontinuityBefore:     b.discontinuityBefore,
		DroppedChunkCountBefore: b.droppedChunkCountBefore,
		FrameSequenceId:         b.frameSequenceId,
		X:                       b.x,
		Y:                       b.y,
		Pressure:                b.pressure,
		TiltX:                   b.tiltX,
		TiltY:                   b.tiltY,
		Twist:                    b.twist,
	}
}
