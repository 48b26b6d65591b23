package chunk

// FramerConfig bounds how many samples a Framer accumulates before
// flushing a chunk early, independent of stroke boundaries.
type FramerConfig struct {
	MaxSamplesPerChunk int
}

// Framer groups a resampler's emitted samples into bounded SampleChunks,
// stamping starts_stroke true on exactly the first chunk of a session and
// ends_stroke true on exactly the last. Its EmitSample takes a
// chunk.Sample rather than a resample.Sample, so a Resampler feeds it
// through an adapter (see package driver).
type Framer struct {
	cfg FramerConfig

	sessionId       uint64
	frameSequenceId uint64
	builder         *Builder
	emittedAny      bool

	onChunk func(*SampleChunk)
}

// NewFramer creates a Framer that calls onChunk with each completed
// chunk, in the order they are produced.
func NewFramer(cfg FramerConfig, onChunk func(*SampleChunk)) *Framer {
	if cfg.MaxSamplesPerChunk <= 0 {
		cfg.MaxSamplesPerChunk = 1
	}
	return &Framer{cfg: cfg, onChunk: onChunk}
}

// BeginStroke starts framing chunks for a new session at the given frame
// sequence id. The first chunk produced for this session carries
// starts_stroke=true.
func (f *Framer) BeginStroke(sessionId, frameSequenceId uint64) {
	f.sessionId = sessionId
	f.frameSequenceId = frameSequenceId
	f.emittedAny = false
	f.builder = nil
}

// EmitSample accepts one resampled sample, starting a new builder if
// necessary and flushing it once MaxSamplesPerChunk is reached.
func (f *Framer) EmitSample(s Sample) {
	if f.builder == nil {
		f.builder = f.newBuilder(false)
	}
	f.builder.Push(s)
	if f.builder.Len() >= f.cfg.MaxSamplesPerChunk {
		f.flush(false)
	}
}

// EndStroke flushes any accumulated samples as the final chunk of the
// session, with ends_stroke=true. If no samples remain buffered, it still
// emits a zero-sample chunk carrying the boundary flag, per spec: a chunk
// with zero samples is only produced when it carries a boundary flag.
func (f *Framer) EndStroke() {
	if f.builder == nil {
		f.builder = f.newBuilder(true)
	}
	f.flush(true)
}

func (f *Framer) newBuilder(ends bool) *Builder {
	starts := !f.emittedAny
	return NewBuilder(f.sessionId, f.frameSequenceId, starts, ends)
}

func (f *Framer) flush(ends bool) {
	b := f.builder
	if !b.endsStroke && ends {
		b.endsStroke = true
	}
	f.emittedAny = true
	f.builder = nil
	f.onChunk(b.Finish())
}
