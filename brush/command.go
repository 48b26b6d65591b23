// Package brush translates framed sample chunks into the brush-render
// command stream, enforcing the per-stroke-session state machine
// BeginStroke -> (PushDabChunk)* -> EndStroke -> MergeBuffer.
package brush

// CommandKind tags which variant a Command holds.
type CommandKind int

const (
	KindBeginStroke CommandKind = iota
	KindPushDabChunk
	KindEndStroke
	KindMergeBuffer
)

func (k CommandKind) String() string {
	switch k {
	case KindBeginStroke:
		return "begin_stroke"
	case KindPushDabChunk:
		return "push_dab_chunk"
	case KindEndStroke:
		return "end_stroke"
	case KindMergeBuffer:
		return "merge_buffer"
	default:
		return "unknown"
	}
}

// Command is one emitted brush-render command. Exactly one of the
// payload fields is populated, selected by Kind.
type Command struct {
	Kind CommandKind

	Begin *BeginStroke
	Push  *PushDabChunk
	End   *EndStroke
	Merge *MergeBuffer
}

// BeginStroke opens a stroke session. BrushId, ProgramRevision,
// ReferenceSetId and TargetLayerId are attached verbatim from the
// translator's configuration.
type BeginStroke struct {
	SessionId           uint64
	BrushId             uint64
	ProgramRevision     uint64
	ReferenceSetId      uint64
	TargetLayerId       uint64
	DiscontinuityBefore bool
}

// PushDabChunk carries one chunk's worth of resampled dabs for a session.
type PushDabChunk struct {
	SessionId uint64
	X         []float32
	Y         []float32
	Pressure  []float32
}

// EndStroke closes a stroke session's dab stream.
type EndStroke struct {
	SessionId uint64
}

// MergeBuffer requests the GPU executor merge a finished session's
// brush buffer into its target layer.
type MergeBuffer struct {
	SessionId     uint64
	TargetLayerId uint64
}

func beginCommand(c BeginStroke) Command { return Command{Kind: KindBeginStroke, Begin: &c} }
func pushCommand(c PushDabChunk) Command { return Command{Kind: KindPushDabChunk, Push: &c} }
func endCommand(c EndStroke) Command     { return Command{Kind: KindEndStroke, End: &c} }
func mergeCommand(c MergeBuffer) Command { return Command{Kind: KindMergeBuffer, Merge: &c} }

// SessionId returns the stroke session id carried by whichever payload
// field Kind selects.
func (c Command) SessionId() uint64 {
	switch c.Kind {
	case KindBeginStroke:
		return c.Begin.SessionId
	case KindPushDabChunk:
		return c.Push.SessionId
	case KindEndStroke:
		return c.End.SessionId
	case KindMergeBuffer:
		return c.Merge.SessionId
	default:
		return 0
	}
}
