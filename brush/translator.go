package brush

import (
	"github.com/glaphica/paintcore/chunk"
	"github.com/glaphica/paintcore/obs"
)

// TranslatorConfig enumerates the options attached verbatim to every
// BeginStroke command this translator emits.
type TranslatorConfig struct {
	BrushId         uint64
	ProgramRevision uint64
	ReferenceSetId  uint64
	TargetLayerId   uint64
}

// Output receives emitted commands. Push reports false if the output
// queue is full; per spec that is a fatal programmer error (the capacity
// was mis-sized), so the translator panics rather than return an error.
type Output interface {
	Push(Command) bool
}

type pendingMerge struct {
	sessionId     uint64
	targetLayerId uint64
}

// Translator consumes framed SampleChunks and emits BrushCommands,
// enforcing the per-session state machine and the single pending-merge
// flush rule (I7).
type Translator struct {
	cfg TranslatorConfig

	sessions     map[uint64]SessionState
	pendingMerge *pendingMerge
}

// NewTranslator creates a Translator with no sessions in flight.
func NewTranslator(cfg TranslatorConfig) *Translator {
	return &Translator{
		cfg:      cfg,
		sessions: make(map[uint64]SessionState),
	}
}

// Process consumes one chunk, advancing the state machine and pushing
// the resulting commands to out, in the order described by spec §4.5:
//  1. If the chunk starts a stroke and a merge is pending for a
//     different session, flush that MergeBuffer first.
//  2. Emit PushDabChunk.
//  3. If the chunk ends a stroke, emit EndStroke and arm pending_merge.
//
// Panics on any state-machine violation, including a BeginStroke for a
// session that still has its own MergeBuffer pending (see DESIGN.md's
// resolution of spec's corresponding open question).
func (t *Translator) Process(c *chunk.SampleChunk, out Output) {
	if c.StartsStroke {
		t.handleStart(c, out)
	}

	t.push(out, pushCommand(PushDabChunk{
		SessionId: c.SessionId,
		X:         c.X,
		Y:         c.Y,
		Pressure:  c.Pressure,
	}))

	if c.EndsStroke {
		t.handleEnd(c, out)
	}
}

func (t *Translator) handleStart(c *chunk.SampleChunk, out Output) {
	state := t.sessions[c.SessionId]

	if t.pendingMerge != nil {
		if t.pendingMerge.sessionId == c.SessionId {
			panic(&ProtocolViolation{SessionId: c.SessionId, State: StateEnded, Attempted: "BeginStroke while own MergeBuffer pending"})
		}
		t.flushPendingMerge(out)
	}

	if state != StateAbsent {
		panic(&ProtocolViolation{SessionId: c.SessionId, State: state, Attempted: "BeginStroke"})
	}

	t.sessions[c.SessionId] = StateBegun
	t.push(out, beginCommand(BeginStroke{
		SessionId:           c.SessionId,
		BrushId:             t.cfg.BrushId,
		ProgramRevision:     t.cfg.ProgramRevision,
		ReferenceSetId:      t.cfg.ReferenceSetId,
		TargetLayerId:       t.cfg.TargetLayerId,
		DiscontinuityBefore: c.DiscontinuityBefore,
	}))
}

func (t *Translator) handleEnd(c *chunk.SampleChunk, out Output) {
	state := t.sessions[c.SessionId]
	if state != StateBegun {
		panic(&ProtocolViolation{SessionId: c.SessionId, State: state, Attempted: "EndStroke"})
	}
	t.sessions[c.SessionId] = StateEnded
	t.push(out, endCommand(EndStroke{SessionId: c.SessionId}))
	t.pendingMerge = &pendingMerge{sessionId: c.SessionId, targetLayerId: t.cfg.TargetLayerId}
}

func (t *Translator) flushPendingMerge(out Output) {
	pm := t.pendingMerge
	t.pendingMerge = nil
	t.sessions[pm.sessionId] = StateMerged
	t.push(out, mergeCommand(MergeBuffer{SessionId: pm.sessionId, TargetLayerId: pm.targetLayerId}))
}

// Flush forces any pending merge to be emitted, e.g. at shutdown when no
// further BeginStroke will arrive to trigger the usual flush path.
func (t *Translator) Flush(out Output) {
	if t.pendingMerge != nil {
		t.flushPendingMerge(out)
	}
}

func (t *Translator) push(out Output, cmd Command) {
	obs.RecordBrushExecution(obs.BrushExecutionEvent{
		StrokeSessionId: cmd.SessionId(),
		CommandKind:     cmd.Kind.String(),
		TargetLayerId:   t.cfg.TargetLayerId,
	})
	if !out.Push(cmd) {
		panic("brush: output queue full")
	}
}
