package protocol

import "github.com/glaphica/paintcore/brush"

// CommandKind is the closed tag set delivered over the command ring.
type CommandKind int

const (
	CommandInit CommandKind = iota
	CommandResize
	CommandResizeHandshake
	CommandPresentFrame
	CommandBindRenderTree
	CommandEnqueueBrushCommands
	CommandEnqueueBrushCommand
	CommandPollMergeNotices
	CommandProcessMergeCompletions
	CommandShutdown
)

func (k CommandKind) String() string {
	switch k {
	case CommandInit:
		return "init"
	case CommandResize:
		return "resize"
	case CommandResizeHandshake:
		return "resize_handshake"
	case CommandPresentFrame:
		return "present_frame"
	case CommandBindRenderTree:
		return "bind_render_tree"
	case CommandEnqueueBrushCommands:
		return "enqueue_brush_commands"
	case CommandEnqueueBrushCommand:
		return "enqueue_brush_command"
	case CommandPollMergeNotices:
		return "poll_merge_notices"
	case CommandProcessMergeCompletions:
		return "process_merge_completions"
	case CommandShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Ack is a one-shot acknowledgement channel attached to Init and
// ResizeHandshake commands.
type Ack chan struct{}

// Command is one entry on the command ring. Exactly one payload field is
// populated, selected by Kind.
type Command struct {
	Kind CommandKind

	InitAck Ack

	Resize *ResizeCommand

	ResizeHandshakeAck Ack

	PresentFrameId uint64

	BindRenderTree *BindRenderTreeCommand

	EnqueueBrushCommands []brush.Command
	EnqueueBrushCommand  *brush.Command

	PollMergeNoticesFrameId        uint64
	ProcessMergeCompletionsFrameId uint64

	ShutdownReason string
}

// ResizeCommand carries the new surface dimensions and view transform.
type ResizeCommand struct {
	Width          uint32
	Height         uint32
	ViewTransform  [9]float32 // row-major 3x3, opaque beyond the dispatcher
}

// BindRenderTreeCommand forwards an opaque render-tree snapshot to the
// GPU executor without interpreting it; render-tree composition planning
// is out of scope for this core.
type BindRenderTreeCommand struct {
	Snapshot any
	Reason   string
}
