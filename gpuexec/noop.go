package gpuexec

import (
	"github.com/glaphica/paintcore/brush"
	"github.com/glaphica/paintcore/obs"
	"github.com/glaphica/paintcore/protocol"
)

// Noop acknowledges every command kind without touching a real GPU
// backend. It is the default executor for headless runs and tests.
type Noop struct{}

// Execute dispatches on cmd.Kind, mirroring the GPU-executor's
// command/receipt correspondence one arm at a time.
func (n *Noop) Execute(cmd protocol.Command) (protocol.Receipt, error) {
	switch cmd.Kind {
	case protocol.CommandInit:
		return protocol.Receipt{Kind: protocol.ReceiptInitComplete}, nil

	case protocol.CommandResize:
		return protocol.Receipt{Kind: protocol.ReceiptResized}, nil

	case protocol.CommandResizeHandshake:
		return protocol.Receipt{Kind: protocol.ReceiptResizeHandshakeAck}, nil

	case protocol.CommandPresentFrame:
		return protocol.Receipt{Kind: protocol.ReceiptFramePresented, ExecutedTileCount: 0}, nil

	case protocol.CommandBindRenderTree:
		return protocol.Receipt{Kind: protocol.ReceiptRenderTreeBound}, nil

	case protocol.CommandEnqueueBrushCommands:
		var dabCount uint64
		for _, bc := range cmd.EnqueueBrushCommands {
			if bc.Kind == brush.KindPushDabChunk {
				dabCount++
			}
			obs.RecordRenderCommand(obs.RenderCommandEvent{
				StrokeSessionId: bc.SessionId(),
				CommandKind:     bc.Kind.String(),
			})
		}
		return protocol.Receipt{
			Kind:     protocol.ReceiptBrushCommandsEnqueued,
			DabCount: dabCount,
		}, nil

	case protocol.CommandEnqueueBrushCommand:
		if bc := cmd.EnqueueBrushCommand; bc != nil {
			obs.RecordRenderCommand(obs.RenderCommandEvent{
				StrokeSessionId: bc.SessionId(),
				CommandKind:     bc.Kind.String(),
			})
		}
		return protocol.Receipt{Kind: protocol.ReceiptBrushCommandEnqueued}, nil

	case protocol.CommandPollMergeNotices:
		return protocol.Receipt{Kind: protocol.ReceiptMergeNotices, MergeNotices: nil}, nil

	case protocol.CommandProcessMergeCompletions:
		return protocol.Receipt{Kind: protocol.ReceiptMergeCompletionsProcessed}, nil

	case protocol.CommandShutdown:
		return protocol.Receipt{Kind: protocol.ReceiptShutdownAck, ShutdownReason: cmd.ShutdownReason}, nil

	default:
		return protocol.Receipt{}, errUnknownCommandKind
	}
}
