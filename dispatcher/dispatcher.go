// Package dispatcher runs the GPU-executor side of the command/feedback
// boundary: each tick drains a budgeted batch of commands, executes them
// against a gpuexec.Executor, advances the waterlines and publishes one
// merged FeedbackFrame when there is anything to report.
package dispatcher

import (
	"github.com/glaphica/paintcore/gpuexec"
	"github.com/glaphica/paintcore/gpuqueue"
	"github.com/glaphica/paintcore/obs"
	"github.com/glaphica/paintcore/protocol"
)

// Dispatcher owns the waterlines and the executor; it is driven by
// repeated calls to Tick from the GPU-executor thread.
type Dispatcher struct {
	executor gpuexec.Executor
	queues   *gpuqueue.Queues

	waterlines protocol.Waterlines
}

// New creates a Dispatcher over the given executor and command/feedback
// queues.
func New(executor gpuexec.Executor, queues *gpuqueue.Queues) *Dispatcher {
	return &Dispatcher{executor: executor, queues: queues}
}

// TickResult reports what one Tick did.
type TickResult struct {
	ShutdownRequested bool
	ShutdownReason    string
	CommandsExecuted  int
}

// Tick drains up to gpuqueue.CommandBudget commands, executes each in
// order, and unconditionally advances ExecutedBatchWaterline by one. A
// CommandShutdown command stops the drain early, after its own receipt is
// recorded. A non-empty receipt/error set, or a shutdown, causes one
// FeedbackFrame to be published.
func (d *Dispatcher) Tick() TickResult {
	var receipts []protocol.Receipt
	var errs []protocol.ErrorEntry
	shutdownReason := ""
	shutdownRequested := false
	executed := 0
	var pendingBrushCommandCount uint32

	for i := 0; i < gpuqueue.CommandBudget; i++ {
		msg, ok := d.queues.PopCommand()
		if !ok {
			break
		}
		cmd := msg.Command

		if cmd.Kind == protocol.CommandPresentFrame {
			d.waterlines.PresentFrameId = cmd.PresentFrameId
		} else {
			d.waterlines.SubmitWaterline++
		}

		if cmd.Kind == protocol.CommandEnqueueBrushCommands {
			pendingBrushCommandCount += uint32(len(cmd.EnqueueBrushCommands))
		} else if cmd.Kind == protocol.CommandEnqueueBrushCommand {
			pendingBrushCommandCount++
		}

		receipt, err := d.executor.Execute(cmd)
		executed++
		if err != nil {
			errs = append(errs, errorEntryFor(cmd, err))
			continue
		}
		receipts = append(receipts, receipt)

		if cmd.Kind == protocol.CommandShutdown {
			shutdownRequested = true
			shutdownReason = cmd.ShutdownReason
			break
		}
	}

	d.waterlines.ExecutedBatchWaterline++

	// ActiveStrokeCount isn't tracked at this layer: the dispatcher sees
	// brush commands only as opaque batches, not per-session state.
	obs.RecordStateDigest(obs.StateDigestEvent{
		ExecutedBatchWaterline:   d.waterlines.ExecutedBatchWaterline,
		SubmitWaterline:          d.waterlines.SubmitWaterline,
		PendingBrushCommandCount: pendingBrushCommandCount,
	})

	if len(receipts) > 0 || len(errs) > 0 || shutdownRequested {
		frame := protocol.FeedbackFrame{
			Waterlines: d.waterlines,
			Receipts:   protocol.MergeVec(nil, receipts, protocol.NewMergeIndex[protocol.ReceiptKey]()),
			Errors:     protocol.MergeVec(nil, errs, protocol.NewMergeIndex[protocol.ErrorKey]()),
		}
		if err := d.queues.PushFeedback(frame); err != nil {
			obs.Logger().Error("feedback push error", "error", err)
		}
	}

	return TickResult{ShutdownRequested: shutdownRequested, ShutdownReason: shutdownReason, CommandsExecuted: executed}
}

// errorEntryFor maps a failed command to the ErrorEntry kind the original
// runtime's RuntimeError variants report for that command, populating
// whichever field that kind carries (see protocol.ErrorEntry).
func errorEntryFor(cmd protocol.Command, err error) protocol.ErrorEntry {
	switch cmd.Kind {
	case protocol.CommandPresentFrame:
		return protocol.ErrorEntry{Kind: protocol.ErrorPresent, Cause: err.Error()}

	case protocol.CommandResize:
		return protocol.ErrorEntry{Kind: protocol.ErrorResize, Message: err.Error()}

	case protocol.CommandInit, protocol.CommandResizeHandshake:
		return protocol.ErrorEntry{Kind: protocol.ErrorHandshakeTimeout, Operation: cmd.Kind.String()}

	case protocol.CommandBindRenderTree:
		return protocol.ErrorEntry{Kind: protocol.ErrorSurface, Cause: err.Error()}

	case protocol.CommandEnqueueBrushCommands, protocol.CommandEnqueueBrushCommand:
		return protocol.ErrorEntry{Kind: protocol.ErrorBrushEnqueue, Cause: err.Error()}

	case protocol.CommandProcessMergeCompletions:
		return protocol.ErrorEntry{Kind: protocol.ErrorMergeSubmit, Cause: err.Error()}

	case protocol.CommandPollMergeNotices:
		return protocol.ErrorEntry{Kind: protocol.ErrorMergePoll, Cause: err.Error()}

	case protocol.CommandShutdown:
		return protocol.ErrorEntry{Kind: protocol.ErrorShutdownRequested, ShutdownReason: cmd.ShutdownReason}

	default:
		return protocol.ErrorEntry{Kind: protocol.ErrorEngineThreadDisconnected, Cause: err.Error()}
	}
}
