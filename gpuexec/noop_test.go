package gpuexec

import (
	"testing"

	"github.com/glaphica/paintcore/brush"
	"github.com/glaphica/paintcore/protocol"
)

func TestNoopExecuteEachCommandKind(t *testing.T) {
	n := &Noop{}

	cases := []struct {
		name string
		cmd  protocol.Command
		want protocol.ReceiptKind
	}{
		{"init", protocol.Command{Kind: protocol.CommandInit}, protocol.ReceiptInitComplete},
		{"resize", protocol.Command{Kind: protocol.CommandResize}, protocol.ReceiptResized},
		{"resize handshake", protocol.Command{Kind: protocol.CommandResizeHandshake}, protocol.ReceiptResizeHandshakeAck},
		{"present frame", protocol.Command{Kind: protocol.CommandPresentFrame}, protocol.ReceiptFramePresented},
		{"bind render tree", protocol.Command{Kind: protocol.CommandBindRenderTree}, protocol.ReceiptRenderTreeBound},
		{"enqueue brush commands", protocol.Command{Kind: protocol.CommandEnqueueBrushCommands}, protocol.ReceiptBrushCommandsEnqueued},
		{"enqueue brush command", protocol.Command{Kind: protocol.CommandEnqueueBrushCommand}, protocol.ReceiptBrushCommandEnqueued},
		{"poll merge notices", protocol.Command{Kind: protocol.CommandPollMergeNotices}, protocol.ReceiptMergeNotices},
		{"process merge completions", protocol.Command{Kind: protocol.CommandProcessMergeCompletions}, protocol.ReceiptMergeCompletionsProcessed},
		{"shutdown", protocol.Command{Kind: protocol.CommandShutdown, ShutdownReason: "user requested"}, protocol.ReceiptShutdownAck},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			receipt, err := n.Execute(c.cmd)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if receipt.Kind != c.want {
				t.Fatalf("Execute() kind = %v, want %v", receipt.Kind, c.want)
			}
		})
	}

	if _, err := n.Execute(protocol.Command{Kind: protocol.CommandKind(999)}); err == nil {
		t.Fatal("expected error for unknown command kind")
	}
}

func TestNoopExecuteEnqueueBrushCommandsCountsDabs(t *testing.T) {
	n := &Noop{}
	cmd := protocol.Command{
		Kind: protocol.CommandEnqueueBrushCommands,
		EnqueueBrushCommands: []brush.Command{
			{Kind: brush.KindBeginStroke, Begin: &brush.BeginStroke{SessionId: 1}},
			{Kind: brush.KindPushDabChunk, Push: &brush.PushDabChunk{SessionId: 1}},
			{Kind: brush.KindPushDabChunk, Push: &brush.PushDabChunk{SessionId: 1}},
			{Kind: brush.KindEndStroke, End: &brush.EndStroke{SessionId: 1}},
		},
	}

	receipt, err := n.Execute(cmd)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if receipt.Kind != protocol.ReceiptBrushCommandsEnqueued {
		t.Fatalf("receipt kind = %v, want ReceiptBrushCommandsEnqueued", receipt.Kind)
	}
	if receipt.DabCount != 2 {
		t.Fatalf("DabCount = %d, want 2 (only push_dab_chunk commands count)", receipt.DabCount)
	}
}
