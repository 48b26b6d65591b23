package protocol

import "github.com/glaphica/paintcore/obs"

// Waterlines are the four monotone counters a FeedbackFrame carries.
// Each is non-decreasing over the sequence of frames the main
// dispatcher observes.
type Waterlines struct {
	PresentFrameId       uint64
	SubmitWaterline      uint64
	ExecutedBatchWaterline uint64
	CompleteWaterline    uint64
}

func maxWaterlines(a, b Waterlines) Waterlines {
	return Waterlines{
		PresentFrameId:         max(a.PresentFrameId, b.PresentFrameId),
		SubmitWaterline:        max(a.SubmitWaterline, b.SubmitWaterline),
		ExecutedBatchWaterline: max(a.ExecutedBatchWaterline, b.ExecutedBatchWaterline),
		CompleteWaterline:      max(a.CompleteWaterline, b.CompleteWaterline),
	}
}

// FeedbackFrame carries the four waterlines plus deduplicated vectors of
// receipts and errors accumulated by the GPU executor thread during one
// or more dispatch ticks.
type FeedbackFrame struct {
	Waterlines Waterlines
	Receipts   []Receipt
	Errors     []ErrorEntry
}

// MergeState holds the reusable merge indexes a caller keeps across
// repeated mailbox merges, avoiding a per-merge allocation.
type MergeState struct {
	receiptIndex *MergeIndex[ReceiptKey]
	errorIndex   *MergeIndex[ErrorKey]
}

// NewMergeState creates an empty MergeState.
func NewMergeState() *MergeState {
	return &MergeState{
		receiptIndex: NewMergeIndex[ReceiptKey](),
		errorIndex:   NewMergeIndex[ErrorKey](),
	}
}

// MergeMailbox combines current (older) and newer into one frame: each
// waterline becomes the element-wise max, and receipts/errors are
// deduplicated by MergeKey via MergeVec. Panics if current already held
// a duplicate key (see MergeVec).
func MergeMailbox(current, newer FeedbackFrame, state *MergeState) FeedbackFrame {
	current.Waterlines = maxWaterlines(current.Waterlines, newer.Waterlines)
	current.Receipts = MergeVec(current.Receipts, newer.Receipts, state.receiptIndex)
	current.Errors = MergeVec(current.Errors, newer.Errors, state.errorIndex)
	obs.RecordMergeLifecycle(obs.MergeLifecycleEvent{
		MergedReceiptCount: uint32(len(newer.Receipts)),
		MergedErrorCount:   uint32(len(newer.Errors)),
	})
	return current
}
