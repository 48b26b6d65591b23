package protocol

// ReceiptKind is the closed tag set of GPU-executor acknowledgements.
type ReceiptKind int

const (
	ReceiptFramePresented ReceiptKind = iota
	ReceiptResized
	ReceiptResizeHandshakeAck
	ReceiptInitComplete
	ReceiptShutdownAck
	ReceiptRenderTreeBound
	ReceiptBrushCommandsEnqueued
	ReceiptBrushCommandEnqueued
	ReceiptMergeNotices
	ReceiptMergeCompletionsProcessed
)

// MergeNotice is an opaque tile-merge completion notice forwarded from
// the GPU executor; its payload shape is the executor's concern.
type MergeNotice any

// Receipt is one entry in a FeedbackFrame's receipts vector.
type Receipt struct {
	Kind ReceiptKind

	ExecutedTileCount uint64 // FramePresented
	ShutdownReason    string // ShutdownAck
	DabCount          uint64 // BrushCommandsEnqueued

	MergeNotices             []MergeNotice // MergeNotices
	MergeCompletionReceiptIds []uint64     // MergeCompletionsProcessed
}

// ReceiptKey is the value-equality dedup key for one receipt. Only the
// fields relevant to a given Kind are populated; other variants are unit
// (key is Kind alone).
type ReceiptKey struct {
	Kind              ReceiptKind
	ExecutedTileCount uint64
	ShutdownReason    string
}

// MergeKey returns this receipt's dedup key, matching spec §6.4: e.g.
// FramePresented carries its executed_tile_count in the key, ShutdownAck
// carries the reason string, other variants are unit.
func (r Receipt) MergeKey() ReceiptKey {
	key := ReceiptKey{Kind: r.Kind}
	switch r.Kind {
	case ReceiptFramePresented:
		key.ExecutedTileCount = r.ExecutedTileCount
	case ReceiptShutdownAck:
		key.ShutdownReason = r.ShutdownReason
	}
	return key
}
