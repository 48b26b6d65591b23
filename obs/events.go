// Copyright 2025 The Glaphica Authors
// SPDX-License-Identifier: MIT

package obs

import "sync/atomic"

// DriverEvent describes one framed sample chunk as it leaves the
// resample/chunk-framing pipeline, before it crosses the input bridge.
type DriverEvent struct {
	StrokeSessionId         uint64
	ChunkIndex              uint32
	SampleCount             uint32
	StartsStroke            bool
	EndsStroke              bool
	DiscontinuityBefore     bool
	DroppedChunkCountBefore uint64
}

// BrushExecutionEvent describes one command the brush translator emitted
// for a stroke session.
type BrushExecutionEvent struct {
	StrokeSessionId uint64
	CommandKind     string
	TargetLayerId   uint64
}

// RenderCommandEvent describes one brush command as the GPU executor
// dispatches it.
type RenderCommandEvent struct {
	StrokeSessionId uint64
	CommandKind     string
	DabCount        uint64
}

// MergeLifecycleEvent describes one mailbox merge of a feedback frame.
type MergeLifecycleEvent struct {
	MergedReceiptCount uint32
	MergedErrorCount   uint32
}

// StateDigestEvent summarizes the dispatcher's state at the end of a
// tick.
type StateDigestEvent struct {
	ExecutedBatchWaterline   uint64
	SubmitWaterline          uint64
	PendingBrushCommandCount uint32
	ActiveStrokeCount        uint32
}

// EventSink receives the five observability event kinds spec's
// replay-trace design names. Serialization is the sink's concern, not
// this package's: obs only dispatches, it never writes a file format.
type EventSink interface {
	Driver(DriverEvent)
	BrushExecution(BrushExecutionEvent)
	RenderCommand(RenderCommandEvent)
	MergeLifecycle(MergeLifecycleEvent)
	StateDigest(StateDigestEvent)
}

// noopSink discards every event. It is the default sink, matching
// logger's nopHandler: recording is zero-cost until a real sink is set.
type noopSink struct{}

func (noopSink) Driver(DriverEvent)                 {}
func (noopSink) BrushExecution(BrushExecutionEvent) {}
func (noopSink) RenderCommand(RenderCommandEvent)   {}
func (noopSink) MergeLifecycle(MergeLifecycleEvent) {}
func (noopSink) StateDigest(StateDigestEvent)       {}

var sinkPtr atomic.Pointer[EventSink]

func init() {
	var s EventSink = noopSink{}
	sinkPtr.Store(&s)
}

// SetEventSink configures the sink every Record* call dispatches to. Pass
// nil to restore the no-op sink.
//
// SetEventSink is safe for concurrent use.
func SetEventSink(s EventSink) {
	if s == nil {
		s = noopSink{}
	}
	sinkPtr.Store(&s)
}

func sink() EventSink {
	return *sinkPtr.Load()
}

// RecordDriver reports one framed sample chunk.
func RecordDriver(e DriverEvent) { sink().Driver(e) }

// RecordBrushExecution reports one brush-translator command.
func RecordBrushExecution(e BrushExecutionEvent) { sink().BrushExecution(e) }

// RecordRenderCommand reports one GPU-executor-dispatched brush command.
func RecordRenderCommand(e RenderCommandEvent) { sink().RenderCommand(e) }

// RecordMergeLifecycle reports one mailbox merge.
func RecordMergeLifecycle(e MergeLifecycleEvent) { sink().MergeLifecycle(e) }

// RecordStateDigest reports one end-of-tick state summary.
func RecordStateDigest(e StateDigestEvent) { sink().StateDigest(e) }
