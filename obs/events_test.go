// Copyright 2025 The Glaphica Authors
// SPDX-License-Identifier: MIT

package obs

import "testing"

type recordingSink struct {
	driver         []DriverEvent
	brushExecution []BrushExecutionEvent
	renderCommand  []RenderCommandEvent
	mergeLifecycle []MergeLifecycleEvent
	stateDigest    []StateDigestEvent
}

func (r *recordingSink) Driver(e DriverEvent)                 { r.driver = append(r.driver, e) }
func (r *recordingSink) BrushExecution(e BrushExecutionEvent) { r.brushExecution = append(r.brushExecution, e) }
func (r *recordingSink) RenderCommand(e RenderCommandEvent)   { r.renderCommand = append(r.renderCommand, e) }
func (r *recordingSink) MergeLifecycle(e MergeLifecycleEvent) { r.mergeLifecycle = append(r.mergeLifecycle, e) }
func (r *recordingSink) StateDigest(e StateDigestEvent)       { r.stateDigest = append(r.stateDigest, e) }

func TestRecordFunctionsAreNoopByDefault(t *testing.T) {
	SetEventSink(nil)
	RecordDriver(DriverEvent{StrokeSessionId: 1})
	RecordBrushExecution(BrushExecutionEvent{StrokeSessionId: 1})
	RecordRenderCommand(RenderCommandEvent{StrokeSessionId: 1})
	RecordMergeLifecycle(MergeLifecycleEvent{MergedReceiptCount: 1})
	RecordStateDigest(StateDigestEvent{ActiveStrokeCount: 1})
}

func TestRecordFunctionsDispatchToConfiguredSink(t *testing.T) {
	sink := &recordingSink{}
	SetEventSink(sink)
	defer SetEventSink(nil)

	RecordDriver(DriverEvent{StrokeSessionId: 7, ChunkIndex: 2})
	RecordBrushExecution(BrushExecutionEvent{StrokeSessionId: 7, CommandKind: "begin_stroke"})
	RecordRenderCommand(RenderCommandEvent{StrokeSessionId: 7, DabCount: 3})
	RecordMergeLifecycle(MergeLifecycleEvent{MergedReceiptCount: 2, MergedErrorCount: 1})
	RecordStateDigest(StateDigestEvent{ActiveStrokeCount: 1, PendingBrushCommandCount: 4})

	if len(sink.driver) != 1 || sink.driver[0].ChunkIndex != 2 {
		t.Fatalf("driver events = %+v", sink.driver)
	}
	if len(sink.brushExecution) != 1 || sink.brushExecution[0].CommandKind != "begin_stroke" {
		t.Fatalf("brush execution events = %+v", sink.brushExecution)
	}
	if len(sink.renderCommand) != 1 || sink.renderCommand[0].DabCount != 3 {
		t.Fatalf("render command events = %+v", sink.renderCommand)
	}
	if len(sink.mergeLifecycle) != 1 || sink.mergeLifecycle[0].MergedReceiptCount != 2 {
		t.Fatalf("merge lifecycle events = %+v", sink.mergeLifecycle)
	}
	if len(sink.stateDigest) != 1 || sink.stateDigest[0].PendingBrushCommandCount != 4 {
		t.Fatalf("state digest events = %+v", sink.stateDigest)
	}
}
