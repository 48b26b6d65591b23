package protocol

import "testing"

// S5: A has present=10,submit=2,executed=3,complete=4, receipts keyed
// [1], errors keyed [2]. B has present=9,submit=20,executed=30,complete=40,
// receipts keyed [1,3], errors keyed [2,4]. Merging yields
// present=10,submit=20,executed=30,complete=40, 2 receipts and 2 errors.
// A second merge against B is absorptive. Receipts are FramePresented
// keyed by ExecutedTileCount, errors are Present keyed by Cause; the
// "latest payload version wins" policy is covered by
// TestMergeVecDuplicateResolverKeepsLatestPayloadVersion.
func TestMergeMailboxS5(t *testing.T) {
	a := FeedbackFrame{
		Waterlines: Waterlines{PresentFrameId: 10, SubmitWaterline: 2, ExecutedBatchWaterline: 3, CompleteWaterline: 4},
		Receipts:   []Receipt{{Kind: ReceiptFramePresented, ExecutedTileCount: 1}},
		Errors:     []ErrorEntry{{Kind: ErrorPresent, Cause: "2"}},
	}
	b := FeedbackFrame{
		Waterlines: Waterlines{PresentFrameId: 9, SubmitWaterline: 20, ExecutedBatchWaterline: 30, CompleteWaterline: 40},
		Receipts: []Receipt{
			{Kind: ReceiptFramePresented, ExecutedTileCount: 1},
			{Kind: ReceiptFramePresented, ExecutedTileCount: 3},
		},
		Errors: []ErrorEntry{{Kind: ErrorPresent, Cause: "2"}, {Kind: ErrorPresent, Cause: "4"}},
	}

	state := NewMergeState()
	merged := MergeMailbox(a, b, state)

	if merged.Waterlines != (Waterlines{PresentFrameId: 10, SubmitWaterline: 20, ExecutedBatchWaterline: 30, CompleteWaterline: 40}) {
		t.Fatalf("waterlines = %+v, want max of both", merged.Waterlines)
	}
	if len(merged.Receipts) != 2 {
		t.Fatalf("receipts = %d, want 2", len(merged.Receipts))
	}
	if len(merged.Errors) != 2 {
		t.Fatalf("errors = %d, want 2", len(merged.Errors))
	}

	again := MergeMailbox(merged, b, state)
	if len(again.Receipts) != 2 || len(again.Errors) != 2 {
		t.Fatalf("second merge against B should be absorptive, got %+v", again)
	}
	if again.Waterlines != merged.Waterlines {
		t.Fatalf("absorptive merge changed waterlines: %+v vs %+v", again.Waterlines, merged.Waterlines)
	}
}

// P6 / S6-adjacent: merge_vec panics if current already has a duplicate
// key before the call.
func TestMergeVecPanicsOnPreexistingDuplicate(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate merge key already present in current")
		}
	}()

	current := []Receipt{
		{Kind: ReceiptFramePresented, ExecutedTileCount: 1},
		{Kind: ReceiptFramePresented, ExecutedTileCount: 1},
	}
	incoming := []Receipt{{Kind: ReceiptFramePresented, ExecutedTileCount: 2}}
	MergeVec(current, incoming, NewMergeIndex[ReceiptKey]())
}

func TestMergeVecAppendsNewKeys(t *testing.T) {
	current := []Receipt{{Kind: ReceiptFramePresented, ExecutedTileCount: 1}}
	incoming := []Receipt{{Kind: ReceiptFramePresented, ExecutedTileCount: 2}}
	merged := MergeVec(current, incoming, NewMergeIndex[ReceiptKey]())
	if len(merged) != 2 {
		t.Fatalf("merged = %d entries, want 2", len(merged))
	}
}

// versionedTestItem stands in for a receipt variant with a custom merge
// policy: on a duplicate key, keep whichever entry carries the higher
// PayloadVersion rather than letting the incoming entry overwrite blindly.
type versionedTestItem struct {
	Key            uint64
	PayloadVersion uint64
}

func (v versionedTestItem) MergeKey() uint64 { return v.Key }

func (v versionedTestItem) MergeDuplicate(existing versionedTestItem) versionedTestItem {
	if v.PayloadVersion > existing.PayloadVersion {
		return v
	}
	return existing
}

func TestMergeVecDuplicateResolverKeepsLatestPayloadVersion(t *testing.T) {
	current := []versionedTestItem{{Key: 1, PayloadVersion: 10}}
	incoming := []versionedTestItem{
		{Key: 1, PayloadVersion: 11},
		{Key: 2, PayloadVersion: 1},
	}

	merged := MergeVec(current, incoming, NewMergeIndex[uint64]())
	if len(merged) != 2 {
		t.Fatalf("merged = %d entries, want 2", len(merged))
	}
	if merged[0].PayloadVersion != 11 {
		t.Fatalf("key 1 payload version = %d, want 11 (latest wins)", merged[0].PayloadVersion)
	}

	// A second incoming entry with a stale version must not regress the
	// already-merged one.
	stale := []versionedTestItem{{Key: 1, PayloadVersion: 3}}
	merged = MergeVec(merged, stale, NewMergeIndex[uint64]())
	if merged[0].PayloadVersion != 11 {
		t.Fatalf("key 1 payload version = %d, want 11 (stale incoming must not regress)", merged[0].PayloadVersion)
	}
}
