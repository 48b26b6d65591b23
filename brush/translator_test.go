package brush

import (
	"testing"

	"github.com/glaphica/paintcore/chunk"
)

type recordingOutput struct {
	commands []Command
}

func (o *recordingOutput) Push(c Command) bool {
	o.commands = append(o.commands, c)
	return true
}

func chunkOf(session uint64, starts, ends bool, samples int) *chunk.SampleChunk {
	x := make([]float32, samples)
	return &chunk.SampleChunk{SessionId: session, StartsStroke: starts, EndsStroke: ends, X: x}
}

// S3: chunk A (session=100, starts,ends, 1 sample) then chunk B
// (session=101, starts, not ends, 1 sample) produces:
// Begin(100), Push(100), End(100), Merge(100), Begin(101), Push(101).
func TestTranslatorFlushesPendingMergeBeforeNewSession(t *testing.T) {
	tr := NewTranslator(TranslatorConfig{TargetLayerId: 7})
	out := &recordingOutput{}

	tr.Process(chunkOf(100, true, true, 1), out)
	tr.Process(chunkOf(101, true, false, 1), out)

	wantKinds := []CommandKind{KindBeginStroke, KindPushDabChunk, KindEndStroke, KindMergeBuffer, KindBeginStroke, KindPushDabChunk}
	if len(out.commands) != len(wantKinds) {
		t.Fatalf("got %d commands, want %d", len(out.commands), len(wantKinds))
	}
	for i, want := range wantKinds {
		if out.commands[i].Kind != want {
			t.Fatalf("commands[%d].Kind = %v, want %v", i, out.commands[i].Kind, want)
		}
	}
	if out.commands[0].Begin.SessionId != 100 {
		t.Fatalf("Begin session = %d, want 100", out.commands[0].Begin.SessionId)
	}
	if out.commands[3].Merge.SessionId != 100 {
		t.Fatalf("Merge session = %d, want 100", out.commands[3].Merge.SessionId)
	}
	if out.commands[4].Begin.SessionId != 101 {
		t.Fatalf("second Begin session = %d, want 101", out.commands[4].Begin.SessionId)
	}
}

func TestTranslatorPanicsOnBeginWithOwnMergePending(t *testing.T) {
	tr := NewTranslator(TranslatorConfig{})
	out := &recordingOutput{}
	tr.Process(chunkOf(1, true, true, 1), out)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on BeginStroke while own MergeBuffer pending")
		}
	}()
	tr.Process(chunkOf(1, true, false, 1), out)
}

func TestTranslatorPanicsOnDoubleBegin(t *testing.T) {
	tr := NewTranslator(TranslatorConfig{})
	out := &recordingOutput{}
	tr.Process(chunkOf(1, true, false, 1), out)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on double BeginStroke for an in-flight session")
		}
	}()
	tr.Process(chunkOf(1, true, false, 1), out)
}
