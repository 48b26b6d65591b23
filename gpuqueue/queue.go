// Package gpuqueue pairs the two SPSC rings between the app thread and
// the GPU-executor thread: commands flow one way, merged feedback frames
// the other. Neither side blocks indefinitely.
package gpuqueue

import (
	"errors"
	"time"

	"github.com/glaphica/paintcore/internal/spsc"
	"github.com/glaphica/paintcore/protocol"
)

// ErrCommandQueueFull is returned to the app-side caller when the command
// ring has no room; this is surfaced as backpressure, never silently
// dropped.
var ErrCommandQueueFull = errors.New("gpuqueue: command queue full")

// ErrFeedbackQueueTimeout is returned by PushFeedback in non-debug mode
// when the feedback ring stays full for the full retry window.
var ErrFeedbackQueueTimeout = errors.New("gpuqueue: feedback queue timeout")

const (
	// CommandBudget is the maximum number of commands drained from the
	// command ring per GPU-executor tick.
	CommandBudget = 256

	idleSleep           = time.Millisecond
	feedbackRetryWindow = 5 * time.Millisecond
	feedbackRetryPause  = time.Millisecond
)

// Config carries both rings' fixed capacities and the feedback-full
// policy. MergeDebugDisabled mirrors spec's CLI surface
// (merge_debug_disabled): when false (debug mode), a full feedback ring
// is a protocol violation and PushFeedback panics; when true (release
// mode), PushFeedback retries for ~5ms and then returns
// ErrFeedbackQueueTimeout.
type Config struct {
	CommandCapacity      int
	FeedbackCapacity     int
	MergeDebugDisabled   bool
}

// CommandMsg wraps a protocol.Command so future control-plane message
// kinds can be added to the ring without changing its element type.
type CommandMsg struct {
	Command protocol.Command
}

// Queues holds both rings. The app thread owns the command producer and
// feedback consumer; the GPU-executor thread owns the command consumer
// and feedback producer.
type Queues struct {
	cfg      Config
	commands *spsc.Ring[CommandMsg]
	feedback *spsc.Ring[protocol.FeedbackFrame]
}

// New creates a Queues pair with the given config.
func New(cfg Config) *Queues {
	return &Queues{
		cfg:      cfg,
		commands: spsc.New[CommandMsg](cfg.CommandCapacity),
		feedback: spsc.New[protocol.FeedbackFrame](cfg.FeedbackCapacity),
	}
}

// PushCommand enqueues a command from the app thread. Returns
// ErrCommandQueueFull without blocking if the ring has no room.
func (q *Queues) PushCommand(msg CommandMsg) error {
	if !q.commands.Push(msg) {
		return ErrCommandQueueFull
	}
	return nil
}

// PopCommand dequeues the next command on the GPU-executor thread. The
// second return value is false if the ring is empty.
func (q *Queues) PopCommand() (CommandMsg, bool) {
	return q.commands.Pop()
}

// PushFeedback publishes one feedback frame from the GPU-executor
// thread, applying the debug/release full-queue policy described on
// Config.
func (q *Queues) PushFeedback(frame protocol.FeedbackFrame) error {
	if q.feedback.Push(frame) {
		return nil
	}

	if !q.cfg.MergeDebugDisabled {
		panic("gpuqueue: feedback queue full: protocol violation, receipts/errors must not be dropped")
	}

	deadline := time.Now().Add(feedbackRetryWindow)
	for {
		if q.feedback.Push(frame) {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrFeedbackQueueTimeout
		}
		time.Sleep(feedbackRetryPause)
	}
}

// PopFeedback dequeues the next feedback frame on the app thread. The
// second return value is false if the ring is empty.
func (q *Queues) PopFeedback() (protocol.FeedbackFrame, bool) {
	return q.feedback.Pop()
}

// IdleSleep is the duration the GPU-executor loop sleeps when it finds
// the command ring empty, matching spec's ~1ms idle cadence.
func IdleSleep() time.Duration { return idleSleep }
