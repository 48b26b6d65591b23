// Copyright 2025 The Glaphica Authors
// SPDX-License-Identifier: MIT

// Command paintcore runs the tile-paint engine core headless: it starts
// the GPU-executor dispatch loop, optionally seeds an atlas backend from
// an image, drives one synthetic stroke session through the
// resample/chunk/bridge/translate pipeline, and reports the resulting
// feedback before shutting down.
//
// Usage:
//
//	paintcore -image canvas.png -layout medium
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"

	"github.com/glaphica/paintcore/atlas"
	"github.com/glaphica/paintcore/brush"
	"github.com/glaphica/paintcore/chunk"
	"github.com/glaphica/paintcore/dispatcher"
	"github.com/glaphica/paintcore/driver"
	"github.com/glaphica/paintcore/gpuexec"
	"github.com/glaphica/paintcore/gpuqueue"
	"github.com/glaphica/paintcore/inputbridge"
	"github.com/glaphica/paintcore/internal/workerloop"
	"github.com/glaphica/paintcore/obs"
	"github.com/glaphica/paintcore/protocol"
	"github.com/glaphica/paintcore/resample"
	"github.com/glaphica/paintcore/scheduler"
)

var (
	imagePath        = flag.String("image", "", "seed image to tile into the atlas (optional)")
	layoutName       = flag.String("layout", "medium", "atlas layout: tiny, small, medium, large, huge")
	spacingPixels    = flag.Float64("spacing-pixels", 4, "uniform resampling spacing in pixels")
	maxSamplesChunk  = flag.Int("max-samples-per-chunk", 64, "max resampled points per chunk")
	bridgeCapacity   = flag.Int("bridge-capacity", 64, "input bridge ring capacity")
	commandCapacity  = flag.Int("command-capacity", 256, "app-to-executor command ring capacity")
	feedbackCapacity = flag.Int("feedback-capacity", 256, "executor-to-app feedback ring capacity")
	mergeDebugOff    = flag.Bool("merge-debug-disabled", false, "release-mode feedback queue policy (retry+timeout instead of panic)")
	minPerFrame      = flag.Uint("min-per-frame", 4, "scheduler minimum brush-command quota")
	maxPerFrame      = flag.Uint("max-per-frame", 64, "scheduler maximum brush-command quota")
	brushId          = flag.Uint64("brush-id", 1, "brush id attached to emitted BeginStroke commands")
	targetLayerId    = flag.Uint64("target-layer-id", 1, "target layer id for strokes and merges")
)

func parseLayout(name string) (atlas.Layout, error) {
	switch name {
	case "tiny":
		return atlas.LayoutTiny, nil
	case "small":
		return atlas.LayoutSmall, nil
	case "medium":
		return atlas.LayoutMedium, nil
	case "large":
		return atlas.LayoutLarge, nil
	case "huge":
		return atlas.LayoutHuge, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", name)
	}
}

func loadSeedImage(path string) (image.Image, error) {
	return imaging.Open(path)
}

func main() {
	flag.Parse()
	obs.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	log := obs.Logger()

	layout, err := parseLayout(*layoutName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	backend := atlas.NewBackend(layout, 0)
	if *imagePath != "" {
		img, err := loadSeedImage(*imagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed image: %v\n", err)
			os.Exit(1)
		}
		ids, err := backend.SeedFromImage(img)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed image: %v\n", err)
			os.Exit(1)
		}
		log.Info("seeded atlas from image", "path", *imagePath, "tiles", len(ids))
	}

	queues := gpuqueue.New(gpuqueue.Config{
		CommandCapacity:    *commandCapacity,
		FeedbackCapacity:   *feedbackCapacity,
		MergeDebugDisabled: *mergeDebugOff,
	})
	disp := dispatcher.New(&gpuexec.Noop{}, queues)
	loop := workerloop.New(disp)
	loop.Start()

	sched, err := newScheduler(uint32(*minPerFrame), uint32(*maxPerFrame))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		loop.Stop()
		loop.Wait()
		os.Exit(1)
	}

	bridge := inputbridge.New(inputbridge.Config{Capacity: *bridgeCapacity})
	pipeline := driver.New(bridge, driver.Config{
		Resample: resample.Config{SpacingPixels: float32(*spacingPixels)},
		Framer:   chunk.FramerConfig{MaxSamplesPerChunk: *maxSamplesChunk},
	})
	translator := brush.NewTranslator(brush.TranslatorConfig{
		BrushId:       *brushId,
		TargetLayerId: *targetLayerId,
	})

	runSyntheticStroke(pipeline, bridge, translator, sched, queues, log)

	_ = queues.PushCommand(gpuqueue.CommandMsg{Command: protocol.Command{
		Kind:           protocol.CommandShutdown,
		ShutdownReason: "synthetic run complete",
	}})
	loop.Wait()
	log.Info("shutdown", "reason", loop.ShutdownReason)

	drainFeedback(queues, log)
}

func newScheduler(min, max uint32) (s *scheduler.Scheduler, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scheduler config: %v", r)
		}
	}()
	return scheduler.New(scheduler.Config{MinPerFrame: min, MaxPerFrame: max}), nil
}

// commandCollector gathers brush.Command values emitted by a Translator so
// they can be enqueued as one EnqueueBrushCommands batch per frame.
type commandCollector struct {
	commands []brush.Command
}

func (c *commandCollector) Push(cmd brush.Command) bool {
	c.commands = append(c.commands, cmd)
	return true
}

// runSyntheticStroke drives one synthetic pointer stroke through the full
// producer pipeline and submits the resulting brush commands to the
// GPU-executor a frame at a time, using the scheduler's quota to decide
// how much to drain per tick.
func runSyntheticStroke(p *driver.Pipeline, bridge *inputbridge.Bridge, tr *brush.Translator, sched *scheduler.Scheduler, queues *gpuqueue.Queues, log *slog.Logger) {
	const sessionId, pointerId, frameSequenceId = 1, 1, 1

	if err := p.BeginStroke(sessionId, pointerId, frameSequenceId); err != nil {
		log.Error("begin stroke", "error", err)
		return
	}
	inputs := []resample.RawPointerInput{
		{TimestampMicros: 0, ScreenX: 0, ScreenY: 0},
		{TimestampMicros: 20000, ScreenX: 40, ScreenY: 0},
		{TimestampMicros: 40000, ScreenX: 40, ScreenY: 40},
	}
	for _, in := range inputs {
		if err := p.FeedInput(in); err != nil {
			log.Error("feed input", "error", err)
			return
		}
	}
	p.EndStroke()

	collector := &commandCollector{}
	for {
		c, ok := bridge.TryPop()
		if !ok {
			break
		}
		tr.Process(c, collector)
	}
	tr.Flush(collector)

	pending := collector.commands
	for frame := uint64(frameSequenceId); len(pending) > 0; frame++ {
		decision := sched.ScheduleFrame(scheduler.Input{
			FrameSequenceId:          frame,
			BrushHotPathActive:       true,
			PendingBrushCommandCount: uint32(len(pending)),
		})
		log.Info("frame scheduled", "active", decision.Active, "quota", decision.Quota, "reason", decision.Reason)
		if decision.Quota == 0 {
			log.Error("zero quota with brush commands pending", "pending", len(pending))
			return
		}

		batch := pending
		if int(decision.Quota) < len(batch) {
			batch = batch[:decision.Quota]
		}
		pending = pending[len(batch):]
		if err := queues.PushCommand(gpuqueue.CommandMsg{Command: protocol.Command{
			Kind:                 protocol.CommandEnqueueBrushCommands,
			EnqueueBrushCommands: batch,
		}}); err != nil {
			log.Error("enqueue brush commands", "error", err)
			return
		}
	}
}

func drainFeedback(queues *gpuqueue.Queues, log *slog.Logger) {
	for {
		frame, ok := queues.PopFeedback()
		if !ok {
			return
		}
		log.Info("feedback",
			"present_frame_id", frame.Waterlines.PresentFrameId,
			"submit_waterline", frame.Waterlines.SubmitWaterline,
			"executed_batch_waterline", frame.Waterlines.ExecutedBatchWaterline,
			"receipts", len(frame.Receipts),
			"errors", len(frame.Errors))
	}
}
