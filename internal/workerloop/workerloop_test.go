// Copyright 2025 The Glaphica Authors
// SPDX-License-Identifier: MIT

package workerloop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/glaphica/paintcore/dispatcher"
)

type countingTicker struct {
	ticks       atomic.Int32
	shutdownAt  int32
	shutdownMsg string
}

func (c *countingTicker) Tick() dispatcher.TickResult {
	n := c.ticks.Add(1)
	if c.shutdownAt != 0 && n >= c.shutdownAt {
		return dispatcher.TickResult{ShutdownRequested: true, ShutdownReason: c.shutdownMsg}
	}
	return dispatcher.TickResult{CommandsExecuted: 1}
}

func TestLoopStopsOnShutdownResult(t *testing.T) {
	ticker := &countingTicker{shutdownAt: 3, shutdownMsg: "done"}
	loop := New(ticker)
	loop.Start()
	loop.Wait()

	if loop.ShutdownReason != "done" {
		t.Fatalf("ShutdownReason = %q, want %q", loop.ShutdownReason, "done")
	}
	if ticker.ticks.Load() != 3 {
		t.Fatalf("ticks = %d, want 3", ticker.ticks.Load())
	}
}

func TestLoopStopsOnExplicitStop(t *testing.T) {
	ticker := &countingTicker{}
	loop := New(ticker)
	loop.Start()

	time.Sleep(5 * time.Millisecond)
	loop.Stop()
	loop.Wait()

	if ticker.ticks.Load() == 0 {
		t.Fatal("expected at least one tick before stop")
	}
}
