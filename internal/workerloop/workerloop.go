// Copyright 2025 The Glaphica Authors
// SPDX-License-Identifier: MIT

// Package workerloop runs the GPU-executor dispatch loop on a dedicated
// OS thread: pop a budgeted batch of commands, execute them, publish
// feedback, sleep briefly when idle, repeat until shutdown.
package workerloop

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/glaphica/paintcore/dispatcher"
	"github.com/glaphica/paintcore/gpuqueue"
)

// Ticker is the subset of dispatcher.Dispatcher the loop drives. Declared
// as an interface so tests can substitute a counting stub.
type Ticker interface {
	Tick() dispatcher.TickResult
}

// Loop drives a Ticker's Tick method on a dedicated, LockOSThread'd
// goroutine until stopped or the ticker reports a shutdown.
type Loop struct {
	ticker Ticker
	stop   atomic.Bool
	done   chan struct{}

	ShutdownReason string
}

// New creates a Loop over the given ticker. Call Start to begin running
// it on its own OS thread.
func New(ticker Ticker) *Loop {
	return &Loop{ticker: ticker, done: make(chan struct{})}
}

// Start launches the loop goroutine. It locks the goroutine to its OS
// thread for the lifetime of the loop, matching the dedicated
// GPU-executor-thread model.
func (l *Loop) Start() {
	go l.run()
}

func (l *Loop) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.done)

	for !l.stop.Load() {
		result := l.ticker.Tick()
		if result.ShutdownRequested {
			l.ShutdownReason = result.ShutdownReason
			return
		}
		if result.CommandsExecuted == 0 {
			time.Sleep(gpuqueue.IdleSleep())
		}
	}
}

// Stop requests the loop exit after its current tick. It does not block;
// call Wait to join the loop goroutine.
func (l *Loop) Stop() {
	l.stop.Store(true)
}

// Wait blocks until the loop goroutine has exited.
func (l *Loop) Wait() {
	<-l.done
}
