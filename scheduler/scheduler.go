// Package scheduler decides, once per frame, whether the brush pipeline
// is active and how many queued brush commands to drain.
package scheduler

import "fmt"

// Config bounds the quota FrameScheduler hands out. Min must not exceed
// Max; violating that is a programmer error (see ConfigError).
type Config struct {
	MinPerFrame uint32
	MaxPerFrame uint32
}

// ConfigError reports an invalid Config (Min > Max).
type ConfigError struct {
	Min uint32
	Max uint32
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scheduler: min_per_frame %d exceeds max_per_frame %d", e.Min, e.Max)
}

// Reason names why the scheduler reached its decision this frame.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonActivated
	ReasonTick
	ReasonDeactivated
)

func (r Reason) String() string {
	switch r {
	case ReasonActivated:
		return "activated"
	case ReasonTick:
		return "tick"
	case ReasonDeactivated:
		return "deactivated"
	default:
		return "none"
	}
}

// Input carries one frame's scheduling inputs.
type Input struct {
	FrameSequenceId        uint64
	BrushHotPathActive     bool
	PendingBrushCommandCount uint32

	// PreviousFrameGPUMicros is a reserved hook for future budget-aware
	// scheduling; ScheduleFrame never reads it.
	PreviousFrameGPUMicros *uint64
}

// Decision is the scheduler's per-frame output.
type Decision struct {
	Active bool
	Quota  uint32
	Reason Reason
}

// Scheduler tracks whether the brush pipeline was active on the previous
// frame, the only state its decision table depends on.
type Scheduler struct {
	cfg       Config
	wasActive bool
}

// New creates a Scheduler with the given config. Panics if cfg.MinPerFrame
// exceeds cfg.MaxPerFrame, matching spec's "violation is programmer
// error" classification for this particular misconfiguration.
func New(cfg Config) *Scheduler {
	if cfg.MinPerFrame > cfg.MaxPerFrame {
		panic(&ConfigError{Min: cfg.MinPerFrame, Max: cfg.MaxPerFrame})
	}
	return &Scheduler{cfg: cfg}
}

// ScheduleFrame applies the decision table from spec §4.6:
//
//	hot=true,  was_active=false -> active=true,  quota=clamp(pending), Activated
//	hot=true,  was_active=true  -> active=true,  quota=clamp(pending), Tick
//	hot=false, was_active=true  -> active=false, quota=0,              Deactivated
//	hot=false, was_active=false -> active=false, quota=0,              None
func (s *Scheduler) ScheduleFrame(in Input) Decision {
	var d Decision

	switch {
	case in.BrushHotPathActive && !s.wasActive:
		d = Decision{Active: true, Quota: s.clamp(in.PendingBrushCommandCount), Reason: ReasonActivated}
	case in.BrushHotPathActive && s.wasActive:
		d = Decision{Active: true, Quota: s.clamp(in.PendingBrushCommandCount), Reason: ReasonTick}
	case !in.BrushHotPathActive && s.wasActive:
		d = Decision{Active: false, Quota: 0, Reason: ReasonDeactivated}
	default:
		d = Decision{Active: false, Quota: 0, Reason: ReasonNone}
	}

	s.wasActive = d.Active
	return d
}

func (s *Scheduler) clamp(pending uint32) uint32 {
	if pending == 0 {
		return 0
	}
	if pending < s.cfg.MinPerFrame {
		return s.cfg.MinPerFrame
	}
	if pending > s.cfg.MaxPerFrame {
		return s.cfg.MaxPerFrame
	}
	return pending
}
