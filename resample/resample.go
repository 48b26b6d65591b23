// Package resample converts raw pointer events into a sequence of
// canvas-space samples whose successive positions differ by a configured
// arc length, with no smoothing beyond that uniform resampling.
package resample

import (
	"errors"
	"math"
)

// ErrInvalidInput is returned by BeginStroke for a non-positive or
// non-finite spacing, and by FeedInput when no stroke is active.
var ErrInvalidInput = errors.New("resample: invalid input")

// ErrNonMonotonicTimestamp is returned by FeedInput when the input's
// timestamp is earlier than the previous input's.
var ErrNonMonotonicTimestamp = errors.New("resample: non-monotonic timestamp")

// Config carries the resampler's per-stroke configuration.
type Config struct {
	SpacingPixels float32
}

// StrokeContext identifies the stroke session and pointer device a
// resampler instance is currently tracking.
type StrokeContext struct {
	SessionId uint64
	PointerId uint64
}

// RawPointerInput is one raw sample from the pointer device. Pressure,
// tilt and twist are optional; a zero value means "not reported" and
// defaults are substituted (pressure 1.0, tilt/twist 0.0).
type RawPointerInput struct {
	TimestampMicros uint64
	ScreenX         float32
	ScreenY         float32
	Pressure        *float32
	TiltXDegrees    *float32
	TiltYDegrees    *float32
	TwistDegrees    *float32
}

// Sample is one emitted, uniformly-spaced canvas-space sample.
type Sample struct {
	TimestampMicros       uint64
	CanvasX               float32
	CanvasY               float32
	Pressure              float32
	VelocityPixelsPerSec  float32
	TiltXDegrees          float32
	TiltYDegrees          float32
	TwistDegrees          float32
}

// Emitter receives samples as the resampler produces them.
type Emitter interface {
	EmitSample(Sample)
}

type point struct {
	timestampMicros uint64
	canvasX         float32
	canvasY         float32
	pressure        float32
	tiltXDegrees    float32
	tiltYDegrees    float32
	twistDegrees    float32
}

// Resampler is a no-smoothing, uniform-arc-length resampler. It holds
// per-stroke state only; a single instance is reused across strokes via
// BeginStroke/EndStroke.
type Resampler struct {
	active                  bool
	spacingPixels           float32
	lastInput               *point
	lastEmitted             *point
	distanceSinceLastSample float32
}

// New returns a Resampler with no active stroke.
func New() *Resampler {
	return &Resampler{}
}

// BeginStroke resets all per-stroke state and activates the resampler for
// a new stroke. Returns ErrInvalidInput if spacing is non-positive or
// non-finite.
func (r *Resampler) BeginStroke(_ StrokeContext, cfg Config) error {
	if !isFinitePositive(cfg.SpacingPixels) {
		return ErrInvalidInput
	}
	r.active = true
	r.spacingPixels = cfg.SpacingPixels
	r.lastInput = nil
	r.lastEmitted = nil
	r.distanceSinceLastSample = 0
	return nil
}

// EndStroke clears the active stroke context. It does not flush a
// trailing partial segment.
func (r *Resampler) EndStroke() {
	r.active = false
}

// FeedInput processes one raw pointer input, emitting zero or more
// uniformly-spaced samples to emitter.
//
// The first input after BeginStroke emits immediately with velocity 0.
// Subsequent inputs treat [previous, current] as a straight line and
// advance along it emitting a sample every time accumulated distance
// reaches the configured spacing, interpolating position, pressure,
// tilt and twist linearly, and rounding interpolated timestamps to the
// nearest whole microsecond.
func (r *Resampler) FeedInput(input RawPointerInput, emitter Emitter) error {
	if !r.active {
		return ErrInvalidInput
	}

	current := point{
		timestampMicros: input.TimestampMicros,
		canvasX:         input.ScreenX,
		canvasY:         input.ScreenY,
		pressure:        orDefault(input.Pressure, 1.0),
		tiltXDegrees:    orDefault(input.TiltXDegrees, 0.0),
		tiltYDegrees:    orDefault(input.TiltYDegrees, 0.0),
		twistDegrees:    orDefault(input.TwistDegrees, 0.0),
	}

	if r.lastInput == nil {
		r.emit(current, emitter)
		r.lastInput = &current
		r.distanceSinceLastSample = 0
		return nil
	}

	previous := *r.lastInput
	if current.timestampMicros < previous.timestampMicros {
		return ErrNonMonotonicTimestamp
	}

	segmentStart := previous
	segmentEnd := current
	segmentLength := distance(segmentStart, segmentEnd)

	for r.distanceSinceLastSample+segmentLength >= r.spacingPixels {
		distanceToNext := r.spacingPixels - r.distanceSinceLastSample
		var t float32
		if segmentLength != 0 {
			t = distanceToNext / segmentLength
		}

		next := interpolate(segmentStart, segmentEnd, t)
		r.emit(next, emitter)
		r.distanceSinceLastSample = 0
		segmentStart = next
		segmentLength = distance(segmentStart, segmentEnd)
	}

	r.distanceSinceLastSample += segmentLength
	r.lastInput = &current
	return nil
}

func (r *Resampler) emit(p point, emitter Emitter) {
	var velocity float32
	if r.lastEmitted != nil {
		prev := *r.lastEmitted
		deltaMicros := p.timestampMicros - prev.timestampMicros
		if deltaMicros != 0 {
			dist := distance(prev, p)
			velocity = dist / (float32(deltaMicros) / 1_000_000.0)
		}
	}

	emitter.EmitSample(Sample{
		TimestampMicros:      p.timestampMicros,
		CanvasX:              p.canvasX,
		CanvasY:              p.canvasY,
		Pressure:             p.pressure,
		VelocityPixelsPerSec: velocity,
		TiltXDegrees:         p.tiltXDegrees,
		TiltYDegrees:         p.tiltYDegrees,
		TwistDegrees:         p.twistDegrees,
	})
	r.lastEmitted = &p
}

func distance(a, b point) float32 {
	dx := b.canvasX - a.canvasX
	dy := b.canvasY - a.canvasY
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

func interpolate(start, end point, t float32) point {
	deltaMicros := end.timestampMicros - start.timestampMicros
	return point{
		timestampMicros: start.timestampMicros + uint64(math.Round(float64(deltaMicros)*float64(t))),
		canvasX:         start.canvasX + (end.canvasX-start.canvasX)*t,
		canvasY:         start.canvasY + (end.canvasY-start.canvasY)*t,
		pressure:        start.pressure + (end.pressure-start.pressure)*t,
		tiltXDegrees:    start.tiltXDegrees + (end.tiltXDegrees-start.tiltXDegrees)*t,
		tiltYDegrees:    start.tiltYDegrees + (end.tiltYDegrees-start.tiltYDegrees)*t,
		twistDegrees:    start.twistDegrees + (end.twistDegrees-start.twistDegrees)*t,
	}
}

func isFinitePositive(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && v > 0
}

func orDefault(v *float32, def float32) float32 {
	if v == nil {
		return def
	}
	return *v
}
