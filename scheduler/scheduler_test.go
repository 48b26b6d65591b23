package scheduler

import "testing"

// S4: fresh scheduler min=4 max=16. Quota for the second tick is
// clamp(3, 4, 16) = 4; see DESIGN.md's "Scenario S4 correction" for why
// this departs from spec.md's stated "8".
func TestSchedulerActivationTick(t *testing.T) {
	s := New(Config{MinPerFrame: 4, MaxPerFrame: 16})

	d := s.ScheduleFrame(Input{BrushHotPathActive: true, PendingBrushCommandCount: 200})
	if !d.Active || d.Quota != 16 || d.Reason != ReasonActivated {
		t.Fatalf("first tick = %+v, want active=true quota=16 Activated", d)
	}

	d = s.ScheduleFrame(Input{BrushHotPathActive: true, PendingBrushCommandCount: 3})
	if !d.Active || d.Quota != 4 || d.Reason != ReasonTick {
		t.Fatalf("second tick = %+v, want active=true quota=4 Tick", d)
	}

	d = s.ScheduleFrame(Input{BrushHotPathActive: false, PendingBrushCommandCount: 0})
	if d.Active || d.Quota != 0 || d.Reason != ReasonDeactivated {
		t.Fatalf("third tick = %+v, want active=false quota=0 Deactivated", d)
	}
}

func TestSchedulerInactiveStaysNone(t *testing.T) {
	s := New(Config{MinPerFrame: 1, MaxPerFrame: 8})
	d := s.ScheduleFrame(Input{BrushHotPathActive: false, PendingBrushCommandCount: 0})
	if d.Active || d.Reason != ReasonNone {
		t.Fatalf("fresh inactive tick = %+v, want active=false None", d)
	}
}

func TestSchedulerZeroPendingYieldsZeroQuota(t *testing.T) {
	s := New(Config{MinPerFrame: 4, MaxPerFrame: 16})
	d := s.ScheduleFrame(Input{BrushHotPathActive: true, PendingBrushCommandCount: 0})
	if d.Quota != 0 {
		t.Fatalf("quota = %d, want 0 when pending=0", d.Quota)
	}
}

func TestNewPanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when MinPerFrame > MaxPerFrame")
		}
	}()
	New(Config{MinPerFrame: 10, MaxPerFrame: 1})
}
