package timectrl

import (
	"context"
	"testing"
	"time"
)

func TestRunAdvancesSimTime(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	tc := NewTimeController(start, time.Minute, Accelerated)

	var ticks []time.Time
	tc.AddListener(func(simTime time.Time) {
		ticks = append(ticks, simTime)
	})

	tc.Run(context.Background(), 3*time.Minute)

	if len(ticks) != 3 {
		t.Fatalf("listener saw %d ticks, want 3", len(ticks))
	}
	for i, tick := range ticks {
		want := start.Add(time.Duration(i+1) * time.Minute)
		if !tick.Equal(want) {
			t.Errorf("tick %d = %v, want %v", i, tick, want)
		}
	}
	if got := tc.Now(); !got.Equal(start.Add(3 * time.Minute)) {
		t.Fatalf("Now() = %v, want %v", got, start.Add(3*time.Minute))
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	tc := NewTimeController(start, time.Minute, Accelerated)

	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	tc.AddListener(func(time.Time) {
		ticks++
		if ticks == 2 {
			cancel()
		}
	})

	// No duration bound: only the context stops the loop.
	tc.Run(ctx, 0)

	if ticks != 2 {
		t.Fatalf("listener saw %d ticks, want 2", ticks)
	}
}

func TestRunRealTimeFollowsWallClock(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	tc := NewTimeController(start, 5*time.Millisecond, RealTime)

	tc.Run(context.Background(), 15*time.Millisecond)

	expected := start.Add(15 * time.Millisecond)
	if got := tc.Now(); !got.Equal(expected) {
		t.Fatalf("Now() = %v, want %v", got, expected)
	}
}
