// Package timectrl drives simulation time for the scenario replanner: it
// steps a simulated clock and notifies listeners on every tick.
package timectrl

import (
	"context"
	"sync"
	"time"
)

// Mode describes how the TimeController advances simulation time.
type Mode int

const (
	// RealTime advances according to wall-clock time.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run while still stepping by Tick.
	Accelerated
)

// TimeController steps simulation time and notifies registered listeners.
type TimeController struct {
	mu        sync.RWMutex
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	currentTime time.Time

	listeners []func(time.Time)
}

// NewTimeController constructs a controller.
func NewTimeController(start time.Time, tick time.Duration, mode Mode) *TimeController {
	return &TimeController{
		StartTime:   start,
		Tick:        tick,
		Mode:        mode,
		currentTime: start,
	}
}

// Now returns the current simulation time.
func (tc *TimeController) Now() time.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentTime
}

// AddListener registers a callback invoked on every tick. Listeners must
// be registered before Run starts.
func (tc *TimeController) AddListener(fn func(time.Time)) {
	tc.listeners = append(tc.listeners, fn)
}

// Run advances simulation time until duration has elapsed in simulation
// time or ctx is done. In RealTime mode each tick waits for the wall
// clock; in Accelerated mode the loop steps as fast as listeners allow.
func (tc *TimeController) Run(ctx context.Context, duration time.Duration) {
	tc.mu.Lock()
	simTime := tc.StartTime
	tc.currentTime = simTime
	tc.mu.Unlock()

	var ticker *time.Ticker
	if tc.Mode == RealTime {
		ticker = time.NewTicker(tc.Tick)
		defer ticker.Stop()
	}

	elapsed := time.Duration(0)
	for {
		if duration > 0 && elapsed >= duration {
			return
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return
		}

		simTime = simTime.Add(tc.Tick)
		elapsed += tc.Tick

		tc.mu.Lock()
		tc.currentTime = simTime
		tc.mu.Unlock()

		for _, fn := range tc.listeners {
			fn(simTime)
		}
	}
}
