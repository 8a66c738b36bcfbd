// Package kb holds the planner's in-memory plan store: problem instances
// keyed by ID and the allocations computed for them.
package kb

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/power-planner/core"
)

var (
	// ErrPlanExists is returned when adding a problem under an ID that is
	// already taken.
	ErrPlanExists = errors.New("problem already exists")
	// ErrPlanNotFound is returned for lookups of unknown problem IDs.
	ErrPlanNotFound = errors.New("problem not found")
	// ErrPlanBadInput is returned when the stored data would be unusable.
	ErrPlanBadInput = errors.New("bad plan input")
)

// StoreMetricsRecorder receives the store's sizes after every mutation.
// Implemented by the observability collector.
type StoreMetricsRecorder interface {
	SetStoreCounts(problems, allocations int)
}

// Option configures a PlanStore.
type Option func(*PlanStore)

// WithMetricsRecorder wires a recorder that tracks the store's sizes.
func WithMetricsRecorder(rec StoreMetricsRecorder) Option {
	return func(s *PlanStore) { s.recorder = rec }
}

// PlanStore is an in-memory, thread-safe store for problems and their
// allocations. Allocations are keyed by the problem they answer.
type PlanStore struct {
	mu sync.RWMutex

	problems    map[string]*core.Problem
	allocations map[string]*core.Allocation

	recorder StoreMetricsRecorder
}

// NewPlanStore constructs an empty store.
func NewPlanStore(opts ...Option) *PlanStore {
	s := &PlanStore{
		problems:    make(map[string]*core.Problem),
		allocations: make(map[string]*core.Allocation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddProblem stores a new problem. It returns ErrPlanExists if the ID is
// already taken and ErrPlanBadInput for an empty ID or nil problem.
func (s *PlanStore) AddProblem(id string, p *core.Problem) error {
	if id == "" || p == nil {
		return fmt.Errorf("%w: empty id or nil problem", ErrPlanBadInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.problems[id]; exists {
		return fmt.Errorf("%w: %q", ErrPlanExists, id)
	}
	s.problems[id] = p
	s.notifyLocked()
	return nil
}

// PutProblem stores a problem, replacing any previous one under the same
// ID. A replaced problem's allocation is dropped; it answered stale data.
func (s *PlanStore) PutProblem(id string, p *core.Problem) error {
	if id == "" || p == nil {
		return fmt.Errorf("%w: empty id or nil problem", ErrPlanBadInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.problems[id] = p
	delete(s.allocations, id)
	s.notifyLocked()
	return nil
}

// GetProblem returns the stored problem for id.
func (s *PlanStore) GetProblem(id string) (*core.Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.problems[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlanNotFound, id)
	}
	return p, nil
}

// ListProblemIDs returns the stored problem IDs in sorted order.
func (s *PlanStore) ListProblemIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.problems))
	for id := range s.problems {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetAllocation records the allocation computed for a stored problem. The
// problem must exist.
func (s *PlanStore) SetAllocation(id string, a *core.Allocation) error {
	if a == nil {
		return fmt.Errorf("%w: nil allocation", ErrPlanBadInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.problems[id]; !ok {
		return fmt.Errorf("%w: %q", ErrPlanNotFound, id)
	}
	s.allocations[id] = a
	s.notifyLocked()
	return nil
}

// GetAllocation returns the allocation recorded for a problem, if any.
func (s *PlanStore) GetAllocation(id string) (*core.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.allocations[id]
	if !ok {
		return nil, fmt.Errorf("%w: no allocation for %q", ErrPlanNotFound, id)
	}
	return a, nil
}

// DeleteProblem removes a problem and its allocation.
func (s *PlanStore) DeleteProblem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.problems[id]; !ok {
		return fmt.Errorf("%w: %q", ErrPlanNotFound, id)
	}
	delete(s.problems, id)
	delete(s.allocations, id)
	s.notifyLocked()
	return nil
}

// notifyLocked pushes the current sizes to the recorder. Callers hold mu.
func (s *PlanStore) notifyLocked() {
	if s.recorder != nil {
		s.recorder.SetStoreCounts(len(s.problems), len(s.allocations))
	}
}
