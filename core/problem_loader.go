// core/problem_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"
)

// LoadProblem reads one problem instance from JSON. Decode errors and
// invariant violations are both reported as ErrMalformedInput so callers
// can map them uniformly.
func LoadProblem(r io.Reader) (*Problem, error) {
	var p Problem
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode failed: %v", ErrMalformedInput, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
