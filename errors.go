package treemesh

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four kinds named in the mesh's error-handling design.
// Use errors.Is against these; the concrete types below carry the detail.
var (
	ErrInvalidSpec        = errors.New("treemesh: invalid spec")
	ErrOutOfBounds        = errors.New("treemesh: out of bounds")
	ErrInvariantViolation = errors.New("treemesh: invariant violation")
	ErrUnsupported        = errors.New("treemesh: unsupported")
)

// InvalidSpecError reports a malformed mesh construction argument: a
// spacings length that is not 2^levels, a non-positive spacing, or an axis
// count outside {2,3}.
type InvalidSpecError struct {
	Msg string
}

func (e *InvalidSpecError) Error() string { return "treemesh: invalid spec: " + e.Msg }
func (e *InvalidSpecError) Unwrap() error { return ErrInvalidSpec }

// OutOfBoundsError reports a refine/coarsen request that cannot be honored:
// the cell is not an active leaf, refining would exceed the max level, or
// coarsening is missing one or more sibling leaves.
type OutOfBoundsError struct {
	Cell CellID
	Msg  string
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("treemesh: out of bounds: cell %d: %s", e.Cell, e.Msg)
}
func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// InvariantViolationError reports a leaf set that an operation cannot work
// with: PermuteCC, PermuteF and PermuteE return it when the mesh is not
// uniformly refined to Levels(). Number checks neither tiling nor level
// balance and does not return it.
type InvariantViolationError struct {
	Msg string
}

func (e *InvariantViolationError) Error() string {
	return "treemesh: invariant violation: " + e.Msg
}
func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }

// UnsupportedError is raised for operator requests the mesh does not
// provide: EdgeCurl and PermuteE on a 2D mesh, and any Deflation kind other
// than DeflationCC.
type UnsupportedError struct {
	Msg string
}

func (e *UnsupportedError) Error() string { return "treemesh: unsupported: " + e.Msg }
func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }
