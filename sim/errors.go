package sim

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an operation that referenced a body id that is not
// live. Match with errors.Is.
var ErrNotFound = errors.New("body not found")

func notFound(id uint64) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}

// InvariantError reports a broken data-model contract: a non-positive mass
// or radius, or merge bookkeeping gone wrong (a group holding a stale id, a
// double removal). It signals a bug upstream, not a recoverable condition.
type InvariantError struct {
	ID     uint64
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant broken on body %d: %s", e.ID, e.Reason)
}
