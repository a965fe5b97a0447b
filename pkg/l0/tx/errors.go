package tx

import "fmt"

// InvariantError indicates the queue state is inconsistent.
// It's raised by panic as it can only be caused by a defect.
type InvariantError struct {
	Active bool
	Len    int
	Head   bool
}

// Error implements error.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("transmit queue invariant violated: active=%v len=%d head=%v", e.Active, e.Len, e.Head)
}
