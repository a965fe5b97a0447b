package control

import "fmt"

// RangeError rejects a value outside the accepted range.
type RangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

// Error implements error.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Name, e.Min, e.Max, e.Value)
}
