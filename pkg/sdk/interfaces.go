package sdk

import (
	"errors"
	"fmt"
)

// ErrUnreachable is returned when the registry cannot be contacted.
var ErrUnreachable = errors.New("registry unreachable")

// Record is one employee as returned by the registry. Numbers are kept as
// json.Number so integers survive the round trip.
type Record = map[string]any

// APIError is a failure reported by the registry itself.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// --- Functional Interfaces ---

// Reader defines the lookup operations.
type Reader interface {
	List() ([]Record, error)
	Get(regID string) (Record, error)
}

// Writer defines the mutating operations.
type Writer interface {
	Create(rec Record) (string, error)
	Update(rec Record) error
	Delete(regID string) error
}

// --- Composite Interfaces ---

// Registry is the primary interface for talking to the employee registry.
type Registry interface {
	Reader
	Writer
}
