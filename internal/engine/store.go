// Package engine implements the file-backed record store, the in-memory entity
// cache mirrored from it, and registration-id allocation.
package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no persisted unit exists for an entity and id.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when inserting over an existing persisted unit.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrNotObject is returned when a persisted unit or payload is not a JSON object.
	ErrNotObject = errors.New("record must be a JSON object")
	// ErrTrailingData is returned when a payload holds more than one JSON value.
	ErrTrailingData = errors.New("unexpected data after JSON object")
)

// KeyError reports a missing or conflicting record. Its message is safe to
// show to API callers.
type KeyError struct {
	Entity string
	ID     string
	Err    error
}

func (e *KeyError) Error() string {
	state := "not found"
	if errors.Is(e.Err, ErrAlreadyExists) {
		state = "already exists"
	}
	return fmt.Sprintf("%s %s %s.", capitalize(e.Entity), e.ID, state)
}

func (e *KeyError) Unwrap() error { return e.Err }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

//go:generate mockgen -destination=../service/mock_store_test.go -package=service . RecordStore

// RecordStore is per-entity-type CRUD over individually addressed records.
// Insert, Update, Delete and Get are gated on the existence of the unit.
type RecordStore interface {
	// Insert persists rec at (entity, id). Fails with ErrAlreadyExists.
	Insert(entity, id string, rec Record) error
	// Update shallow-merges partial over the persisted record and returns the
	// merged result. Fails with ErrNotFound.
	Update(entity, id string, partial Record) (Record, error)
	// Delete removes the unit at (entity, id). Fails with ErrNotFound.
	Delete(entity, id string) error
	// Get returns the persisted record. Fails with ErrNotFound.
	Get(entity, id string) (Record, error)
	// GetAll returns every persisted record of an entity type in no particular order.
	GetAll(entity string) ([]Record, error)
}
