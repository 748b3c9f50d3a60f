package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// IDDigits is the zero-padded width of the counter part of a registration id.
const IDDigits = 7

const maxCounter = 9999999

var (
	// ErrInvalidID is returned when an id does not match <prefix><7 digits>.
	ErrInvalidID = errors.New("invalid registration id")
	// ErrIDSpaceExhausted is returned once the counter reaches its maximum.
	ErrIDSpaceExhausted = errors.New("registration id space exhausted")
)

// ZeroID is the identity issued before any other, e.g. EMP0000000.
func ZeroID(prefix string) string {
	return FormatID(prefix, 0)
}

// FormatID renders n with the fixed-width padding that keeps lexical order
// equal to numeric order.
func FormatID(prefix string, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, IDDigits, n)
}

// ParseID returns the counter of a well-formed id.
func ParseID(prefix, id string) (int, error) {
	digits, ok := strings.CutPrefix(id, prefix)
	if !ok || len(digits) != IDDigits {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return strconv.Atoi(digits)
}

// Allocator hands out monotonically increasing ids. It is not safe for
// concurrent use; callers serialize access.
type Allocator struct {
	prefix string
	last   string
}

// NewAllocator returns an allocator seeded at the zero identity.
func NewAllocator(prefix string) *Allocator {
	return &Allocator{prefix: prefix, last: ZeroID(prefix)}
}

// Last returns the last issued (or seeded) id.
func (a *Allocator) Last() string { return a.last }

// Seed makes id the last issued identity.
func (a *Allocator) Seed(id string) error {
	if _, err := ParseID(a.prefix, id); err != nil {
		return err
	}
	a.last = id
	return nil
}

// Allocate increments the last issued id and returns it.
func (a *Allocator) Allocate() (string, error) {
	n, err := ParseID(a.prefix, a.last)
	if err != nil {
		return "", err
	}
	if n >= maxCounter {
		return "", ErrIDSpaceExhausted
	}
	a.last = FormatID(a.prefix, n+1)
	return a.last, nil
}
