package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"memory_mapping/internal/model"
)

// LatestCapacity is the size of the latest-memories window.
const LatestCapacity = 30

// MaxOwnerLength bounds owner identities in characters; owners are keyed
// columns in the mysql store.
const MaxOwnerLength = 255

var ErrInvalidInput = errors.New("invalid input")

// Validate checks the fields the store relies on. Description and price are
// opaque labels: only their encoding is checked, so every store keeps the
// exact text it was given.
func Validate(memory model.Memory) error {
	if memory.MemoryID == "" {
		return fmt.Errorf("%w: memory id is required", ErrInvalidInput)
	}
	if memory.Owner == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(memory.Owner) > MaxOwnerLength {
		return fmt.Errorf("%w: owner longer than %d characters", ErrInvalidInput, MaxOwnerLength)
	}
	for name, v := range map[string]string{
		"memory id":   memory.MemoryID,
		"owner":       memory.Owner,
		"description": memory.Description,
		"price":       memory.Price,
	} {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidInput, name)
		}
	}
	return nil
}
