package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/satishkumarramakoti33/sb-works/internal/storage"
)

// mapRepoError maps storage errors to service errors.
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s", ErrConflict, operation)
	}
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}
