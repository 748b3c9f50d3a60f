package engine

import (
	"errors"
	"fmt"
)

// Migrate copies every record of entity from src to dst, keyed by its regId.
// Records dst already holds are left untouched. It returns how many records
// were copied.
// This works for:
// - Live data dir -> Backup dir
// - Backup dir -> Fresh data dir (The "Restore")
func Migrate(src, dst RecordStore, entity string) (int, error) {
	// 1. Get every record from the source
	recs, err := src.GetAll(entity)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s records: %w", entity, err)
	}

	copied := 0
	for _, rec := range recs {
		id, ok := rec.ID()
		if !ok {
			continue
		}

		// 2. Push it into the destination
		err := dst.Insert(entity, id, rec)
		if errors.Is(err, ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("failed to copy %s %s: %w", entity, id, err)
		}
		copied++
	}

	return copied, nil
}
