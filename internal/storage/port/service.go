package port

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
)

// ErrPartialDeletion matches any *PartialDeletionError.
var ErrPartialDeletion = errors.New("deletion incomplete")

// PartFailure describes one part whose artifact could not be removed.
type PartFailure struct {
	PartID         domain.PartID
	SequenceNumber int
	Err            error
}

// PartialDeletionError reports parts left behind by a delete. The file stays
// registered as not_ready so the delete can be retried.
type PartialDeletionError struct {
	FileID   domain.FileID
	Deleted  int
	Failures []PartFailure
}

func (e *PartialDeletionError) Error() string {
	ids := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, fmt.Sprintf("%d", f.PartID))
	}
	return fmt.Sprintf("%v: file %d, %d part(s) deleted, %d failed (parts %s)",
		ErrPartialDeletion, e.FileID, e.Deleted, len(e.Failures), strings.Join(ids, ","))
}

func (e *PartialDeletionError) Is(target error) bool {
	return target == ErrPartialDeletion
}

// StorageService defines the operations exposed to command surfaces.
type StorageService interface {
	// Put ingests the file at path and returns its id.
	Put(ctx context.Context, path string) (domain.FileID, error)

	// Get reassembles a ready file into the retrieval directory and returns the output path.
	Get(ctx context.Context, id domain.FileID) (string, error)

	// Delete removes the file and all its parts, or returns *PartialDeletionError.
	Delete(ctx context.Context, id domain.FileID) error

	// List returns every registered file ordered by id.
	List(ctx context.Context) []domain.File
}
