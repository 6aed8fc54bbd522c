package service

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/anthanhphan/go-chunk-storage/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// deleteService removes a file's artifacts and registry entries.
type deleteService struct {
	core *StorageServiceImpl
}

// newDeleteService creates the deletion use-case service.
func newDeleteService(core *StorageServiceImpl) *deleteService {
	return &deleteService{core: core}
}

// delete marks the file and its parts not_ready, deletes every artifact on
// the worker pool and drops the registry entries that succeeded. The file
// entry survives until all of its parts are gone, so a retry resumes where
// this call stopped.
func (s *deleteService) delete(ctx context.Context, id domain.FileID) error {
	if _, err := s.core.files.Transition(id, domain.StatusNotReady, nil); err != nil {
		return err
	}
	parts := s.core.parts.MarkNotReady(id)

	perr := &port.PartialDeletionError{FileID: id}
	for start := 0; start < len(parts); start += s.core.pool.Size() {
		batch := parts[start:min(start+s.core.pool.Size(), len(parts))]

		_, errs, dispatchErr := resilience.RunBatch(ctx, s.core.pool, batch, s.core.chunks.deleteChunk)
		for i, part := range batch {
			if errs[i] != nil {
				perr.Failures = append(perr.Failures, port.PartFailure{
					PartID:         part.ID,
					SequenceNumber: part.SequenceNumber,
					Err:            errs[i],
				})
				continue
			}
			if err := s.core.parts.Remove(part.ID); err != nil && !errors.Is(err, port.ErrPartNotFound) {
				perr.Failures = append(perr.Failures, port.PartFailure{PartID: part.ID, SequenceNumber: part.SequenceNumber, Err: err})
				continue
			}
			perr.Deleted++
		}
		if dispatchErr != nil {
			for _, part := range parts[start+len(batch):] {
				perr.Failures = append(perr.Failures, port.PartFailure{PartID: part.ID, SequenceNumber: part.SequenceNumber, Err: dispatchErr})
			}
			break
		}
	}

	if len(perr.Failures) > 0 {
		logger.Warnw("Delete incomplete",
			"file_id", id, "deleted", perr.Deleted, "failed", len(perr.Failures))
		return perr
	}

	if err := s.core.files.Remove(id); err != nil && !errors.Is(err, port.ErrFileNotFound) {
		return err
	}
	logger.Infow("Delete completed", "file_id", id, "number_of_parts", perr.Deleted)
	return nil
}
