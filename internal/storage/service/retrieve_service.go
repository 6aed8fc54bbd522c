package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/anthanhphan/go-chunk-storage/pkg/codec"
	"github.com/anthanhphan/go-chunk-storage/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/dustin/go-humanize"
)

// retrieveService reassembles stored chunks into a single output file.
type retrieveService struct {
	core *StorageServiceImpl
}

// newRetrieveService creates the retrieval use-case service.
func newRetrieveService(core *StorageServiceImpl) *retrieveService {
	return &retrieveService{core: core}
}

// get verifies and writes every chunk of a ready file in sequence order. The
// output only appears under its final name once every chunk verified.
func (s *retrieveService) get(ctx context.Context, id domain.FileID) (string, error) {
	file, err := s.core.files.Get(id)
	if err != nil {
		return "", err
	}
	if !file.IsReady() {
		return "", fmt.Errorf("%w: file %d is %s", port.ErrFileNotReady, id, file.Status)
	}

	parts := s.core.parts.ListByFile(id)
	if err := checkComplete(file, parts); err != nil {
		logger.Warnw("Retrieval refused", "file_id", id, "error", err.Error())
		return "", err
	}

	out, err := s.core.artifacts.CreateOutput(file.Name)
	if err != nil {
		return "", err
	}

	start := time.Now()
	if err := s.reassemble(ctx, parts, out); err != nil {
		if abortErr := out.Abort(); abortErr != nil {
			logger.Errorw("Failed to discard partial output", "file_id", id, "error", abortErr.Error())
		}
		logger.Errorw("Retrieval failed", "file_id", id, "error", err.Error())
		return "", fmt.Errorf("retrieve file %d: %w", id, err)
	}

	path, err := out.Commit()
	if err != nil {
		return "", err
	}

	logger.Infow("Retrieval completed",
		"file_id", id, "path", path, "number_of_parts", len(parts),
		"size", humanize.IBytes(uint64(file.Size)), "duration", time.Since(start).String())
	return path, nil
}

// reassemble loads parts batch by batch and appends them to out in order.
func (s *retrieveService) reassemble(ctx context.Context, parts []domain.FilePart, out port.Output) error {
	for next := 0; next < len(parts); {
		batch, err := s.admitBatch(ctx, parts[next:])
		if err != nil {
			return err
		}
		next += len(batch)

		results, errs, dispatchErr := resilience.RunBatch(ctx, s.core.pool, batch, s.core.chunks.loadChunk)
		s.core.memory.Release(s.core.opts.ChunkSize * int64(len(batch)))
		if dispatchErr != nil {
			return dispatchErr
		}

		for i, data := range results {
			if errs[i] != nil {
				return errs[i]
			}
			if _, err := out.Write(data); err != nil {
				return fmt.Errorf("%w: write part %d: %w", port.ErrArtifactIO, batch[i].ID, err)
			}
		}
	}
	return nil
}

// admitBatch admits chunk_size bytes per part for up to pool-size parts.
// It only waits for memory while holding none; once some parts are admitted
// and the next would block, the smaller batch is dispatched instead.
func (s *retrieveService) admitBatch(ctx context.Context, remaining []domain.FilePart) ([]domain.FilePart, error) {
	limit := min(s.core.pool.Size(), len(remaining))
	chunkSize := s.core.opts.ChunkSize

	admitted := 0
	for admitted < limit {
		if s.core.memory.TryAdmit(chunkSize) {
			admitted++
			continue
		}
		if admitted > 0 {
			break
		}
		if err := s.core.admit(ctx, chunkSize); err != nil {
			return nil, fmt.Errorf("admit %s: %w", humanize.IBytes(uint64(chunkSize)), err)
		}
		admitted++
	}
	return remaining[:admitted], nil
}

// checkComplete requires the parts to be exactly sequences 0..n-1, all ready.
func checkComplete(file domain.File, parts []domain.FilePart) error {
	if len(parts) != file.NumberOfParts {
		return fmt.Errorf("%w: file %d expects %d parts, found %d",
			codec.ErrCorruption, file.ID, file.NumberOfParts, len(parts))
	}

	var errs []error
	for i, part := range parts {
		if part.SequenceNumber != i {
			return fmt.Errorf("%w: file %d is missing part with sequence %d",
				codec.ErrCorruption, file.ID, i)
		}
		if part.Status != domain.StatusReady {
			errs = append(errs, fmt.Errorf("part %d is %s", part.ID, part.Status))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: file %d: %w", port.ErrFileNotReady, file.ID, errors.Join(errs...))
	}
	return nil
}
