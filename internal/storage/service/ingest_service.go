package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/anthanhphan/go-chunk-storage/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/dustin/go-humanize"
)

// ingestService splits a source file into chunks and stores them batch by batch.
type ingestService struct {
	core *StorageServiceImpl
}

// newIngestService creates the ingest use-case service.
func newIngestService(core *StorageServiceImpl) *ingestService {
	return &ingestService{core: core}
}

// batchOutcome summarizes one stored batch.
type batchOutcome struct {
	parts int
	bytes int64
	eof   bool
}

// put registers the file, stores every chunk and marks the file ready.
func (s *ingestService) put(ctx context.Context, path string) (domain.FileID, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", port.ErrSourceUnavailable, path, err)
	}

	src, err := openSource(absPath)
	if err != nil {
		logger.Warnw("Ingest source unavailable", "path", absPath, "error", err.Error())
		return 0, err
	}
	defer func() { _ = src.Close() }()

	file := s.core.files.Create(filepath.Base(absPath))
	start := time.Now()
	logger.Infow("Ingest started", "file_id", file.ID, "name", file.Name, "path", absPath)

	var (
		numberOfParts int
		size          int64
	)
	for {
		outcome, err := s.storeBatch(ctx, file.ID, src, numberOfParts)
		numberOfParts += outcome.parts
		size += outcome.bytes
		if err != nil {
			logger.Errorw("Ingest failed",
				"file_id", file.ID, "parts_created", numberOfParts, "error", err.Error())
			return 0, fmt.Errorf("ingest file %d: %w", file.ID, err)
		}
		if outcome.eof {
			break
		}
	}

	ready, err := s.core.files.Transition(file.ID, domain.StatusReady, func(f *domain.File) {
		f.NumberOfParts = numberOfParts
		f.Size = size
	}, domain.StatusProcessing)
	if err != nil {
		logger.Warnw("Ingest finished but file left processing", "file_id", file.ID, "error", err.Error())
		return 0, fmt.Errorf("finalize file %d: %w", file.ID, err)
	}

	logger.Infow("Ingest completed",
		"file_id", ready.ID, "number_of_parts", ready.NumberOfParts,
		"size", humanize.IBytes(uint64(ready.Size)), "duration", time.Since(start).String())
	return ready.ID, nil
}

// storeBatch admits a full batch window, reads up to pool-size chunks into
// it and stores them on the worker pool. Parts of a failed batch stay
// processing.
func (s *ingestService) storeBatch(ctx context.Context, fileID domain.FileID, src io.Reader, nextSeq int) (batchOutcome, error) {
	// A concurrent delete wins over an ingest in progress.
	file, err := s.core.files.Get(fileID)
	if err != nil {
		return batchOutcome{}, err
	}
	if file.Status != domain.StatusProcessing {
		return batchOutcome{}, fmt.Errorf("%w: file %d is %s", port.ErrFileNotReady, fileID, file.Status)
	}

	window := s.core.batchWindow()
	if err = s.core.admit(ctx, window); err != nil {
		return batchOutcome{}, fmt.Errorf("admit %s: %w", humanize.IBytes(uint64(window)), err)
	}
	defer s.core.memory.Release(window)

	tasks, outcome, err := s.readChunks(fileID, src, nextSeq)
	if err != nil || len(tasks) == 0 {
		return outcome, err
	}

	results, errs, dispatchErr := resilience.RunBatch(ctx, s.core.pool, tasks, s.core.chunks.storeChunk)
	if dispatchErr != nil {
		return outcome, dispatchErr
	}
	if err := resilience.FirstError(errs); err != nil {
		return outcome, err
	}

	for _, res := range results {
		if err := s.core.parts.MarkReady(res.partID, res.digest); err != nil {
			return outcome, err
		}
	}

	logger.Debugw("Batch stored",
		"file_id", fileID, "first_sequence", nextSeq, "parts", len(tasks),
		"bytes", humanize.IBytes(uint64(outcome.bytes)))
	return outcome, nil
}

// readChunks fills up to pool-size windows from src, registering a part per
// window in read order.
func (s *ingestService) readChunks(fileID domain.FileID, src io.Reader, nextSeq int) ([]storeTask, batchOutcome, error) {
	var outcome batchOutcome
	tasks := make([]storeTask, 0, s.core.pool.Size())

	for len(tasks) < s.core.pool.Size() {
		buf := make([]byte, s.core.opts.ChunkSize)
		n, err := io.ReadFull(src, buf)
		if n > 0 {
			part := s.core.parts.Create(fileID, nextSeq+len(tasks))
			tasks = append(tasks, storeTask{part: part, data: buf[:n]})
			outcome.bytes += int64(n)
		}

		switch {
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			outcome.eof = true
			outcome.parts = len(tasks)
			return tasks, outcome, nil
		case err != nil:
			outcome.parts = len(tasks)
			return nil, outcome, fmt.Errorf("%w: read: %w", port.ErrSourceUnavailable, err)
		}
	}

	outcome.parts = len(tasks)
	return tasks, outcome, nil
}

func openSource(path string) (*os.File, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrSourceUnavailable, err)
	}

	info, err := src.Stat()
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("%w: %w", port.ErrSourceUnavailable, err)
	}
	if !info.Mode().IsRegular() {
		_ = src.Close()
		return nil, fmt.Errorf("%w: %s is not a regular file", port.ErrSourceUnavailable, path)
	}
	return src, nil
}
