package service

import (
	"context"
	"fmt"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/gosdk/logger"
)

// chunkOpsService holds the per-chunk tasks the worker pool runs.
type chunkOpsService struct {
	core *StorageServiceImpl
}

// newChunkOpsService creates the chunk operations use-case service.
func newChunkOpsService(core *StorageServiceImpl) *chunkOpsService {
	return &chunkOpsService{core: core}
}

type storeTask struct {
	part domain.FilePart
	data []byte
}

type storeResult struct {
	partID domain.PartID
	digest string
}

// storeChunk compresses one chunk and writes it to its artifact path.
func (s *chunkOpsService) storeChunk(ctx context.Context, task storeTask) (storeResult, error) {
	compressed, digest, err := s.core.codec.Store(task.data)
	if err != nil {
		return storeResult{}, fmt.Errorf("encode part %d: %w", task.part.ID, err)
	}

	if err := s.core.artifacts.WriteArtifact(ctx, task.part.ArtifactKey(), compressed); err != nil {
		logger.Errorw("WriteArtifact failed",
			"file_id", task.part.FileID, "part_id", task.part.ID,
			"sequence_number", task.part.SequenceNumber, "error", err.Error())
		return storeResult{}, err
	}
	return storeResult{partID: task.part.ID, digest: digest}, nil
}

// loadChunk reads one artifact back and verifies it against the part digest.
func (s *chunkOpsService) loadChunk(ctx context.Context, part domain.FilePart) ([]byte, error) {
	compressed, err := s.core.artifacts.ReadArtifact(ctx, part.ArtifactKey())
	if err != nil {
		return nil, err
	}

	raw, err := s.core.codec.Load(compressed, part.MD5Hash)
	if err != nil {
		logger.Warnw("Chunk failed verification",
			"file_id", part.FileID, "part_id", part.ID,
			"sequence_number", part.SequenceNumber, "error", err.Error())
		return nil, fmt.Errorf("part %d (sequence %d): %w", part.ID, part.SequenceNumber, err)
	}
	return raw, nil
}

// deleteChunk removes one artifact. Missing artifacts count as deleted.
func (s *chunkOpsService) deleteChunk(ctx context.Context, part domain.FilePart) (struct{}, error) {
	if err := s.core.artifacts.DeleteArtifact(ctx, part.ArtifactKey()); err != nil {
		logger.Warnw("DeleteArtifact failed",
			"file_id", part.FileID, "part_id", part.ID, "error", err.Error())
		return struct{}{}, err
	}
	return struct{}{}, nil
}
