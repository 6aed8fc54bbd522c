package service

import (
	"context"
	"time"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/anthanhphan/go-chunk-storage/pkg/admission"
	"github.com/anthanhphan/go-chunk-storage/pkg/codec"
	"github.com/anthanhphan/go-chunk-storage/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// Options tunes the pipelines.
type Options struct {
	ChunkSize int64
	// AdmissionTimeout bounds a single memory wait. Zero waits until ctx is done.
	AdmissionTimeout time.Duration
}

// StorageServiceImpl is a facade that composes storage use-case services.
type StorageServiceImpl struct {
	files     port.FileRegistry
	parts     port.PartRegistry
	artifacts port.ArtifactStore
	codec     *codec.Codec
	memory    *admission.Controller
	pool      *resilience.WorkerPool
	opts      Options

	chunks   *chunkOpsService
	ingest   *ingestService
	retrieve *retrieveService
	deletion *deleteService
}

// Ensure StorageServiceImpl implements port.StorageService.
var _ port.StorageService = (*StorageServiceImpl)(nil)

// NewStorageService builds storage facade and all use-case services.
// Registries, artifact store, memory controller and worker pool are shared
// with whoever else holds them; the facade owns none of them.
func NewStorageService(
	files port.FileRegistry,
	parts port.PartRegistry,
	artifacts port.ArtifactStore,
	chunkCodec *codec.Codec,
	memory *admission.Controller,
	pool *resilience.WorkerPool,
	opts Options,
) *StorageServiceImpl {
	svc := &StorageServiceImpl{
		files:     files,
		parts:     parts,
		artifacts: artifacts,
		codec:     chunkCodec,
		memory:    memory,
		pool:      pool,
		opts:      opts,
	}

	svc.chunks = newChunkOpsService(svc)
	svc.ingest = newIngestService(svc)
	svc.retrieve = newRetrieveService(svc)
	svc.deletion = newDeleteService(svc)

	return svc
}

// Put ingests the file at path and returns its id.
func (s *StorageServiceImpl) Put(ctx context.Context, path string) (domain.FileID, error) {
	return s.ingest.put(ctx, path)
}

// Get reassembles a ready file and returns the output path.
func (s *StorageServiceImpl) Get(ctx context.Context, id domain.FileID) (string, error) {
	return s.retrieve.get(ctx, id)
}

// Delete removes a file and its parts.
func (s *StorageServiceImpl) Delete(ctx context.Context, id domain.FileID) error {
	return s.deletion.delete(ctx, id)
}

// List returns every registered file ordered by id.
func (s *StorageServiceImpl) List(_ context.Context) []domain.File {
	return s.files.List()
}

// batchWindow is what one full ingest batch holds in memory.
func (s *StorageServiceImpl) batchWindow() int64 {
	return s.opts.ChunkSize * int64(s.pool.Size())
}

// admit reserves bytes, waiting at most AdmissionTimeout when one is set.
func (s *StorageServiceImpl) admit(ctx context.Context, bytes int64) error {
	if s.memory.TryAdmit(bytes) {
		return nil
	}

	logger.Debugw("Waiting for memory admission",
		"bytes", bytes, "in_use", s.memory.InUse(), "ceiling", s.memory.Ceiling())

	if s.opts.AdmissionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.AdmissionTimeout)
		defer cancel()
	}
	return s.memory.Admit(ctx, bytes)
}
