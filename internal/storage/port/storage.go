package port

import (
	"context"
	"errors"
	"io"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrPartNotFound = errors.New("part not found")
	// ErrFileNotReady means the file exists but its status does not allow the operation.
	ErrFileNotReady = errors.New("file not ready")
	// ErrSourceUnavailable means an ingest source is missing or unreadable.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrArtifactIO wraps filesystem failures on chunk artifacts and outputs.
	ErrArtifactIO = errors.New("artifact i/o error")
)

//go:generate mockgen -destination=../service/mocks/storage_mock.go -package=mocks -source=storage.go

// FileRegistry holds File records keyed by id. Returned values are copies.
type FileRegistry interface {
	// Create registers a new file in StatusProcessing with a fresh id.
	Create(name string) domain.File

	// Get returns the file or ErrFileNotFound.
	Get(id domain.FileID) (domain.File, error)

	// Transition moves a file from one of the allowed states to next and
	// applies mutate under the same lock. It fails with ErrFileNotReady when
	// the current status is not in from.
	Transition(id domain.FileID, next domain.Status, mutate func(*domain.File), from ...domain.Status) (domain.File, error)

	// Remove deletes the file record.
	Remove(id domain.FileID) error

	// List returns every file ordered by id.
	List() []domain.File
}

// PartRegistry holds FilePart records keyed by part id.
type PartRegistry interface {
	// Create registers a new part in StatusProcessing with a fresh id.
	Create(fileID domain.FileID, sequenceNumber int) domain.FilePart

	Get(id domain.PartID) (domain.FilePart, error)

	// ListByFile returns the file's parts ordered by sequence number.
	ListByFile(fileID domain.FileID) []domain.FilePart

	// MarkReady records the digest of a stored part. Only processing parts move.
	MarkReady(id domain.PartID, md5Hash string) error

	// MarkNotReady flags every part of the file for deletion and returns them
	// ordered by sequence number.
	MarkNotReady(fileID domain.FileID) []domain.FilePart

	Remove(id domain.PartID) error
}

// ArtifactStore persists chunk artifacts and reassembled outputs.
type ArtifactStore interface {
	// WriteArtifact stores the encoded bytes of one chunk.
	WriteArtifact(ctx context.Context, key domain.ArtifactKey, data []byte) error

	// ReadArtifact returns the encoded bytes of one chunk.
	ReadArtifact(ctx context.Context, key domain.ArtifactKey) ([]byte, error)

	// DeleteArtifact removes a chunk artifact. A missing artifact is not an error.
	DeleteArtifact(ctx context.Context, key domain.ArtifactKey) error

	// ArtifactPath returns where the chunk artifact lives.
	ArtifactPath(key domain.ArtifactKey) string

	// CreateOutput opens a reassembly target that only becomes visible under
	// name once committed.
	CreateOutput(name string) (Output, error)
}

// Output is a reassembly target. Exactly one of Commit or Abort must be called.
type Output interface {
	io.Writer
	// Commit publishes the output and returns its final path.
	Commit() (string, error)
	// Abort discards everything written.
	Abort() error
}
