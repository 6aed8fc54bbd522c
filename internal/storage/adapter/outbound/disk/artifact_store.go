package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/spaolacci/murmur3"
)

const (
	// PartsDirName is the subdirectory of the storage root holding chunk artifacts.
	PartsDirName = "file_parts"
	// RetrievedDirName is the default retrieval subdirectory of the storage root.
	RetrievedDirName = "retrieved_files"

	bucketCount = 256
)

// ArtifactStore keeps one file per chunk under <root>/file_parts/<bb>/, where
// bb is a murmur3 bucket of the artifact name, and writes reassembled files
// into a retrieval directory.
type ArtifactStore struct {
	partsDir     string
	retrievalDir string
}

var _ port.ArtifactStore = (*ArtifactStore)(nil)

// NewArtifactStore creates the directory layout under storageRoot. An empty
// retrievalDir defaults to <storageRoot>/retrieved_files.
func NewArtifactStore(storageRoot, retrievalDir string) (*ArtifactStore, error) {
	if retrievalDir == "" {
		retrievalDir = filepath.Join(storageRoot, RetrievedDirName)
	}
	s := &ArtifactStore{
		partsDir:     filepath.Join(filepath.Clean(storageRoot), PartsDirName),
		retrievalDir: filepath.Clean(retrievalDir),
	}

	for _, dir := range []string{s.partsDir, s.retrievalDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	return s, nil
}

// RetrievalDir returns where reassembled files are written.
func (s *ArtifactStore) RetrievalDir() string {
	return s.retrievalDir
}

func (s *ArtifactStore) ArtifactPath(key domain.ArtifactKey) string {
	name := key.Name()
	bucket := murmur3.Sum32([]byte(name)) % bucketCount
	return filepath.Join(s.partsDir, fmt.Sprintf("%02x", bucket), name)
}

// WriteArtifact writes through a temp file and renames it into place, so a
// reader never observes a half-written artifact.
func (s *ArtifactStore) WriteArtifact(ctx context.Context, key domain.ArtifactKey, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.ArtifactPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("%w: mkdir for %s: %w", port.ErrArtifactIO, key.Name(), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+key.Name()+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", port.ErrArtifactIO, key.Name(), err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %w", port.ErrArtifactIO, key.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %w", port.ErrArtifactIO, key.Name(), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename %s: %w", port.ErrArtifactIO, key.Name(), err)
	}
	return nil
}

func (s *ArtifactStore) ReadArtifact(ctx context.Context, key domain.ArtifactKey) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.ArtifactPath(key)) // #nosec G304 -- path built from registry ids
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", port.ErrArtifactIO, key.Name(), err)
	}
	return data, nil
}

func (s *ArtifactStore) DeleteArtifact(ctx context.Context, key domain.ArtifactKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.ArtifactPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: delete %s: %w", port.ErrArtifactIO, key.Name(), err)
	}
	return nil
}

// CreateOutput opens a hidden temp file next to the final output path.
func (s *ArtifactStore) CreateOutput(name string) (port.Output, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: invalid output name %q", port.ErrArtifactIO, name)
	}

	tmp, err := os.CreateTemp(s.retrievalDir, "."+base+".*.partial")
	if err != nil {
		return nil, fmt.Errorf("%w: create output %s: %w", port.ErrArtifactIO, base, err)
	}
	return &output{file: tmp, finalPath: filepath.Join(s.retrievalDir, base)}, nil
}

type output struct {
	file      *os.File
	finalPath string
}

func (o *output) Write(p []byte) (int, error) {
	n, err := o.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: write output: %w", port.ErrArtifactIO, err)
	}
	return n, nil
}

func (o *output) Commit() (string, error) {
	tmpPath := o.file.Name()
	if err := o.file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: close output: %w", port.ErrArtifactIO, err)
	}
	if err := os.Rename(tmpPath, o.finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: publish output: %w", port.ErrArtifactIO, err)
	}
	return o.finalPath, nil
}

func (o *output) Abort() error {
	_ = o.file.Close()
	if err := os.Remove(o.file.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove partial output: %w", port.ErrArtifactIO, err)
	}
	return nil
}
