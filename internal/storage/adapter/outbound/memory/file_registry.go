package memory

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
)

// FileRegistry is a mutex-guarded map of files. Ids come from an atomic
// counter and are never reused.
type FileRegistry struct {
	mu     sync.RWMutex
	files  map[domain.FileID]*domain.File
	nextID atomic.Int64
}

var _ port.FileRegistry = (*FileRegistry)(nil)

func NewFileRegistry() *FileRegistry {
	return &FileRegistry{files: make(map[domain.FileID]*domain.File)}
}

func (r *FileRegistry) Create(name string) domain.File {
	file := &domain.File{
		ID:     domain.FileID(r.nextID.Add(1) - 1),
		Name:   name,
		Status: domain.StatusProcessing,
	}

	r.mu.Lock()
	r.files[file.ID] = file
	r.mu.Unlock()
	return *file
}

func (r *FileRegistry) Get(id domain.FileID) (domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file, ok := r.files[id]
	if !ok {
		return domain.File{}, fmt.Errorf("%w: %d", port.ErrFileNotFound, id)
	}
	return *file, nil
}

func (r *FileRegistry) Transition(id domain.FileID, next domain.Status, mutate func(*domain.File), from ...domain.Status) (domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, ok := r.files[id]
	if !ok {
		return domain.File{}, fmt.Errorf("%w: %d", port.ErrFileNotFound, id)
	}
	if len(from) > 0 && !slices.Contains(from, file.Status) {
		return *file, fmt.Errorf("%w: file %d is %s", port.ErrFileNotReady, id, file.Status)
	}

	file.Status = next
	if mutate != nil {
		mutate(file)
	}
	return *file, nil
}

func (r *FileRegistry) Remove(id domain.FileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return fmt.Errorf("%w: %d", port.ErrFileNotFound, id)
	}
	delete(r.files, id)
	return nil
}

func (r *FileRegistry) List() []domain.File {
	r.mu.RLock()
	files := make([]domain.File, 0, len(r.files))
	for _, file := range r.files {
		files = append(files, *file)
	}
	r.mu.RUnlock()

	slices.SortFunc(files, func(a, b domain.File) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return files
}
