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

// PartRegistry is a mutex-guarded map of parts keyed by part id.
type PartRegistry struct {
	mu     sync.RWMutex
	parts  map[domain.PartID]*domain.FilePart
	nextID atomic.Int64
}

var _ port.PartRegistry = (*PartRegistry)(nil)

func NewPartRegistry() *PartRegistry {
	return &PartRegistry{parts: make(map[domain.PartID]*domain.FilePart)}
}

func (r *PartRegistry) Create(fileID domain.FileID, sequenceNumber int) domain.FilePart {
	part := &domain.FilePart{
		ID:             domain.PartID(r.nextID.Add(1) - 1),
		FileID:         fileID,
		SequenceNumber: sequenceNumber,
		Status:         domain.StatusProcessing,
	}

	r.mu.Lock()
	r.parts[part.ID] = part
	r.mu.Unlock()
	return *part
}

func (r *PartRegistry) Get(id domain.PartID) (domain.FilePart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	part, ok := r.parts[id]
	if !ok {
		return domain.FilePart{}, fmt.Errorf("%w: %d", port.ErrPartNotFound, id)
	}
	return *part, nil
}

func (r *PartRegistry) ListByFile(fileID domain.FileID) []domain.FilePart {
	r.mu.RLock()
	parts := r.collectLocked(fileID, nil)
	r.mu.RUnlock()
	return sortBySequence(parts)
}

func (r *PartRegistry) MarkReady(id domain.PartID, md5Hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	part, ok := r.parts[id]
	if !ok {
		return fmt.Errorf("%w: %d", port.ErrPartNotFound, id)
	}
	if part.Status != domain.StatusProcessing {
		return fmt.Errorf("%w: part %d is %s", port.ErrFileNotReady, id, part.Status)
	}
	part.MD5Hash = md5Hash
	part.Status = domain.StatusReady
	return nil
}

func (r *PartRegistry) MarkNotReady(fileID domain.FileID) []domain.FilePart {
	r.mu.Lock()
	parts := r.collectLocked(fileID, func(p *domain.FilePart) {
		p.Status = domain.StatusNotReady
	})
	r.mu.Unlock()
	return sortBySequence(parts)
}

func (r *PartRegistry) Remove(id domain.PartID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.parts[id]; !ok {
		return fmt.Errorf("%w: %d", port.ErrPartNotFound, id)
	}
	delete(r.parts, id)
	return nil
}

// collectLocked copies the file's parts, applying mutate first when non-nil.
// This is a full scan; the registry is keyed by part id.
func (r *PartRegistry) collectLocked(fileID domain.FileID, mutate func(*domain.FilePart)) []domain.FilePart {
	var parts []domain.FilePart
	for _, part := range r.parts {
		if part.FileID != fileID {
			continue
		}
		if mutate != nil {
			mutate(part)
		}
		parts = append(parts, *part)
	}
	return parts
}

func sortBySequence(parts []domain.FilePart) []domain.FilePart {
	slices.SortFunc(parts, func(a, b domain.FilePart) int {
		return cmp.Compare(a.SequenceNumber, b.SequenceNumber)
	})
	return parts
}
