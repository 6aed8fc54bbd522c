package memory

import (
	"sync"
	"testing"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRegistry_CreateAssignsMonotonicIDs(t *testing.T) {
	reg := NewFileRegistry()

	a := reg.Create("a.txt")
	b := reg.Create("b.txt")

	assert.Equal(t, domain.StatusProcessing, a.Status)
	assert.Less(t, a.ID, b.ID)

	require.NoError(t, reg.Remove(a.ID))
	c := reg.Create("c.txt")
	assert.Greater(t, c.ID, b.ID, "ids must not be reused after removal")
}

func TestFileRegistry_ConcurrentCreateIsUnique(t *testing.T) {
	reg := NewFileRegistry()

	const n = 200
	ids := make(chan domain.FileID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- reg.Create("f").ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[domain.FileID]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, reg.List(), n)
}

func TestFileRegistry_Transition(t *testing.T) {
	reg := NewFileRegistry()
	file := reg.Create("data.bin")

	ready, err := reg.Transition(file.ID, domain.StatusReady, func(f *domain.File) {
		f.NumberOfParts = 3
	}, domain.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, ready.Status)
	assert.Equal(t, 3, ready.NumberOfParts)

	_, err = reg.Transition(file.ID, domain.StatusReady, nil, domain.StatusProcessing)
	assert.ErrorIs(t, err, port.ErrFileNotReady)

	_, err = reg.Transition(file.ID, domain.StatusNotReady, nil)
	require.NoError(t, err)

	_, err = reg.Transition(999, domain.StatusNotReady, nil)
	assert.ErrorIs(t, err, port.ErrFileNotFound)
}

func TestFileRegistry_GetReturnsCopy(t *testing.T) {
	reg := NewFileRegistry()
	file := reg.Create("copy.txt")

	got, err := reg.Get(file.ID)
	require.NoError(t, err)
	got.Status = domain.StatusReady

	again, err := reg.Get(file.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, again.Status)
}

func TestFileRegistry_RemoveUnknown(t *testing.T) {
	reg := NewFileRegistry()
	assert.ErrorIs(t, reg.Remove(42), port.ErrFileNotFound)

	_, err := reg.Get(42)
	assert.ErrorIs(t, err, port.ErrFileNotFound)
}

func TestPartRegistry_ListByFileSortsBySequence(t *testing.T) {
	reg := NewPartRegistry()

	for _, seq := range []int{2, 0, 1} {
		reg.Create(7, seq)
	}
	reg.Create(8, 0)

	parts := reg.ListByFile(7)
	require.Len(t, parts, 3)
	for i, part := range parts {
		assert.Equal(t, i, part.SequenceNumber)
		assert.Equal(t, domain.FileID(7), part.FileID)
	}
}

func TestPartRegistry_Lifecycle(t *testing.T) {
	reg := NewPartRegistry()
	part := reg.Create(1, 0)
	assert.Equal(t, domain.StatusProcessing, part.Status)

	require.NoError(t, reg.MarkReady(part.ID, "abc"))
	got, err := reg.Get(part.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, got.Status)
	assert.Equal(t, "abc", got.MD5Hash)

	marked := reg.MarkNotReady(1)
	require.Len(t, marked, 1)
	assert.Equal(t, domain.StatusNotReady, marked[0].Status)

	assert.ErrorIs(t, reg.MarkReady(part.ID, "abc"), port.ErrFileNotReady,
		"a part being deleted must not flip back to ready")

	require.NoError(t, reg.Remove(part.ID))
	assert.ErrorIs(t, reg.Remove(part.ID), port.ErrPartNotFound)
	assert.ErrorIs(t, reg.MarkReady(part.ID, "abc"), port.ErrPartNotFound)
	assert.Empty(t, reg.ListByFile(1))
}
