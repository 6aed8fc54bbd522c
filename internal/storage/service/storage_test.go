package service

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/adapter/outbound/disk"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/adapter/outbound/memory"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/anthanhphan/go-chunk-storage/pkg/admission"
	"github.com/anthanhphan/go-chunk-storage/pkg/codec"
	"github.com/anthanhphan/go-chunk-storage/pkg/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	svc       *StorageServiceImpl
	files     *memory.FileRegistry
	parts     *memory.PartRegistry
	store     *disk.ArtifactStore
	artifacts port.ArtifactStore
	memory    *admission.Controller
	pool      *resilience.WorkerPool
	codec     *codec.Codec
	dir       string
}

type harnessConfig struct {
	chunkSize int64
	poolSize  int
	ceiling   int64
	opts      Options
	wrap      func(port.ArtifactStore) port.ArtifactStore
}

func newHarness(t *testing.T, cfg harnessConfig) *harness {
	t.Helper()

	if cfg.ceiling == 0 {
		cfg.ceiling = cfg.chunkSize * int64(cfg.poolSize) * 2
	}

	dir := t.TempDir()
	store, err := disk.NewArtifactStore(filepath.Join(dir, "storage"), "")
	require.NoError(t, err)

	var artifacts port.ArtifactStore = store
	if cfg.wrap != nil {
		artifacts = cfg.wrap(store)
	}

	chunkCodec, err := codec.New(codec.AlgorithmZlib)
	require.NoError(t, err)

	pool := resilience.NewWorkerPool(cfg.poolSize, cfg.poolSize)
	t.Cleanup(func() {
		pool.Close()
		pool.Wait()
	})

	h := &harness{
		files:     memory.NewFileRegistry(),
		parts:     memory.NewPartRegistry(),
		store:     store,
		artifacts: artifacts,
		memory:    admission.NewController(cfg.ceiling),
		pool:      pool,
		codec:     chunkCodec,
		dir:       dir,
	}
	cfg.opts.ChunkSize = cfg.chunkSize
	h.svc = NewStorageService(h.files, h.parts, artifacts, chunkCodec, h.memory, pool, cfg.opts)
	return h
}

// writeSource writes data to a fresh file named name and returns its path.
func (h *harness) writeSource(t *testing.T, name string, data []byte) string {
	t.Helper()
	srcDir := filepath.Join(h.dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0750))
	path := filepath.Join(srcDir, name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func (h *harness) retrievedEntries(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(h.store.RetrievalDir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func randomBytes(seed int64, n int) []byte {
	data := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(data)
	return data
}

func TestPutGet_RoundTrip(t *testing.T) {
	const chunkSize = 16

	tests := []struct {
		name      string
		size      int
		wantParts int
	}{
		{"Empty", 0, 0},
		{"SingleByte", 1, 1},
		{"ChunkMinusOne", chunkSize - 1, 1},
		{"ExactChunk", chunkSize, 1},
		{"ChunkPlusOne", chunkSize + 1, 2},
		{"ExactBatch", chunkSize * 3, 3},
		{"SeveralBatches", chunkSize * 7, 7},
		{"SeveralBatchesWithTail", chunkSize*10 + 5, 11},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, harnessConfig{chunkSize: chunkSize, poolSize: 3})
			data := randomBytes(int64(i), tt.size)
			src := h.writeSource(t, "payload.bin", data)

			id, err := h.svc.Put(context.Background(), src)
			require.NoError(t, err)

			file, err := h.files.Get(id)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusReady, file.Status)
			assert.Equal(t, tt.wantParts, file.NumberOfParts)
			assert.Equal(t, int64(tt.size), file.Size)
			assert.Equal(t, "payload.bin", file.Name)

			parts := h.parts.ListByFile(id)
			require.Len(t, parts, tt.wantParts)
			for seq, part := range parts {
				assert.Equal(t, seq, part.SequenceNumber)
				assert.Equal(t, domain.StatusReady, part.Status)
				assert.NotEmpty(t, part.MD5Hash)
			}

			out, err := h.svc.Get(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(h.store.RetrievalDir(), "payload.bin"), out)

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(data, got), "retrieved bytes differ from source")

			assert.Zero(t, h.memory.InUse())
		})
	}
}

func TestTenByteFileWithChunkSizeFour(t *testing.T) {
	h := newHarness(t, harnessConfig{chunkSize: 4, poolSize: 2})
	data := []byte("0123456789")
	src := h.writeSource(t, "ten.txt", data)
	ctx := context.Background()

	id, err := h.svc.Put(ctx, src)
	require.NoError(t, err)

	file, err := h.files.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, file.Status)
	assert.Equal(t, 3, file.NumberOfParts)

	parts := h.parts.ListByFile(id)
	require.Len(t, parts, 3)
	wantLengths := []int{4, 4, 2}
	for i, part := range parts {
		assert.Equal(t, i, part.SequenceNumber)

		compressed, err := os.ReadFile(h.store.ArtifactPath(part.ArtifactKey()))
		require.NoError(t, err)
		raw, err := h.codec.Load(compressed, part.MD5Hash)
		require.NoError(t, err)
		assert.Len(t, raw, wantLengths[i])
	}

	out, err := h.svc.Get(ctx, id)
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, h.svc.Delete(ctx, id))
	for _, part := range parts {
		_, err := os.Stat(h.store.ArtifactPath(part.ArtifactKey()))
		assert.True(t, os.IsNotExist(err), "artifact for part %d still exists", part.ID)
	}
	_, err = h.files.Get(id)
	assert.ErrorIs(t, err, port.ErrFileNotFound)
	assert.Empty(t, h.parts.ListByFile(id))
	assert.Empty(t, h.svc.List(ctx))
}

func TestGet_LifecycleExclusivity(t *testing.T) {
	h := newHarness(t, harnessConfig{chunkSize: 8, poolSize: 2})
	ctx := context.Background()

	processing := h.files.Create("in-flight.bin")

	id, err := h.svc.Put(ctx, h.writeSource(t, "doomed.bin", randomBytes(1, 40)))
	require.NoError(t, err)
	_, err = h.files.Transition(id, domain.StatusNotReady, nil)
	require.NoError(t, err)

	for _, fileID := range []domain.FileID{processing.ID, id} {
		out, err := h.svc.Get(ctx, fileID)
		assert.ErrorIs(t, err, port.ErrFileNotReady)
		assert.Empty(t, out)
	}

	_, err = h.svc.Get(ctx, 999)
	assert.ErrorIs(t, err, port.ErrFileNotFound)

	assert.Empty(t, h.retrievedEntries(t))
}

func TestList_OrderedByID(t *testing.T) {
	h := newHarness(t, harnessConfig{chunkSize: 8, poolSize: 2})
	ctx := context.Background()

	var ids []domain.FileID
	for i, name := range []string{"a.bin", "b.bin", "c.bin"} {
		id, err := h.svc.Put(ctx, h.writeSource(t, name, randomBytes(int64(i), 10*(i+1))))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	files := h.svc.List(ctx)
	require.Len(t, files, 3)
	for i, f := range files {
		assert.Equal(t, ids[i], f.ID)
		assert.Equal(t, domain.StatusReady, f.Status)
	}
	assert.Equal(t, domain.FileID(0), files[0].ID)
}

func TestAdmissionSafety_ConcurrentPutGet(t *testing.T) {
	const (
		chunkSize = 32
		poolSize  = 3
		workers   = 8
	)
	// Ceiling fits exactly one ingest batch, forcing handlers to wait on each other.
	h := newHarness(t, harnessConfig{chunkSize: chunkSize, poolSize: poolSize, ceiling: chunkSize * poolSize})
	ctx := context.Background()

	sources := make([]string, workers)
	payloads := make([][]byte, workers)
	for w := range workers {
		payloads[w] = randomBytes(int64(w), chunkSize*5+w)
		sources[w] = h.writeSource(t, fmt.Sprintf("concurrent-%d.bin", w), payloads[w])
	}

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, src := payloads[w], sources[w]

			id, err := h.svc.Put(ctx, src)
			if !assert.NoError(t, err) {
				return
			}
			out, err := h.svc.Get(ctx, id)
			if !assert.NoError(t, err) {
				return
			}
			got, err := os.ReadFile(out)
			if assert.NoError(t, err) {
				assert.Equal(t, data, got)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, h.memory.Peak(), h.memory.Ceiling())
	assert.Zero(t, h.memory.InUse())
	assert.Len(t, h.svc.List(ctx), workers)
}
