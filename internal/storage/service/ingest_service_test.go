package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/service/mocks"
	"github.com/anthanhphan/go-chunk-storage/pkg/admission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPut_SourceUnavailable(t *testing.T) {
	h := newHarness(t, harnessConfig{chunkSize: 8, poolSize: 2})
	ctx := context.Background()

	tests := []struct {
		name string
		path string
	}{
		{"Missing", filepath.Join(h.dir, "does-not-exist.bin")},
		{"Directory", h.dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Put(ctx, tt.path)
			assert.ErrorIs(t, err, port.ErrSourceUnavailable)
		})
	}
	assert.Empty(t, h.svc.List(ctx), "no file may be registered for an unavailable source")
}

func TestPut_RelativePath(t *testing.T) {
	h := newHarness(t, harnessConfig{chunkSize: 8, poolSize: 2})
	src := h.writeSource(t, "relative.bin", randomBytes(3, 20))
	t.Chdir(filepath.Dir(src))

	id, err := h.svc.Put(context.Background(), "relative.bin")
	require.NoError(t, err)

	file, err := h.files.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "relative.bin", file.Name)
	assert.Equal(t, 3, file.NumberOfParts)
}

func TestPut_WriteFailureLeavesBatchProcessing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockArtifactStore(ctrl)
	writeErr := errors.New("disk full")

	h := newHarness(t, harnessConfig{
		chunkSize: 4,
		poolSize:  2,
		wrap:      func(port.ArtifactStore) port.ArtifactStore { return store },
	})

	// First batch (parts 0,1) stores fine, second batch (parts 2,3) hits a failing disk.
	store.EXPECT().WriteArtifact(gomock.Any(), domain.ArtifactKey{FileID: 0, SequenceNumber: 0}, gomock.Any()).Return(nil)
	store.EXPECT().WriteArtifact(gomock.Any(), domain.ArtifactKey{FileID: 0, SequenceNumber: 1}, gomock.Any()).Return(nil)
	store.EXPECT().WriteArtifact(gomock.Any(), domain.ArtifactKey{FileID: 0, SequenceNumber: 2}, gomock.Any()).Return(writeErr)
	store.EXPECT().WriteArtifact(gomock.Any(), domain.ArtifactKey{FileID: 0, SequenceNumber: 3}, gomock.Any()).Return(nil)

	_, err := h.svc.Put(context.Background(), h.writeSource(t, "fails.bin", randomBytes(5, 20)))
	require.ErrorIs(t, err, writeErr)

	file, err := h.files.Get(0)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, file.Status)

	parts := h.parts.ListByFile(0)
	require.Len(t, parts, 4, "ingest stops after the failing batch")
	assert.Equal(t, domain.StatusReady, parts[0].Status)
	assert.Equal(t, domain.StatusReady, parts[1].Status)
	assert.Equal(t, domain.StatusProcessing, parts[2].Status)
	assert.Equal(t, domain.StatusProcessing, parts[3].Status)

	assert.Zero(t, h.memory.InUse())
}

func TestPut_AdmissionTimeout(t *testing.T) {
	h := newHarness(t, harnessConfig{
		chunkSize: 8,
		poolSize:  2,
		ceiling:   16,
		opts:      Options{AdmissionTimeout: 20 * time.Millisecond},
	})
	require.True(t, h.memory.TryAdmit(h.memory.Ceiling()))
	defer h.memory.Release(h.memory.Ceiling())

	_, err := h.svc.Put(context.Background(), h.writeSource(t, "starved.bin", randomBytes(9, 8)))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPut_WaitsForMemoryThenSucceeds(t *testing.T) {
	h := newHarness(t, harnessConfig{chunkSize: 8, poolSize: 2, ceiling: 16})
	require.True(t, h.memory.TryAdmit(16))

	go func() {
		time.Sleep(20 * time.Millisecond)
		h.memory.Release(16)
	}()

	id, err := h.svc.Put(context.Background(), h.writeSource(t, "patient.bin", randomBytes(11, 30)))
	require.NoError(t, err)

	file, err := h.files.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, file.Status)
}

func TestPut_OversizedWindowRejected(t *testing.T) {
	h := newHarness(t, harnessConfig{chunkSize: 8, poolSize: 4, ceiling: 16})

	_, err := h.svc.Put(context.Background(), h.writeSource(t, "huge-window.bin", randomBytes(2, 8)))
	assert.ErrorIs(t, err, admission.ErrRequestTooLarge)
}

func TestPut_DeleteDuringIngestWins(t *testing.T) {
	var h *harness
	h = newHarness(t, harnessConfig{
		chunkSize: 4,
		poolSize:  1,
		wrap: func(store port.ArtifactStore) port.ArtifactStore {
			return &hookStore{
				ArtifactStore: store,
				onWrite: func(key domain.ArtifactKey) {
					// Simulates a delete landing while the first batch is in flight.
					if key.SequenceNumber == 0 {
						_, err := h.files.Transition(key.FileID, domain.StatusNotReady, nil)
						assert.NoError(t, err)
					}
				},
			}
		},
	})

	_, err := h.svc.Put(context.Background(), h.writeSource(t, "raced.bin", randomBytes(4, 12)))
	assert.ErrorIs(t, err, port.ErrFileNotReady)

	file, err := h.files.Get(0)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotReady, file.Status)
	assert.Len(t, h.parts.ListByFile(0), 1, "no batch may start once the file left processing")
}
