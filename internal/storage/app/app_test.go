package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ConsoleSession(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Directory = filepath.Join(dir, "store")
	cfg.Storage.ChunkSize = 4
	cfg.Storage.Compression = "zstd"
	cfg.ProcessPool.NumberOfIOProcesses = 2
	cfg.ThreadPool.NumberOfCommandThreads = 1
	cfg.Memory.MaxUsage = 64
	require.NoError(t, cfg.Normalize())

	src := filepath.Join(dir, "hello.txt")
	payload := []byte("hello, chunked world")
	require.NoError(t, os.WriteFile(src, payload, 0600))

	script := strings.Join([]string{
		"put " + src,
		"list",
		"get 0",
		"get 1",
		"delete 0",
		"list",
		"exit",
	}, "\n")

	var out bytes.Buffer
	a, err := build(cfg, strings.NewReader(script), &out)
	require.NoError(t, err)
	require.NoError(t, a.Run())

	text := out.String()
	assert.Contains(t, text, fmt.Sprintf("Stored %s as file 0", src))
	assert.Contains(t, text, "ID: 0, Name: hello.txt, Status: ready, Parts: 5, Size: 20 B")
	assert.Contains(t, text, "Error: could not retrieve file 1: no such file")
	assert.Contains(t, text, "File 0 deleted")
	assert.Contains(t, text, "No files stored.")

	retrieved := filepath.Join(cfg.Storage.Directory, "retrieved_files", "hello.txt")
	got, err := os.ReadFile(retrieved)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	assert.Zero(t, a.memory.InUse())
	assert.LessOrEqual(t, a.memory.Peak(), cfg.Memory.MaxUsage)
}

func TestBuild_RejectsUnknownCompression(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Directory = t.TempDir()
	cfg.Storage.Compression = "snappy"

	_, err := build(cfg, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}
