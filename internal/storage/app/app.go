package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/adapter/inbound/console"
	httpHandler "github.com/anthanhphan/go-chunk-storage/internal/storage/adapter/inbound/http"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/adapter/outbound/disk"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/adapter/outbound/memory"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/config"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/service"
	"github.com/anthanhphan/go-chunk-storage/pkg/admission"
	"github.com/anthanhphan/go-chunk-storage/pkg/codec"
	"github.com/anthanhphan/go-chunk-storage/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/dustin/go-humanize"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg            *config.Config
	in             io.Reader
	console        *console.Console
	server         *httpHandler.Server
	pool           *resilience.WorkerPool
	memory         *admission.Controller
	storageService *service.StorageServiceImpl
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	return build(cfg, os.Stdin, os.Stdout)
}

// build wires every component from an already validated config.
func build(cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	// 3. Artifact storage
	store, err := disk.NewArtifactStore(cfg.Storage.Directory, cfg.Storage.RetrievalDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// 4. Codec
	algorithm, err := codec.ParseAlgorithm(cfg.Storage.Compression)
	if err != nil {
		return nil, err
	}
	chunkCodec, err := codec.New(algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to init codec: %w", err)
	}

	// 5. Shared worker pool and memory ceiling
	workers := cfg.ProcessPool.NumberOfIOProcesses
	pool := resilience.NewWorkerPool(workers, workers)
	memoryController := admission.NewController(cfg.Memory.MaxUsage)

	// 6. Service
	storageService := service.NewStorageService(
		memory.NewFileRegistry(),
		memory.NewPartRegistry(),
		store,
		chunkCodec,
		memoryController,
		pool,
		service.Options{
			ChunkSize:        cfg.Storage.ChunkSize,
			AdmissionTimeout: time.Duration(cfg.Memory.AdmissionTimeoutMS) * time.Millisecond,
		},
	)

	// 7. Command surfaces
	a := &App{
		cfg:            cfg,
		in:             in,
		console:        console.New(storageService, out, cfg.ThreadPool.NumberOfCommandThreads),
		pool:           pool,
		memory:         memoryController,
		storageService: storageService,
	}
	if cfg.Server.Addr != "" {
		a.server = httpHandler.NewServer(cfg, storageService)
	}

	logger.Infow("Chunk store initialized",
		"storage_dir", cfg.Storage.Directory,
		"retrieval_dir", store.RetrievalDir(),
		"chunk_size", humanize.IBytes(uint64(cfg.Storage.ChunkSize)),
		"compression", string(algorithm),
		"io_workers", workers,
		"command_threads", cfg.ThreadPool.NumberOfCommandThreads,
		"memory_ceiling", humanize.IBytes(uint64(cfg.Memory.MaxUsage)))

	return a, nil
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrCh := make(chan error, 1)
	if a.server != nil {
		logger.Infow("HTTP server starting", "addr", a.cfg.Server.Addr)
		go func() {
			if err := a.server.Start(); err != nil {
				serverErrCh <- err
			}
		}()
	}

	consoleDone := make(chan error, 1)
	go func() {
		consoleDone <- a.console.Run(ctx, a.in)
	}()

	// Wait for exit, shutdown signal or a failed server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case err := <-consoleDone:
		consoleDone <- err
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("HTTP server failed: %w", err)
		logger.Errorw("HTTP server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down chunk store")
	cancel()
	if err := <-consoleDone; err != nil {
		logger.Warnw("Console input failed", "error", err.Error())
	}

	if a.server != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.server.Stop(stopCtx); err != nil {
			logger.Warnw("HTTP server shutdown failed", "error", err.Error())
		}
		stopCancel()
	}

	a.pool.Close()
	a.pool.Wait()

	logger.Infow("Chunk store stopped",
		"files", len(a.storageService.List(context.Background())),
		"peak_memory", humanize.IBytes(uint64(a.memory.Peak())))
	return runErr
}
