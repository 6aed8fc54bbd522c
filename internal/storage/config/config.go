package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/go-chunk-storage/pkg/codec"
	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds chunk store configuration
type Config struct {
	Storage     StorageConfig     `json:"storage" yaml:"storage"`
	ProcessPool ProcessPoolConfig `json:"process_pool" yaml:"process_pool"`
	ThreadPool  ThreadPoolConfig  `json:"thread_pool" yaml:"thread_pool"`
	Memory      MemoryConfig      `json:"memory" yaml:"memory"`
	Server      ServerConfig      `json:"server" yaml:"server"`
	Logger      logger.Config     `json:"logger" yaml:"logger"`
}

type StorageConfig struct {
	Directory          string `json:"directory" yaml:"directory"`
	RetrievalDirectory string `json:"retrieval_directory" yaml:"retrieval_directory"`
	ChunkSize          int64  `json:"chunk_size" yaml:"chunk_size"`
	Compression        string `json:"compression" yaml:"compression"` // "zlib", "zstd", "lz4"
}

// ProcessPoolConfig sizes the shared worker pool running codec and artifact I/O.
type ProcessPoolConfig struct {
	NumberOfIOProcesses int `json:"number_of_io_processes" yaml:"number_of_io_processes"`
}

// ThreadPoolConfig bounds how many commands run at once.
type ThreadPoolConfig struct {
	NumberOfCommandThreads int `json:"number_of_command_threads" yaml:"number_of_command_threads"`
}

type MemoryConfig struct {
	MaxUsage int64 `json:"max_usage" yaml:"max_usage"`
	// AdmissionTimeoutMS bounds a single admission wait; 0 waits indefinitely.
	AdmissionTimeoutMS int `json:"admission_timeout_ms" yaml:"admission_timeout_ms"`
}

type ServerConfig struct {
	// Addr enables the HTTP surface when non-empty.
	Addr string `json:"addr" yaml:"addr"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Directory:   "./data",
			ChunkSize:   1024 * 1024, // 1MB
			Compression: string(codec.AlgorithmZlib),
		},
		ProcessPool: ProcessPoolConfig{
			NumberOfIOProcesses: 4,
		},
		ThreadPool: ThreadPoolConfig{
			NumberOfCommandThreads: 4,
		},
		Memory: MemoryConfig{
			MaxUsage: 64 * 1024 * 1024, // 64MB
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "storage", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		parsedCfg = cfg
	}

	if err := parsedCfg.Normalize(); err != nil {
		return nil, err
	}
	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// Normalize resolves relative directories and validates the result.
func (c *Config) Normalize() error {
	if c.Storage.Directory == "" {
		return errors.New("storage.directory must not be empty")
	}
	absDir, err := filepath.Abs(c.Storage.Directory)
	if err != nil {
		return fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	c.Storage.Directory = absDir

	if c.Storage.RetrievalDirectory != "" {
		absRetrieval, err := filepath.Abs(c.Storage.RetrievalDirectory)
		if err != nil {
			return fmt.Errorf("failed to resolve retrieval directory: %w", err)
		}
		c.Storage.RetrievalDirectory = absRetrieval
	}

	return c.Validate()
}

// Validate rejects configurations the store cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Storage.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("storage.chunk_size must be positive, got %d", c.Storage.ChunkSize))
	}
	if _, err := codec.ParseAlgorithm(c.Storage.Compression); err != nil {
		errs = append(errs, fmt.Errorf("storage.compression: %w", err))
	}
	if c.ProcessPool.NumberOfIOProcesses <= 0 {
		errs = append(errs, fmt.Errorf("process_pool.number_of_io_processes must be positive, got %d", c.ProcessPool.NumberOfIOProcesses))
	}
	if c.ThreadPool.NumberOfCommandThreads <= 0 {
		errs = append(errs, fmt.Errorf("thread_pool.number_of_command_threads must be positive, got %d", c.ThreadPool.NumberOfCommandThreads))
	}
	if c.Memory.AdmissionTimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("memory.admission_timeout_ms must not be negative, got %d", c.Memory.AdmissionTimeoutMS))
	}
	// An ingest batch reserves a full window; a smaller ceiling could never admit it.
	if window := c.BatchWindow(); c.Storage.ChunkSize > 0 && c.ProcessPool.NumberOfIOProcesses > 0 && c.Memory.MaxUsage < window {
		errs = append(errs, fmt.Errorf("memory.max_usage (%d) must be at least chunk_size * number_of_io_processes (%d)", c.Memory.MaxUsage, window))
	}
	return errors.Join(errs...)
}

// BatchWindow is the memory one full ingest batch reserves.
func (c *Config) BatchWindow() int64 {
	return c.Storage.ChunkSize * int64(c.ProcessPool.NumberOfIOProcesses)
}
