// Package console serves the line-oriented command surface: put, get,
// delete, list and exit, one command per line.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/anthanhphan/go-chunk-storage/pkg/codec"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("bad arguments, missing file id or path")
	ErrInvalidFileID   = errors.New("file id must be a non-negative integer")
)

type verb string

const (
	verbPut    verb = "put"
	verbGet    verb = "get"
	verbDelete verb = "delete"
	verbList   verb = "list"
	verbExit   verb = "exit"
)

type command struct {
	verb verb
	path string
	id   domain.FileID
}

// Console reads commands and runs them concurrently against the storage
// service, at most concurrency at a time.
type Console struct {
	svc         port.StorageService
	concurrency int

	mu  sync.Mutex
	out io.Writer
}

// New creates a console writing command outcomes to out.
func New(svc port.StorageService, out io.Writer, concurrency int) *Console {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Console{svc: svc, out: out, concurrency: concurrency}
}

// Run dispatches commands read from in until exit, EOF or ctx is done, then
// waits for every command already dispatched.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	var g errgroup.Group
	g.SetLimit(c.concurrency)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		defer func() {
			scanErr <- scanner.Err()
			close(lines)
		}()
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	err := c.dispatch(ctx, &g, lines, scanErr)
	_ = g.Wait()
	return err
}

func (c *Console) dispatch(ctx context.Context, g *errgroup.Group, lines <-chan string, scanErr <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Console stopping, draining in-flight commands")
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			cmd, err := parse(line)
			if err != nil {
				c.printf("Error: %v", err)
				continue
			}
			if cmd.verb == verbExit {
				logger.Info("Exit requested, draining in-flight commands")
				return nil
			}

			g.Go(func() error {
				c.execute(ctx, cmd)
				return nil
			})
		}
	}
}

func parse(line string) (command, error) {
	words := strings.Fields(line)
	v := verb(words[0])

	switch v {
	case verbList, verbExit:
		if len(words) != 1 {
			return command{}, ErrUnknownCommand
		}
		return command{verb: v}, nil
	case verbPut, verbGet, verbDelete:
	default:
		return command{}, ErrUnknownCommand
	}

	if len(words) < 2 {
		return command{}, ErrMissingArgument
	}
	if len(words) > 2 {
		return command{}, ErrUnknownCommand
	}

	if v == verbPut {
		return command{verb: v, path: words[1]}, nil
	}
	id, err := strconv.ParseInt(words[1], 10, 64)
	if err != nil || id < 0 {
		return command{}, fmt.Errorf("%w: %q", ErrInvalidFileID, words[1])
	}
	return command{verb: v, id: domain.FileID(id)}, nil
}

// execute runs one command and prints exactly one outcome for it.
func (c *Console) execute(ctx context.Context, cmd command) {
	switch cmd.verb {
	case verbPut:
		id, err := c.svc.Put(ctx, cmd.path)
		if err != nil {
			c.printf("Error: could not store %s: %s", cmd.path, describe(err))
			return
		}
		c.printf("Stored %s as file %d", cmd.path, id)
	case verbGet:
		path, err := c.svc.Get(ctx, cmd.id)
		if err != nil {
			c.printf("Error: could not retrieve file %d: %s", cmd.id, describe(err))
			return
		}
		c.printf("File %d retrieved to %s", cmd.id, path)
	case verbDelete:
		err := c.svc.Delete(ctx, cmd.id)
		var perr *port.PartialDeletionError
		switch {
		case errors.As(err, &perr):
			c.printf("File %d could not be fully deleted: %d part(s) removed, %d failed; retry delete to finish",
				cmd.id, perr.Deleted, len(perr.Failures))
		case err != nil:
			c.printf("Error: could not delete file %d: %s", cmd.id, describe(err))
		default:
			c.printf("File %d deleted", cmd.id)
		}
	case verbList:
		c.printList(c.svc.List(ctx))
	}
}

func (c *Console) printList(files []domain.File) {
	if len(files) == 0 {
		c.printf("No files stored.")
		return
	}

	var b strings.Builder
	b.WriteString("Stored files:")
	for _, f := range files {
		fmt.Fprintf(&b, "\nID: %d, Name: %s, Status: %s, Parts: %d, Size: %s",
			f.ID, f.Name, f.Status, f.NumberOfParts, humanize.IBytes(uint64(f.Size)))
	}
	c.printf("%s", b.String())
}

// describe maps the error taxonomy to short human-readable reasons.
func describe(err error) string {
	switch {
	case errors.Is(err, port.ErrFileNotFound):
		return "no such file"
	case errors.Is(err, port.ErrFileNotReady):
		return "file is not available"
	case errors.Is(err, port.ErrSourceUnavailable):
		return "source file does not exist or cannot be read"
	case errors.Is(err, codec.ErrCorruption):
		return "file corrupted"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out waiting for memory"
	default:
		return err.Error()
	}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}
