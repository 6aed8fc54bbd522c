package http_handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anthanhphan/go-chunk-storage/internal/storage/config"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/domain"
	"github.com/anthanhphan/go-chunk-storage/internal/storage/port"
	"github.com/anthanhphan/go-chunk-storage/pkg/admission"
	"github.com/anthanhphan/go-chunk-storage/pkg/codec"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.StorageService
}

type putRequest struct {
	Path string `json:"path"`
}

type fileResponse struct {
	domain.File
	HumanSize string `json:"human_size"`
}

func NewServer(cfg *config.Config, service port.StorageService) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Post("/files", s.handlePut)
	s.app.Get("/files", s.handleList)
	s.app.Get("/files/:id", s.handleGet)
	s.app.Delete("/files/:id", s.handleDelete)
}

// App exposes the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) handlePut(c *fiber.Ctx) error {
	var req putRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Path == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'path' field")
	}

	id, err := s.service.Put(c.Context(), req.Path)
	if err != nil {
		sdklogger.Errorw("Put failed", "path", req.Path, "error", err.Error())
		return s.sendJSONError(c, statusFor(err), fmt.Sprintf("Put failed: %v", err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File stored successfully",
		"id":      id,
	})
}

func (s *Server) handleList(c *fiber.Ctx) error {
	files := s.service.List(c.Context())
	resp := make([]fileResponse, 0, len(files))
	for _, f := range files {
		resp = append(resp, fileResponse{File: f, HumanSize: humanize.IBytes(uint64(f.Size))})
	}
	return c.JSON(fiber.Map{"files": resp})
}

func (s *Server) handleGet(c *fiber.Ctx) error {
	id, err := parseFileID(c)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	path, err := s.service.Get(c.Context(), id)
	if err != nil {
		sdklogger.Warnw("Get failed", "file_id", id, "error", err.Error())
		return s.sendJSONError(c, statusFor(err), fmt.Sprintf("Get failed: %v", err))
	}

	return c.JSON(fiber.Map{
		"id":   id,
		"path": path,
	})
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	id, err := parseFileID(c)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	err = s.service.Delete(c.Context(), id)
	var perr *port.PartialDeletionError
	if errors.As(err, &perr) {
		failed := make([]domain.PartID, 0, len(perr.Failures))
		for _, f := range perr.Failures {
			failed = append(failed, f.PartID)
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":        "Deletion incomplete, retry to finish",
			"id":           id,
			"deleted":      perr.Deleted,
			"failed_parts": failed,
		})
	}
	if err != nil {
		sdklogger.Warnw("Delete failed", "file_id", id, "error", err.Error())
		return s.sendJSONError(c, statusFor(err), fmt.Sprintf("Delete failed: %v", err))
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseFileID(c *fiber.Ctx) (domain.FileID, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid file id %q", c.Params("id"))
	}
	return domain.FileID(id), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, port.ErrFileNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, port.ErrFileNotReady):
		return fiber.StatusConflict
	case errors.Is(err, port.ErrSourceUnavailable):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, codec.ErrCorruption):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, admission.ErrRequestTooLarge), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
