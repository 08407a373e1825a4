package api

import (
	"context"
	"errors"

	"marketsync/core/logger"
	"marketsync/core/report"
	"marketsync/core/syncer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Runner triggers reconciliation runs. Satisfied by syncer.Syncer.
type Runner interface {
	Run(ctx context.Context) (*report.SyncReport, error)
	DryRun(ctx context.Context) (*syncer.Plan, error)
}

// ReportReader loads persisted reports. Satisfied by report.Store.
type ReportReader interface {
	Get(ctx context.Context, runID string) (*report.SyncReport, error)
	Recent(ctx context.Context, limit int) ([]report.Row, error)
}

// Handler handles HTTP requests for the sync API.
type Handler struct {
	runner  Runner
	reports ReportReader
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(runner Runner, reports ReportReader, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{runner: runner, reports: reports, logger: log}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleRunSync)
	app.Get("/reports", h.HandleListReports)
	app.Get("/reports/:id", h.HandleGetReport)
}

// HandleRunSync triggers one reconciliation run and returns its report.
// With ?dry_run=true it returns the planned changeset without dispatching.
func (h *Handler) HandleRunSync(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	if c.QueryBool("dry_run") {
		plan, err := h.runner.DryRun(c.Context())
		if err != nil {
			return h.runError(c, l, err)
		}
		return c.JSON(plan)
	}

	rep, err := h.runner.Run(c.Context())
	if err != nil {
		return h.runError(c, l, err)
	}
	return c.JSON(rep)
}

// HandleGetReport returns one persisted report by run ID.
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	if h.reports == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "report persistence is disabled",
		})
	}

	rep, err := h.reports.Get(c.Context(), c.Params("id"))
	if errors.Is(err, report.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "report not found",
		})
	}
	if err != nil {
		logger.WithRequestID(h.logger, c).Error("Report lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(rep)
}

// HandleListReports returns recent runs, newest first.
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	if h.reports == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "report persistence is disabled",
		})
	}

	rows, err := h.reports.Recent(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		logger.WithRequestID(h.logger, c).Error("Report listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(rows)
}

func (h *Handler) runError(c *fiber.Ctx, l *zap.Logger, err error) error {
	var cfgErr *syncer.ConfigError
	if errors.As(err, &cfgErr) {
		l.Error("Sync run rejected", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Error("Sync run failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
