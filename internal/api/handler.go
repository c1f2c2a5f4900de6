package api

import (
	"errors"
	"strings"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatusProvider interface {
	GetStatus() map[string]interface{}
}

type Handler struct {
	dashboard    *services.Dashboard
	scheduler    StatusProvider
	logger       *zap.Logger
	maxRangeDays int
}

func NewHandler(dashboard *services.Dashboard, scheduler StatusProvider, maxRangeDays int, logger *zap.Logger) *Handler {
	return &Handler{
		dashboard:    dashboard,
		scheduler:    scheduler,
		logger:       logger,
		maxRangeDays: maxRangeDays,
	}
}

type rangeRequest struct {
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Events    []models.CalendarEvent `json:"events"`
}

// parseRange validates a submitted date range the way the dashboard form
// does.
func (h *Handler) parseRange(startStr, endStr string) (models.Date, models.Date, error) {
	if strings.TrimSpace(startStr) == "" || strings.TrimSpace(endStr) == "" {
		return models.Date{}, models.Date{}, fiber.NewError(fiber.StatusBadRequest, "Please fill in both start and end dates.")
	}

	start, err := models.ParseDate(startStr)
	if err != nil {
		return models.Date{}, models.Date{}, fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD.")
	}
	end, err := models.ParseDate(endStr)
	if err != nil {
		return models.Date{}, models.Date{}, fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD.")
	}

	if start.After(end.Time) {
		return models.Date{}, models.Date{}, fiber.NewError(fiber.StatusBadRequest, "Start date must be less than or equal to end date.")
	}

	if h.maxRangeDays > 0 && int(end.Sub(start.Time).Hours()/24)+1 > h.maxRangeDays {
		return models.Date{}, models.Date{}, fiber.NewError(fiber.StatusBadRequest, "Date range is too long.")
	}

	return start, end, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// GetDashboard handles POST /api/v1/dashboard
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	var req rangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	start, end, err := h.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return badRequest(c, err)
	}

	h.logger.Info("Building dashboard",
		zap.String("start", start.String()),
		zap.String("end", end.String()))

	dashboard, err := h.dashboard.Build(c.UserContext(), start, end)
	if err != nil {
		h.logger.Error("Failed to build dashboard",
			zap.String("start", start.String()),
			zap.String("end", end.String()),
			zap.Error(err))

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Oops! There was a problem fetching the data. Please try again.",
			"details": err.Error(),
		})
	}

	return c.JSON(dashboard)
}

// GetCalendar handles POST /api/v1/calendar
func (h *Handler) GetCalendar(c *fiber.Ctx) error {
	var req rangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	start, end, err := h.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return badRequest(c, err)
	}

	return c.JSON(h.dashboard.Calendar(start, end, req.Events))
}

// GetStatistics handles GET /api/v1/statistics
func (h *Handler) GetStatistics(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary()
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))

		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "Statistics unavailable",
			"details": err.Error(),
		})
	}

	return c.JSON(summary)
}

// GetDataset handles GET /api/v1/dataset
func (h *Handler) GetDataset(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.DatasetInfo())
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	response := fiber.Map{
		"status":     "healthy",
		"timestamp":  time.Now(),
		"last_fetch": h.dashboard.GetLastFetchTime(),
		"uptime":     time.Since(startTime).String(),
		"stats":      h.dashboard.GetStats(),
	}
	if h.scheduler != nil {
		response["scheduler"] = h.scheduler.GetStatus()
	}

	return c.JSON(response)
}

// GetMetrics handles GET /api/v1/metrics
func (h *Handler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"metrics":   h.dashboard.GetStats(),
		"timestamp": time.Now(),
	})
}

var startTime = time.Now()
