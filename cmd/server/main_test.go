package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/config"
	"github.com/bobby-s-dev/weather-dashboard/internal/dataset"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type staticForecasts struct{}

func (staticForecasts) Predict(ctx context.Context, start, end models.Date) (*models.PredictResponse, error) {
	return &models.PredictResponse{
		WorkingDaysCount: 1,
		Events:           []models.CalendarEvent{{Start: start, ClassName: models.ClassWorkingDay}},
	}, nil
}

type staticStatus struct{}

func (staticStatus) GetStatus() map[string]interface{} {
	return map[string]interface{}{"running": false}
}

func TestNewApp(t *testing.T) {
	logger := zap.NewNop()
	store := dataset.NewStore("", logger)
	if _, err := store.Load(); err != nil {
		t.Fatalf("load embedded dataset: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.ReadTimeout = time.Second
	cfg.Server.WriteTimeout = time.Second
	cfg.Cache.Duration = time.Minute
	cfg.Cache.MaxSize = 10
	cfg.Calendar.MonthsPerRow = 4
	cfg.Calendar.MaxRangeDays = 1096

	dashboard := services.NewDashboard(cfg, store, staticForecasts{}, logger)
	defer dashboard.Close()

	app := newApp(cfg, dashboard, staticStatus{}, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard",
		strings.NewReader(`{"start_date": "2024-03-04", "end_date": "2024-03-06"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
		t.Errorf("Content-Type = %q", ct)
	}

	var result models.Dashboard
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Evaluation.WorkingDaysCount != 1 || len(result.Calendar.Months) != 1 {
		t.Errorf("unexpected dashboard: %+v", result.Evaluation)
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/teapot", fiber.StatusTeapot, "short and stout"},
		{"/boom", fiber.StatusInternalServerError, "boom"},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != tc.status {
			t.Errorf("%s status = %d, want %d", tc.path, resp.StatusCode, tc.status)
		}

		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("%s: decode: %v", tc.path, err)
		}
		if payload["error"] != tc.message || payload["success"] != false {
			t.Errorf("%s body = %v", tc.path, payload)
		}
	}
}
