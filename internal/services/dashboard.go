package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/config"
	"github.com/bobby-s-dev/weather-dashboard/internal/dataset"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrDatasetNotLoaded = errors.New("dataset not loaded")

type ForecastSource interface {
	Predict(ctx context.Context, start, end models.Date) (*models.PredictResponse, error)
}

type DatasetSource interface {
	Load() (bool, error)
	Snapshot() dataset.Snapshot
}

type Dashboard struct {
	forecasts    ForecastSource
	store        DatasetSource
	cache        *ResultCache
	logger       *zap.Logger
	group        singleflight.Group
	monthsPerRow int
	fetchTimeout time.Duration
	now          func() time.Time

	mu            sync.RWMutex
	lastFetchTime time.Time
	lastReload    time.Time
	successCount  int
	failureCount  int
	cacheHits     int
}

func NewDashboard(cfg *config.Config, store DatasetSource, forecasts ForecastSource, logger *zap.Logger) *Dashboard {
	fetchTimeout := cfg.Forecast.Timeout
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}

	return &Dashboard{
		forecasts:    forecasts,
		store:        store,
		cache:        NewResultCache(cfg.Cache.Duration, cfg.Cache.MaxSize, logger),
		logger:       logger,
		monthsPerRow: cfg.Calendar.MonthsPerRow,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// Build answers one submitted date range: upstream evaluation, the calendar
// built from the upstream events, and the dataset statistics. A missing
// dataset degrades to a warning; an upstream failure fails the request.
func (d *Dashboard) Build(ctx context.Context, start, end models.Date) (*models.Dashboard, error) {
	forecast, err := d.Forecast(ctx, start, end)
	if err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		Evaluation:  models.EvaluationFrom(forecast),
		Predictions: forecast.Predictions,
		Calendar:    d.Calendar(start, end, forecast.Events),
	}

	summary, err := d.Summary()
	if err != nil {
		d.logger.Warn("Dataset statistics unavailable", zap.Error(err))
		dashboard.Warnings = append(dashboard.Warnings, "unable to compute statistics: "+err.Error())
	} else {
		dashboard.Statistics = summary
	}

	return dashboard, nil
}

func (d *Dashboard) Calendar(start, end models.Date, events []models.CalendarEvent) models.CalendarLayout {
	return BuildCalendar(start, end, events, d.now(), d.monthsPerRow)
}

// Summary returns the statistics for the current dataset version, computing
// them at most once per version.
func (d *Dashboard) Summary() (*models.DatasetSummary, error) {
	snapshot := d.store.Snapshot()
	if snapshot.Version == "" {
		return nil, ErrDatasetNotLoaded
	}

	if cached, ok := d.cache.GetSummary(snapshot.Version); ok {
		d.logger.Debug("Cache hit for dataset summary", zap.String("version", snapshot.Version))
		return cached, nil
	}

	startTime := time.Now()
	summary := Summarize(snapshot.Records, snapshot.Version)
	d.cache.SetSummary(summary)

	d.logger.Info("Dataset summary computed",
		zap.String("version", snapshot.Version),
		zap.Int("records", summary.Records),
		zap.Duration("duration", time.Since(startTime)),
		zap.String("distribution_error", summary.DistributionError),
		zap.String("day_type_error", summary.DayTypeSplitError))

	return summary, nil
}

// Forecast returns the upstream predictions for the range. Concurrent
// requests for the same range share one upstream call.
func (d *Dashboard) Forecast(ctx context.Context, start, end models.Date) (*models.PredictResponse, error) {
	if cached, ok := d.cache.GetForecast(start, end); ok {
		d.mu.Lock()
		d.cacheHits++
		d.mu.Unlock()
		d.logger.Debug("Cache hit for forecast", zap.String("range", rangeKey(start, end)))
		return cached, nil
	}

	d.logger.Debug("Cache miss for forecast, fetching fresh data", zap.String("range", rangeKey(start, end)))

	result, err, shared := d.group.Do(rangeKey(start, end), func() (interface{}, error) {
		return d.fetchForecast(ctx, start, end)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		d.logger.Debug("Forecast fetch shared", zap.String("range", rangeKey(start, end)))
	}

	return result.(*models.PredictResponse), nil
}

func (d *Dashboard) fetchForecast(ctx context.Context, start, end models.Date) (*models.PredictResponse, error) {
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.fetchTimeout)
	defer cancel()

	startTime := time.Now()
	d.mu.Lock()
	d.lastFetchTime = startTime
	d.mu.Unlock()

	forecast, err := d.forecasts.Predict(fetchCtx, start, end)
	if err != nil {
		d.mu.Lock()
		d.failureCount++
		d.mu.Unlock()
		d.logger.Error("Failed to fetch forecast",
			zap.String("range", rangeKey(start, end)),
			zap.Duration("duration", time.Since(startTime)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch forecast for %s: %w", rangeKey(start, end), err)
	}

	d.mu.Lock()
	d.successCount++
	d.mu.Unlock()

	d.cache.SetForecast(start, end, forecast)

	d.logger.Info("Forecast fetch completed",
		zap.String("range", rangeKey(start, end)),
		zap.Int("events", len(forecast.Events)),
		zap.Duration("duration", time.Since(startTime)))

	return forecast, nil
}

// ReloadDataset reloads the dataset and drops summaries of older versions
// when a new version was installed.
func (d *Dashboard) ReloadDataset() (bool, error) {
	changed, err := d.store.Load()
	if err != nil {
		return false, err
	}

	d.mu.Lock()
	d.lastReload = time.Now()
	d.mu.Unlock()

	if changed {
		d.cache.PurgeSummaries(d.store.Snapshot().Version)
	}
	return changed, nil
}

func (d *Dashboard) DatasetInfo() map[string]interface{} {
	snapshot := d.store.Snapshot()
	return map[string]interface{}{
		"version":   snapshot.Version,
		"source":    snapshot.Source,
		"records":   len(snapshot.Records),
		"loaded_at": snapshot.LoadedAt,
		"columns":   dataset.Columns,
	}
}

func (d *Dashboard) GetLastFetchTime() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastFetchTime
}

func (d *Dashboard) Close() {
	d.cache.Stop()
}

func (d *Dashboard) GetStats() map[string]interface{} {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return map[string]interface{}{
		"last_fetch_time":  d.lastFetchTime,
		"last_reload_time": d.lastReload,
		"success_count":    d.successCount,
		"failure_count":    d.failureCount,
		"cache_hits":       d.cacheHits,
		"dataset_version":  d.store.Snapshot().Version,
		"cache_stats":      d.cache.GetStats(),
	}
}
