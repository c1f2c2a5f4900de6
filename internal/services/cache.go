package services

import (
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"go.uber.org/zap"
)

type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// ResultCache memoizes upstream forecasts by date range and dataset
// summaries by dataset version.
type ResultCache struct {
	mu              sync.RWMutex
	forecasts       map[string]CacheItem // "start|end" -> predict response
	summaries       map[string]CacheItem // dataset version -> summary
	logger          *zap.Logger
	defaultDuration time.Duration
	maxSize         int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

func NewResultCache(defaultDuration time.Duration, maxSize int, logger *zap.Logger) *ResultCache {
	cache := &ResultCache{
		forecasts:       make(map[string]CacheItem),
		summaries:       make(map[string]CacheItem),
		logger:          logger,
		defaultDuration: defaultDuration,
		maxSize:         maxSize,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	go cache.startCleanup()

	return cache
}

func rangeKey(start, end models.Date) string {
	return start.String() + "|" + end.String()
}

func (c *ResultCache) SetForecast(start, end models.Date, forecast *models.PredictResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.forecasts) >= c.maxSize {
		c.evictOldestForecast()
	}

	key := rangeKey(start, end)
	expiresAt := c.now().Add(c.defaultDuration)
	c.forecasts[key] = CacheItem{
		Data:      forecast,
		ExpiresAt: expiresAt,
	}

	c.logger.Debug("Forecast cached",
		zap.String("range", key),
		zap.Time("expires_at", expiresAt))
}

func (c *ResultCache) GetForecast(start, end models.Date) (*models.PredictResponse, bool) {
	key := rangeKey(start, end)

	c.mu.RLock()
	item, exists := c.forecasts[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if c.now().After(item.ExpiresAt) {
		c.mu.Lock()
		delete(c.forecasts, key)
		c.mu.Unlock()
		return nil, false
	}

	forecast, ok := item.Data.(*models.PredictResponse)
	return forecast, ok
}

// SetSummary stores the summary for its dataset version. Summaries never
// expire by time; they are dropped when the dataset version changes.
func (c *ResultCache) SetSummary(summary *models.DatasetSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summaries[summary.DatasetVersion] = CacheItem{
		Data:      summary,
		ExpiresAt: c.now(),
	}

	c.logger.Debug("Dataset summary cached",
		zap.String("version", summary.DatasetVersion))
}

func (c *ResultCache) GetSummary(version string) (*models.DatasetSummary, bool) {
	c.mu.RLock()
	item, exists := c.summaries[version]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	summary, ok := item.Data.(*models.DatasetSummary)
	return summary, ok
}

// PurgeSummaries drops every summary except the one for keep.
func (c *ResultCache) PurgeSummaries(keep string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	purged := 0
	for version := range c.summaries {
		if version != keep {
			delete(c.summaries, version)
			purged++
		}
	}

	if purged > 0 {
		c.logger.Debug("Purged stale dataset summaries",
			zap.Int("count", purged),
			zap.String("kept", keep))
	}
	return purged
}

func (c *ResultCache) evictOldestForecast() {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range c.forecasts {
		if oldestKey == "" || item.ExpiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(c.forecasts, oldestKey)
		c.logger.Debug("Evicted oldest forecast from cache",
			zap.String("range", oldestKey))
	}
}

func (c *ResultCache) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *ResultCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expiredCount := 0

	for key, item := range c.forecasts {
		if now.After(item.ExpiresAt) {
			delete(c.forecasts, key)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		c.logger.Debug("Cleaned expired cache items",
			zap.Int("count", expiredCount))
	}
}

func (c *ResultCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCleanup)
	})
}

func (c *ResultCache) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"forecast_items":   len(c.forecasts),
		"summary_items":    len(c.summaries),
		"max_size":         c.maxSize,
		"default_duration": c.defaultDuration.String(),
	}
}
