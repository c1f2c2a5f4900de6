package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"go.uber.org/zap"
)

// ForecastClient talks to the prediction service's /predict endpoint.
type ForecastClient struct {
	*BaseClient
	baseURL string
}

func NewForecastClient(baseURL string, config ClientConfig, logger *zap.Logger) *ForecastClient {
	return &ForecastClient{
		BaseClient: NewBaseClient("forecast", config, logger),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *ForecastClient) Predict(ctx context.Context, start, end models.Date) (*models.PredictResponse, error) {
	payload, err := json.Marshal(models.PredictRequest{
		StartDate: start.String(),
		EndDate:   end.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	data, err := c.PostJSONWithRetry(ctx, c.baseURL+"/predict", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch predictions: %w", err)
	}

	var response models.PredictResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse predictions: %w", err)
	}

	c.logger.Debug("Predictions received",
		zap.String("start", start.String()),
		zap.String("end", end.String()),
		zap.Int("events", len(response.Events)))

	return &response, nil
}
