package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const predictBody = `{
	"accuracy_temp_min": 71.5,
	"accuracy_temp_max": 80.1,
	"mae_temp_min": 2.1,
	"mae_temp_max": 2.6,
	"accuracy_weather": 61.2,
	"report_weather": "              precision    recall  f1-score   support\n",
	"accuracy_day_type": 70.3,
	"report_day_type": "",
	"working_days_count": 1,
	"non_working_days_count": 1,
	"events": [
		{"start": "2024-03-04", "className": "rain-style"},
		{"start": "2024-03-05", "className": "working-day"}
	],
	"predictions": [
		{"Date": "Mon, 04 Mar 2024 00:00:00 GMT", "Temp Min Predictions": 4.2, "Temp Max Predictions": 11.3, "Weather Predictions": "rain", "Day Type Predictions": "Working Day"}
	]
}`

func testConfig() ClientConfig {
	return ClientConfig{
		Timeout:        time.Second,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		Multiplier:     2,
		Threshold:      3,
		BreakerTimeout: time.Minute,
	}
}

func TestForecastClientPredict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/predict" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var req models.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.StartDate != "2024-03-04" || req.EndDate != "2024-03-05" {
			t.Errorf("request = %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(predictBody))
	}))
	defer server.Close()

	c := NewForecastClient(server.URL+"/", testConfig(), zap.NewNop())
	resp, err := c.Predict(context.Background(), models.NewDate(2024, 3, 4), models.NewDate(2024, 3, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.AccuracyWeather != 61.2 || resp.WorkingDaysCount != 1 {
		t.Errorf("metrics not decoded: %+v", resp)
	}
	if len(resp.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp.Events))
	}
	if resp.Events[0].Start.String() != "2024-03-04" || resp.Events[0].ClassName != models.ClassRainDay {
		t.Errorf("first event = %+v", resp.Events[0])
	}
	if len(resp.Predictions) != 1 || resp.Predictions[0].TempMax != 11.3 {
		t.Errorf("predictions = %+v", resp.Predictions)
	}
}

func TestForecastClientRetriesServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(predictBody))
	}))
	defer server.Close()

	c := NewForecastClient(server.URL, testConfig(), zap.NewNop())
	if _, err := c.Predict(context.Background(), models.NewDate(2024, 3, 4), models.NewDate(2024, 3, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := atomic.LoadInt32(&attempts); n != 2 {
		t.Errorf("attempts = %d, want 2", n)
	}
}

func TestForecastClientDoesNotRetryClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewForecastClient(server.URL, testConfig(), zap.NewNop())
	_, err := c.Predict(context.Background(), models.NewDate(2024, 3, 4), models.NewDate(2024, 3, 5))

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("err = %v, want StatusError 400", err)
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Errorf("attempts = %d, want 1", n)
	}
}

func TestForecastClientMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": [{"start": "04/03/2024", "className": "rain-style"}]}`))
	}))
	defer server.Close()

	c := NewForecastClient(server.URL, testConfig(), zap.NewNop())
	if _, err := c.Predict(context.Background(), models.NewDate(2024, 3, 4), models.NewDate(2024, 3, 5)); err == nil {
		t.Fatal("expected parse error for a malformed event date")
	}
}

func TestForecastClientCircuitBreakerOpens(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxRetries = 0
	c := NewForecastClient(server.URL, cfg, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := c.Predict(context.Background(), models.NewDate(2024, 3, 4), models.NewDate(2024, 3, 5)); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	if state := c.BreakerState(); state != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open", state)
	}

	_, err := c.Predict(context.Background(), models.NewDate(2024, 3, 4), models.NewDate(2024, 3, 5))
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want ErrOpenState", err)
	}
	if n := atomic.LoadInt32(&attempts); n != 3 {
		t.Errorf("server saw %d requests, want 3", n)
	}
}

func TestForecastClientContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RetryDelay = time.Hour
	c := NewForecastClient(server.URL, cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Predict(ctx, models.NewDate(2024, 3, 4), models.NewDate(2024, 3, 5))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}
