package models

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Weather is one of the four categories the dataset records.
type Weather string

const (
	WeatherDrizzle Weather = "drizzle"
	WeatherRain    Weather = "rain"
	WeatherSnow    Weather = "snow"
	WeatherSun     Weather = "sun"
)

// Weathers lists the recognized categories in display order.
var Weathers = []Weather{WeatherDrizzle, WeatherRain, WeatherSnow, WeatherSun}

// ParseWeather matches exactly; case and whitespace are significant.
func ParseWeather(value string) (Weather, error) {
	switch w := Weather(value); w {
	case WeatherDrizzle, WeatherRain, WeatherSnow, WeatherSun:
		return w, nil
	}
	return "", &UnrecognizedCategoryError{Value: value}
}

type DayType string

const (
	DayTypeWorking    DayType = "working day"
	DayTypeNonWorking DayType = "non-working day"
	DayTypeUnknown    DayType = "unknown"
)

// ParseDayType is case- and whitespace-insensitive. Values outside the two
// known types map to DayTypeUnknown.
func ParseDayType(value string) DayType {
	switch DayType(strings.ToLower(strings.TrimSpace(value))) {
	case DayTypeWorking:
		return DayTypeWorking
	case DayTypeNonWorking:
		return DayTypeNonWorking
	default:
		return DayTypeUnknown
	}
}

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeatherRecord is one row of the bundled dataset.
type WeatherRecord struct {
	Date    Date    `json:"date"`
	TempMax float64 `json:"temp_max"`
	TempMin float64 `json:"temp_min"`
	Weather string  `json:"weather"`
	DayType DayType `json:"day_type"`
}

// CalendarEvent classifies a single day in the forecast feed.
type CalendarEvent struct {
	Start     Date   `json:"start"`
	ClassName string `json:"className"`
}

type Prediction struct {
	Date    string  `json:"Date"`
	TempMin float64 `json:"Temp Min Predictions"`
	TempMax float64 `json:"Temp Max Predictions"`
	Weather string  `json:"Weather Predictions"`
	DayType string  `json:"Day Type Predictions"`
}

// PredictResponse is the upstream prediction payload. Only Events is
// interpreted here; the rest passes through to the caller.
type PredictResponse struct {
	AccuracyTempMin     float64         `json:"accuracy_temp_min"`
	AccuracyTempMax     float64         `json:"accuracy_temp_max"`
	MAETempMin          float64         `json:"mae_temp_min"`
	MAETempMax          float64         `json:"mae_temp_max"`
	AccuracyWeather     float64         `json:"accuracy_weather"`
	ReportWeather       string          `json:"report_weather"`
	AccuracyDayType     float64         `json:"accuracy_day_type"`
	ReportDayType       string          `json:"report_day_type"`
	WorkingDaysCount    int             `json:"working_days_count"`
	NonWorkingDaysCount int             `json:"non_working_days_count"`
	Events              []CalendarEvent `json:"events"`
	Predictions         []Prediction    `json:"predictions"`
}

type PredictRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
