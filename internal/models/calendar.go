package models

import "time"

// Class names attached to calendar cells. The first four come from the
// prediction service; ClassToday is added by the grid builder.
const (
	ClassWorkingDay = "working-day"
	ClassRainDay    = "rain-style"
	ClassSnowDay    = "snow-style"
	ClassColdDay    = "cold-day"
	ClassToday      = "today"
)

type DayCell struct {
	Day       int    `json:"day"`
	ClassName string `json:"class_name,omitempty"`
	IsToday   bool   `json:"is_today"`
}

type MonthGrid struct {
	MonthLabel string     `json:"month_label"`
	Year       int        `json:"year"`
	Month      time.Month `json:"month"`
	Days       []DayCell  `json:"days"`
}

type LegendEntry struct {
	ClassName string `json:"class_name"`
	Label     string `json:"label"`
}

// CalendarLayout is the grid builder output. Rows packs Months left to
// right, top to bottom. Single is set when exactly one month was produced.
type CalendarLayout struct {
	Start  Date          `json:"start"`
	End    Date          `json:"end"`
	Months []MonthGrid   `json:"months"`
	Rows   [][]MonthGrid `json:"rows"`
	Single bool          `json:"single"`
	Legend []LegendEntry `json:"legend"`
}

// Dashboard is the response to one submitted date range.
type Dashboard struct {
	Evaluation  Evaluation      `json:"evaluation"`
	Predictions []Prediction    `json:"predictions"`
	Calendar    CalendarLayout  `json:"calendar"`
	Statistics  *DatasetSummary `json:"statistics,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
}

// Evaluation carries the upstream model metrics unchanged.
type Evaluation struct {
	WorkingDaysCount    int     `json:"working_days_count"`
	NonWorkingDaysCount int     `json:"non_working_days_count"`
	AccuracyTempMin     float64 `json:"accuracy_temp_min"`
	AccuracyTempMax     float64 `json:"accuracy_temp_max"`
	MAETempMin          float64 `json:"mae_temp_min"`
	MAETempMax          float64 `json:"mae_temp_max"`
	AccuracyWeather     float64 `json:"accuracy_weather"`
	ReportWeather       string  `json:"report_weather"`
	AccuracyDayType     float64 `json:"accuracy_day_type"`
	ReportDayType       string  `json:"report_day_type"`
}

func EvaluationFrom(resp *PredictResponse) Evaluation {
	return Evaluation{
		WorkingDaysCount:    resp.WorkingDaysCount,
		NonWorkingDaysCount: resp.NonWorkingDaysCount,
		AccuracyTempMin:     resp.AccuracyTempMin,
		AccuracyTempMax:     resp.AccuracyTempMax,
		MAETempMin:          resp.MAETempMin,
		MAETempMax:          resp.MAETempMax,
		AccuracyWeather:     resp.AccuracyWeather,
		ReportWeather:       resp.ReportWeather,
		AccuracyDayType:     resp.AccuracyDayType,
		ReportDayType:       resp.ReportDayType,
	}
}
