package models

import (
	"time"
)

// MonthlyAverage holds pooled averages for one calendar month across all
// years in the dataset. The averages are nil when Count is zero.
type MonthlyAverage struct {
	Month      time.Month `json:"month"`
	Label      string     `json:"label"`
	Count      int        `json:"count"`
	AvgMinTemp *float64   `json:"avg_min_temp"`
	AvgMaxTemp *float64   `json:"avg_max_temp"`
}

func (m MonthlyAverage) HasData() bool {
	return m.Count > 0
}

func (m MonthlyAverage) Err() error {
	if m.Count == 0 {
		return &MissingDataError{Statistic: "monthly average " + m.Month.String()}
	}
	return nil
}

// GroupDistribution is the weather breakdown of one day-type group.
// Percentages is nil when Total is zero.
type GroupDistribution struct {
	DayType     DayType             `json:"day_type"`
	Total       int                 `json:"total"`
	Counts      map[Weather]int     `json:"counts"`
	Percentages map[Weather]float64 `json:"percentages"`
}

func (g GroupDistribution) HasData() bool {
	return g.Total > 0
}

func (g GroupDistribution) Err() error {
	if g.Total == 0 {
		return &MissingDataError{Statistic: "weather distribution on " + string(g.DayType) + "s"}
	}
	return nil
}

type WeatherDistribution struct {
	Working    GroupDistribution `json:"working_day"`
	NonWorking GroupDistribution `json:"non_working_day"`
}

type DayTypeSplit struct {
	Total                int     `json:"total"`
	WorkingCount         int     `json:"working_count"`
	NonWorkingCount      int     `json:"non_working_count"`
	WorkingPercentage    float64 `json:"working_percentage"`
	NonWorkingPercentage float64 `json:"non_working_percentage"`
}

// DatasetSummary bundles the three dataset statistics. Each statistic that
// could not be computed carries its own error message and leaves the others
// intact.
type DatasetSummary struct {
	DatasetVersion      string               `json:"dataset_version"`
	Records             int                  `json:"records"`
	MonthlyAverages     []MonthlyAverage     `json:"monthly_averages"`
	WeatherDistribution *WeatherDistribution `json:"weather_distribution,omitempty"`
	DistributionError   string               `json:"weather_distribution_error,omitempty"`
	DayTypeSplit        *DayTypeSplit        `json:"day_type_split,omitempty"`
	DayTypeSplitError   string               `json:"day_type_split_error,omitempty"`
	GeneratedAt         time.Time            `json:"generated_at"`
}
