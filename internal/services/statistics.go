package services

import (
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

// CalculateMonthlyAverages pools records by calendar month, ignoring the
// year, and returns January through December.
func CalculateMonthlyAverages(records []models.WeatherRecord) []models.MonthlyAverage {
	var minSums, maxSums [12]float64
	var counts [12]int

	for _, record := range records {
		idx := int(record.Date.Month()) - 1
		minSums[idx] += record.TempMin
		maxSums[idx] += record.TempMax
		counts[idx]++
	}

	averages := make([]models.MonthlyAverage, 12)
	for i := range averages {
		month := time.Month(i + 1)
		averages[i] = models.MonthlyAverage{
			Month: month,
			Label: month.String()[:3],
			Count: counts[i],
		}
		if counts[i] == 0 {
			continue
		}
		avgMin := minSums[i] / float64(counts[i])
		avgMax := maxSums[i] / float64(counts[i])
		averages[i].AvgMinTemp = &avgMin
		averages[i].AvgMaxTemp = &avgMax
	}

	return averages
}

// CalculateWeatherDistribution tallies weather categories per day-type group
// and converts each tally to a percentage of the group total. Records with
// an unknown day type are ignored. A grouped record whose weather is outside
// the four categories fails the whole computation.
func CalculateWeatherDistribution(records []models.WeatherRecord) (models.WeatherDistribution, error) {
	working := newGroup(models.DayTypeWorking)
	nonWorking := newGroup(models.DayTypeNonWorking)

	for _, record := range records {
		var group *models.GroupDistribution
		switch record.DayType {
		case models.DayTypeWorking:
			group = &working
		case models.DayTypeNonWorking:
			group = &nonWorking
		default:
			continue
		}

		weather, err := models.ParseWeather(record.Weather)
		if err != nil {
			return models.WeatherDistribution{}, &models.UnrecognizedCategoryError{
				Value: record.Weather,
				Date:  record.Date.String(),
			}
		}

		group.Total++
		group.Counts[weather]++
	}

	finishGroup(&working)
	finishGroup(&nonWorking)

	return models.WeatherDistribution{
		Working:    working,
		NonWorking: nonWorking,
	}, nil
}

func newGroup(dayType models.DayType) models.GroupDistribution {
	counts := make(map[models.Weather]int, len(models.Weathers))
	for _, w := range models.Weathers {
		counts[w] = 0
	}
	return models.GroupDistribution{DayType: dayType, Counts: counts}
}

func finishGroup(group *models.GroupDistribution) {
	if group.Total == 0 {
		return
	}
	group.Percentages = make(map[models.Weather]float64, len(models.Weathers))
	for _, w := range models.Weathers {
		group.Percentages[w] = float64(group.Counts[w]) / float64(group.Total) * 100
	}
}

// CalculateDayTypePercentages splits the dataset into working days and
// everything else.
func CalculateDayTypePercentages(records []models.WeatherRecord) (models.DayTypeSplit, error) {
	total := len(records)
	if total == 0 {
		return models.DayTypeSplit{}, &models.MissingDataError{Statistic: "day type split"}
	}

	working := 0
	for _, record := range records {
		if record.DayType == models.DayTypeWorking {
			working++
		}
	}
	nonWorking := total - working

	return models.DayTypeSplit{
		Total:                total,
		WorkingCount:         working,
		NonWorkingCount:      nonWorking,
		WorkingPercentage:    float64(working) / float64(total) * 100,
		NonWorkingPercentage: float64(nonWorking) / float64(total) * 100,
	}, nil
}

// Summarize computes all three statistics. A failing statistic is reported
// in its error field and does not prevent the others.
func Summarize(records []models.WeatherRecord, version string) *models.DatasetSummary {
	summary := &models.DatasetSummary{
		DatasetVersion:  version,
		Records:         len(records),
		MonthlyAverages: CalculateMonthlyAverages(records),
		GeneratedAt:     time.Now(),
	}

	if distribution, err := CalculateWeatherDistribution(records); err != nil {
		summary.DistributionError = err.Error()
	} else {
		summary.WeatherDistribution = &distribution
	}

	if split, err := CalculateDayTypePercentages(records); err != nil {
		summary.DayTypeSplitError = err.Error()
	} else {
		summary.DayTypeSplit = &split
	}

	return summary
}
