package services

import (
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

const DefaultMonthsPerRow = 4

var calendarLegend = []models.LegendEntry{
	{ClassName: models.ClassWorkingDay, Label: "Working Day"},
	{ClassName: models.ClassRainDay, Label: "Rain Day"},
	{ClassName: models.ClassSnowDay, Label: "Snow Day"},
	{ClassName: models.ClassColdDay, Label: "Cold Day"},
	{ClassName: models.ClassToday, Label: "Date Today"},
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{year: y, month: m, day: d}
}

// ShiftDate moves a date forward by exactly one day. Range endpoints and
// event dates both go through it before they are placed on the grid; the
// renderer expects the shifted positions.
func ShiftDate(d models.Date) models.Date {
	return models.Date{Time: d.AddDate(0, 0, 1)}
}

func firstOfMonth(d models.Date) models.Date {
	y, m, _ := d.Date()
	return models.NewDate(y, m, 1)
}

// DaysInMonth uses day 0 of the following month, which normalizes to the
// last day of the requested one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EnumerateMonths returns the first day of every month overlapping
// [start, end] in chronological order. It is empty when start's month comes
// after end's month.
func EnumerateMonths(start, end models.Date) []models.Date {
	current := firstOfMonth(start)
	last := firstOfMonth(end)

	var months []models.Date
	for !current.After(last.Time) {
		months = append(months, current)
		current = models.Date{Time: current.AddDate(0, 1, 0)}
	}
	return months
}

// BuildMonthGrid lays out one month. Each event is shifted forward one day
// before matching; when several events land on the same day the first one
// wins.
func BuildMonthGrid(month models.Date, events []models.CalendarEvent, today time.Time) models.MonthGrid {
	year, mon, _ := month.Date()
	days := DaysInMonth(year, mon)

	classes := make(map[dayKey]string)
	for _, event := range events {
		key := keyOf(ShiftDate(event.Start).Time)
		if key.year != year || key.month != mon {
			continue
		}
		if _, taken := classes[key]; !taken {
			classes[key] = event.ClassName
		}
	}

	todayKey := keyOf(today)
	grid := models.MonthGrid{
		MonthLabel: month.Format("January 2006"),
		Year:       year,
		Month:      mon,
		Days:       make([]models.DayCell, days),
	}
	for i := range grid.Days {
		key := dayKey{year: year, month: mon, day: i + 1}
		grid.Days[i] = models.DayCell{
			Day:       i + 1,
			ClassName: classes[key],
			IsToday:   key == todayKey,
		}
	}

	return grid
}

// PackRows groups months into rows of at most perRow, left to right and top
// to bottom.
func PackRows(months []models.MonthGrid, perRow int) [][]models.MonthGrid {
	if perRow <= 0 {
		perRow = DefaultMonthsPerRow
	}

	rows := make([][]models.MonthGrid, 0, (len(months)+perRow-1)/perRow)
	for i := 0; i < len(months); i += perRow {
		end := i + perRow
		if end > len(months) {
			end = len(months)
		}
		rows = append(rows, months[i:end])
	}
	return rows
}

// BuildCalendar shifts the range endpoints forward one day, builds a grid
// for every month the shifted range touches and packs them into rows.
func BuildCalendar(start, end models.Date, events []models.CalendarEvent, today time.Time, perRow int) models.CalendarLayout {
	months := EnumerateMonths(ShiftDate(start), ShiftDate(end))

	grids := make([]models.MonthGrid, 0, len(months))
	for _, month := range months {
		grids = append(grids, BuildMonthGrid(month, events, today))
	}

	return models.CalendarLayout{
		Start:  start,
		End:    end,
		Months: grids,
		Rows:   PackRows(grids, perRow),
		Single: len(grids) == 1,
		Legend: append([]models.LegendEntry(nil), calendarLegend...),
	}
}
