package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

// Columns is the fixed column order of the dataset.
var Columns = []string{"date", "temp_max", "temp_min", "weather", "day_type"}

// Parse reads the dataset, skipping the header row and blank lines. The
// first malformed row rejects the whole parse with a *models.MalformedInputError;
// nothing is coerced to zero. Fields may be RFC 4180 quoted; a stray quote
// inside an unquoted field is malformed.
func Parse(r io.Reader) ([]models.WeatherRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var records []models.WeatherRecord
	header := true

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			return nil, &models.MalformedInputError{Line: line, Reason: "unreadable row", Err: err}
		}
		line, _ := reader.FieldPos(0)
		if header {
			header = false
			continue
		}

		record, err := parseRow(row, line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string, line int) (models.WeatherRecord, error) {
	if len(row) != len(Columns) {
		return models.WeatherRecord{}, &models.MalformedInputError{
			Line:   line,
			Reason: "expected " + strconv.Itoa(len(Columns)) + " columns, got " + strconv.Itoa(len(row)),
		}
	}

	date, err := models.ParseDate(row[0])
	if err != nil {
		return models.WeatherRecord{}, &models.MalformedInputError{Line: line, Reason: "bad date", Err: err}
	}

	tempMax, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return models.WeatherRecord{}, &models.MalformedInputError{Line: line, Reason: "bad temp_max", Err: err}
	}

	tempMin, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return models.WeatherRecord{}, &models.MalformedInputError{Line: line, Reason: "bad temp_min", Err: err}
	}

	return models.WeatherRecord{
		Date:    date,
		TempMax: tempMax,
		TempMin: tempMin,
		Weather: row[3],
		DayType: models.ParseDayType(row[4]),
	}, nil
}
