package models

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"
)

func TestParseWeather(t *testing.T) {
	cases := []struct {
		value string
		want  Weather
		ok    bool
	}{
		{"drizzle", WeatherDrizzle, true},
		{"rain", WeatherRain, true},
		{"snow", WeatherSnow, true},
		{"sun", WeatherSun, true},
		{"fog", "", false},
		{"Rain", "", false},
		{" sun", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, err := ParseWeather(tc.value)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("ParseWeather(%q) = %q, %v", tc.value, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrUnrecognizedCategory) {
			t.Errorf("ParseWeather(%q) err = %v, want ErrUnrecognizedCategory", tc.value, err)
		}
	}
}

func TestParseDayType(t *testing.T) {
	cases := map[string]DayType{
		"Working Day":       DayTypeWorking,
		"working day":       DayTypeWorking,
		"  WORKING DAY ":    DayTypeWorking,
		"Non-working Day":   DayTypeNonWorking,
		"non-working day\t": DayTypeNonWorking,
		"Holiday":           DayTypeUnknown,
		"Non working Day":   DayTypeUnknown,
		"":                  DayTypeUnknown,
	}

	for value, want := range cases {
		if got := ParseDayType(value); got != want {
			t.Errorf("ParseDayType(%q) = %q, want %q", value, got, want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var event CalendarEvent
	if err := json.Unmarshal([]byte(`{"start": "2024-02-29", "className": "snow-style"}`), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !event.Start.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)) || event.ClassName != ClassSnowDay {
		t.Errorf("event = %+v", event)
	}

	out, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"start":"2024-02-29","className":"snow-style"}` {
		t.Errorf("marshal = %s", out)
	}

	for _, bad := range []string{`{"start": "2024-02-30"}`, `{"start": "29/02/2024"}`, `{"start": null}`} {
		if err := json.Unmarshal([]byte(bad), &event); err == nil {
			t.Errorf("expected error decoding %s", bad)
		}
	}
}

func TestErrorMatching(t *testing.T) {
	var err error = &MissingDataError{Statistic: "day type split"}
	if !errors.Is(err, ErrMissingData) || errors.Is(err, ErrMalformedInput) {
		t.Errorf("MissingDataError matching wrong: %v", err)
	}

	err = &UnrecognizedCategoryError{Value: "fog", Date: "2012-01-03"}
	if !errors.Is(err, ErrUnrecognizedCategory) {
		t.Errorf("UnrecognizedCategoryError should match sentinel")
	}
	if err.Error() != `unrecognized weather category "fog" on 2012-01-03` {
		t.Errorf("message = %q", err.Error())
	}

	err = &MalformedInputError{Line: 4, Reason: "bad temp_max", Err: io.ErrUnexpectedEOF}
	if !errors.Is(err, ErrMalformedInput) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("MalformedInputError should match sentinel and cause")
	}
	if err.Error() != "line 4: bad temp_max: unexpected EOF" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestMonthlyAverageErr(t *testing.T) {
	empty := MonthlyAverage{Month: time.June}
	if empty.HasData() || !errors.Is(empty.Err(), ErrMissingData) {
		t.Errorf("empty month should report missing data")
	}

	value := 12.5
	full := MonthlyAverage{Month: time.June, Count: 2, AvgMinTemp: &value, AvgMaxTemp: &value}
	if !full.HasData() || full.Err() != nil {
		t.Errorf("populated month reported %v", full.Err())
	}
}

func TestEvaluationFrom(t *testing.T) {
	resp := &PredictResponse{
		AccuracyTempMin:     71.5,
		MAETempMax:          2.6,
		ReportDayType:       "report",
		WorkingDaysCount:    5,
		NonWorkingDaysCount: 2,
	}

	eval := EvaluationFrom(resp)
	if eval.AccuracyTempMin != 71.5 || eval.MAETempMax != 2.6 || eval.ReportDayType != "report" ||
		eval.WorkingDaysCount != 5 || eval.NonWorkingDaysCount != 2 {
		t.Errorf("evaluation = %+v", eval)
	}
}
