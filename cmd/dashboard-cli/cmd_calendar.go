package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print the calendar grid for a date range",
	Long: `Build the month grids for a date range. Events are read from a JSON file
holding either an array of {"start", "className"} objects or a full
prediction response with an "events" field.`,
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	calendarCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	calendarCmd.Flags().String("events", "", "events JSON file")
	calendarCmd.Flags().String("today", "", "date to highlight as today (default: current date)")
	calendarCmd.Flags().Int("per-row", services.DefaultMonthsPerRow, "months per row")
	calendarCmd.MarkFlagRequired("start")
	calendarCmd.MarkFlagRequired("end")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	eventsPath, _ := cmd.Flags().GetString("events")
	todayStr, _ := cmd.Flags().GetString("today")
	perRow, _ := cmd.Flags().GetInt("per-row")

	start, err := models.ParseDate(startStr)
	if err != nil {
		return err
	}
	end, err := models.ParseDate(endStr)
	if err != nil {
		return err
	}
	if start.After(end.Time) {
		return fmt.Errorf("start date %s is after end date %s", start, end)
	}

	today := time.Now()
	if todayStr != "" {
		parsed, err := models.ParseDate(todayStr)
		if err != nil {
			return err
		}
		today = parsed.Time
	}

	var events []models.CalendarEvent
	if eventsPath != "" {
		events, err = readEvents(eventsPath)
		if err != nil {
			return err
		}
	}

	return writeJSON(cmd.OutOrStdout(), services.BuildCalendar(start, end, events, today, perRow))
}

func readEvents(path string) ([]models.CalendarEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var events []models.CalendarEvent
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("parse events %s: %w", path, err)
		}
		return events, nil
	}

	var response models.PredictResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("parse events %s: %w", path, err)
	}
	return response.Events, nil
}
