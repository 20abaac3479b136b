package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workhome-schedule/internal/config"
	"github.com/username/workhome-schedule/internal/schedule"
	"github.com/username/workhome-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func walkCmd(dir schedule.Direction) *cobra.Command {
	var dateStr string
	var statusStr string
	var days int
	var output string

	cmd := &cobra.Command{
		Use:     "next",
		Short:   "Show the next working days and their home/office status",
		Example: "  workhome next --date 2020/04/06 --status office --days 5",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputText && output != outputJSON {
				return fmt.Errorf("--output must be '%s' or '%s', got '%s'", outputText, outputJSON, output)
			}

			// Load config
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if statusStr == "" {
				statusStr = cfg.Schedule.StartStatus
			}
			if statusStr == "" {
				return fmt.Errorf("%w: pass --status or set schedule.start_status", schedule.ErrInvalidStatus)
			}
			status, err := schedule.ParseStatus(statusStr)
			if err != nil {
				return err
			}

			n := cfg.Schedule.WorkingDays
			if cmd.Flags().Changed("days") {
				n = days
			}
			if n < 1 {
				return fmt.Errorf("%w, got %d", schedule.ErrInvalidArgument, n)
			}

			start := dateutil.Today()
			if dateStr != "" {
				start, err = dateutil.ParseDateAny(cfg.Calendar.DateFormat, dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}

			store, _, err := loadCalendar(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			req := schedule.Request{
				Start:       start,
				Status:      status,
				Direction:   dir,
				WorkingDays: n,
			}

			result, err := schedule.NewWalker(store, logger).Walk(req)
			if err != nil {
				return err
			}

			logger.Info("Schedule computed",
				zap.Time("start", start),
				zap.String("start_status", status.String()),
				zap.String("direction", dir.String()),
				zap.Int("working_days", len(result)))

			if output == outputJSON {
				return printJSON(cmd.OutOrStdout(), req, result, cfg.Calendar.DateFormat)
			}
			printText(cmd.OutOrStdout(), req, result, cfg.Calendar.DateFormat)
			return nil
		},
	}

	if dir == schedule.Backward {
		cmd.Use = "previous"
		cmd.Aliases = []string{"prev"}
		cmd.Short = "Show the previous working days and their home/office status"
		cmd.Example = "  workhome previous --date 2020/04/06 --status office --days 5"
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Start date, excluded from the result (default: today)")
	cmd.Flags().StringVar(&statusStr, "status", "", "Status on the start date: home or office (default: schedule.start_status)")
	cmd.Flags().IntVarP(&days, "days", "n", 1, "Number of working days (default: schedule.working_days)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")

	return cmd
}

func printText(w io.Writer, req schedule.Request, days []schedule.Day, layout string) {
	fmt.Fprintf(w, "📅 %s %d working day(s) from %s (%s):\n",
		titleOf(req.Direction), len(days), req.Start.Format(layout), req.Status)
	for _, day := range days {
		fmt.Fprintf(w, "  %s  %s  %s\n", day.Date.Format(layout), weekdayShort(day.Date), day.Status)
	}
}

func titleOf(dir schedule.Direction) string {
	if dir == schedule.Backward {
		return "Previous"
	}
	return "Next"
}

type jsonDay struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Status  string `json:"status"`
}

type jsonSchedule struct {
	Start       string    `json:"start"`
	StartStatus string    `json:"start_status"`
	Direction   string    `json:"direction"`
	Days        []jsonDay `json:"days"`
}

func printJSON(w io.Writer, req schedule.Request, days []schedule.Day, layout string) error {
	out := jsonSchedule{
		Start:       req.Start.Format(layout),
		StartStatus: req.Status.String(),
		Direction:   req.Direction.String(),
		Days:        make([]jsonDay, 0, len(days)),
	}
	for _, day := range days {
		out.Days = append(out.Days, jsonDay{
			Date:    day.Date.Format(layout),
			Weekday: day.Date.Weekday().String(),
			Status:  day.Status.String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func weekdayShort(t time.Time) string {
	return t.Weekday().String()[:3]
}
