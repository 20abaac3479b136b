package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workhome-schedule/internal/calendar"
	"github.com/username/workhome-schedule/internal/config"
	"github.com/username/workhome-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Inspect or generate holiday calendars",
	}

	cmd.AddCommand(calendarInfoCmd())
	cmd.AddCommand(calendarGenerateCmd())

	return cmd
}

func calendarInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Load the configured calendar and print what it covers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store, source, err := loadCalendar(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), source.String(), store.Summary(), cfg.Calendar.DateFormat)
			return nil
		},
	}
}

func printSummary(w io.Writer, source string, sum calendar.Summary, layout string) {
	fmt.Fprintf(w, "📅 Calendar: %s\n", source)
	fmt.Fprintf(w, "  Entries:      %d\n", sum.Entries)
	fmt.Fprintf(w, "  Holidays:     %d\n", sum.Holidays)
	fmt.Fprintf(w, "  Working days: %d\n", sum.Entries-sum.Holidays)
	if sum.Entries > 0 {
		fmt.Fprintf(w, "  Covers:       %s (%s) .. %s (%s)\n",
			sum.First.Format(layout), weekdayShort(sum.First),
			sum.Last.Format(layout), weekdayShort(sum.Last))
	}
}

func calendarGenerateCmd() *cobra.Command {
	var fromStr, toStr, holidays, outPath, layout string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a calendar CSV with weekends and public holidays flagged",
		Example: "  workhome calendar generate --from 2024/01/01 --to 2024/12/31 --holidays us --out calendar.csv\n" +
			"  workhome calendar generate --from 2024/01/01 --to 2024/03/31 --holidays none",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromStr == "" || toStr == "" {
				return fmt.Errorf("--from and --to are required")
			}

			from, err := dateutil.ParseDateAny(layout, fromStr)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			to, err := dateutil.ParseDateAny(layout, toStr)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			opts := calendar.GenerateOptions{
				DateFormat: layout,
				Holidays:   holidays,
			}

			if outPath == "" {
				_, err := calendar.Generate(cmd.OutOrStdout(), from, to, opts)
				return err
			}

			return generateToFile(outPath, from, to, opts)
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "First date to include (required)")
	cmd.Flags().StringVar(&toStr, "to", "", "Last date to include (required)")
	cmd.Flags().StringVar(&holidays, "holidays", "none",
		fmt.Sprintf("Holiday set: %s", strings.Join(calendar.HolidaySets(), ", ")))
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&layout, "date-format", dateutil.DefaultLayout, "Go time layout for the date column")

	return cmd
}

func generateToFile(path string, from, to time.Time, opts calendar.GenerateOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := calendar.Generate(f, from, to, opts)
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info("Calendar generated",
		zap.String("file", path),
		zap.Int("entries", n),
		zap.String("holidays", opts.Holidays))

	return nil
}
