package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/username/workhome-schedule/internal/calendar"
	"github.com/username/workhome-schedule/internal/config"
	"github.com/username/workhome-schedule/internal/schedule"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "workhome",
		Short:         "Home/office rotation schedule",
		Long:          "Compute the next or previous working days of an alternating home/office rotation, skipping holidays from a calendar CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.GetLevel())
				if err != nil {
					initLogger("info") // Fallback to console
				}
			} else if err == nil {
				initLogger(cfg.Log.GetLevel())
			} else {
				initLogger("info") // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml if present)")

	rootCmd.AddCommand(walkCmd(schedule.Forward))
	rootCmd.AddCommand(walkCmd(schedule.Backward))
	rootCmd.AddCommand(calendarCmd())

	return rootCmd
}

// loadCalendar builds the configured source and loads it into a store.
// The returned source describes where the data was actually read from.
func loadCalendar(ctx context.Context, cfg *config.Config) (*calendar.Store, calendar.Source, error) {
	timeout := cfg.Calendar.GetTimeout()

	source := calendar.NewSource(cfg.Calendar.Source, timeout, logger)
	if cfg.Calendar.FallbackSource != "" {
		fallback := calendar.NewSource(cfg.Calendar.FallbackSource, timeout, logger)
		source = calendar.NewFallbackSource(source, fallback, logger)
	}

	loader := calendar.NewLoader(source, calendar.LoaderOptions{
		DateFormat: cfg.Calendar.DateFormat,
		Header:     cfg.Calendar.Header,
		Encoding:   cfg.Calendar.Encoding,
	}, logger)

	store, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load calendar: %w", err)
	}

	return store, loader.Source(), nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
