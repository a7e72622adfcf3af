package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/radiation-monitor/internal/config"
	domain "github.com/oshokin/radiation-monitor/internal/domain/alarm"
	"github.com/oshokin/radiation-monitor/internal/logger"
	"github.com/oshokin/radiation-monitor/internal/repository/report"
	"github.com/oshokin/radiation-monitor/internal/sensor"
	"github.com/oshokin/radiation-monitor/internal/service/common"
)

// Options controls a monitoring session. Zero values keep the configured settings.
type Options struct {
	// ConfigPath specifies the settings YAML file. Empty means built-in defaults.
	ConfigPath string
	// Iterations overrides the number of readings.
	Iterations int
	// Interval overrides the delay between readings.
	Interval time.Duration
	// SensorKind overrides the sensor variant.
	SensorKind config.SensorKind
	// Value overrides the constant sensor's reading.
	Value *float64
	// Sequence overrides the sequence sensor's readings.
	Sequence []float64
	// Seed overrides the live sensor's seed.
	Seed *uint64
	// LogLevel overrides the diagnostic log level.
	LogLevel string
	// ReportFile overrides the session report destination.
	ReportFile string
	// Sensor replaces the configured sensor entirely when set.
	Sensor sensor.Sensor
	// Output receives the console report. Defaults to stdout.
	Output io.Writer
}

// Run executes a monitoring session and blocks until it completes or ctx is canceled.
// Cancellation is not an error: the summary of the readings taken so far is printed.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "radiation-monitor")

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	// Apply the configured level to the session logger. Validate has already accepted it.
	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	ctx = logger.WithOptions(ctx, logger.WithLevel(level))

	// Build the reading source unless one was injected.
	source, sensorName := opts.Sensor, "injected"
	if source == nil {
		if source, err = sensor.FromConfig(&cfg.Sensor); err != nil {
			return fmt.Errorf("build sensor: %w", err)
		}

		sensorName = string(cfg.Sensor.Kind)
	}

	// Bind the alarm monitor to the sensor.
	monitor, err := domain.NewMonitor(source)
	if err != nil {
		return fmt.Errorf("create monitor: %w", err)
	}

	// Print to stdout unless the caller captures the console.
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	logger.InfoKV(ctx, "Starting monitoring session",
		"iterations", cfg.Iterations,
		"interval", cfg.Interval.String(),
		"sensor", sensorName)

	// Print the banner and run the evaluation loop.
	startedAt := time.Now()
	view := newConsole(out, cfg.Iterations)
	view.header(cfg.Iterations)

	completed, err := loop(ctx, monitor, view, cfg)
	if err != nil {
		return err
	}

	// Summarize the readings taken so far, even after an interruption.
	final := monitor.Snapshot()
	view.summary(final, completed, cfg.Iterations)

	logger.InfoKV(ctx, "Monitoring session finished",
		"readings", completed,
		"state", final.State.String(),
		"alarm_count", final.AlarmCount)

	if cfg.ReportFile == "" {
		return nil
	}

	// Persist the session report.
	r := domain.NewReport(actor(ctx), startedAt, time.Now(), cfg.Iterations, completed, final)

	return saveReport(ctx, cfg.ReportFile, r)
}

// loop evaluates the monitor once per interval and returns how many readings were taken.
// The first reading is taken immediately.
func loop(ctx context.Context, monitor *domain.Monitor, view *console, cfg *config.Config) (int, error) {
	// Setup reading ticker with the configured interval.
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for i := 1; i <= cfg.Iterations; i++ {
		// Wait for the next tick or cancellation; the first reading is not delayed.
		if i > 1 {
			select {
			case <-ctx.Done():
				logger.Info(ctx, "Context canceled, stopping")
				return i - 1, nil
			case <-ticker.C:
			}
		}

		result, err := monitor.Check(ctx)

		// Only the session's own cancellation ends the loop quietly.
		// A sensor's internal timeout is a failure like any other.
		switch {
		case err == nil:
		case ctx.Err() != nil && errors.Is(err, ctx.Err()):
			logger.Info(ctx, "Context canceled, stopping")
			return i - 1, nil
		default:
			logger.ErrorKV(ctx, "Evaluation failed", "reading", i, "error", err)
			return i - 1, fmt.Errorf("reading %d: %w", i, err)
		}

		logger.DebugKV(ctx, "Reading evaluated",
			"reading", i,
			"value", result.Reading,
			"out_of_range", result.OutOfRange)

		if result.NewlyTriggered {
			logger.WarnKV(ctx, "Alarm triggered", "reading", i, "value", result.Reading)
		}

		view.reading(i, monitor.IsAlarmOn(), result)
	}

	return cfg.Iterations, nil
}

// resolveConfig loads the settings file, if any, and applies option overrides.
func resolveConfig(opts *Options) (*config.Config, error) {
	cfg := config.Default()

	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}

		cfg = loaded
	}

	if opts.Iterations != 0 {
		cfg.Iterations = opts.Iterations
	}

	if opts.Interval != 0 {
		cfg.Interval = opts.Interval
	}

	if opts.SensorKind != "" {
		cfg.Sensor.Kind = opts.SensorKind
	}

	if opts.Value != nil {
		cfg.Sensor.Value = *opts.Value
	}

	if len(opts.Sequence) > 0 {
		cfg.Sensor.Sequence = opts.Sequence
	}

	if opts.Seed != nil {
		cfg.Sensor.Seed = opts.Seed
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.ReportFile != "" {
		cfg.ReportFile = opts.ReportFile
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	return cfg, nil
}

// actor detects who runs the session. The report is still written without one.
func actor(ctx context.Context) *domain.Actor {
	a, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Unable to detect actor", "error", err)
		return nil
	}

	return a
}

// saveReport persists the session report.
func saveReport(ctx context.Context, path string, r *domain.Report) error {
	if err := report.NewFileRepository(path).Save(ctx, r); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	logger.InfoKV(ctx, "Session report saved", "report_file", path)

	return nil
}
