package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/radiation-monitor/internal/config"
	"github.com/oshokin/radiation-monitor/internal/service/monitor"
	"github.com/oshokin/radiation-monitor/internal/version"
)

var (
	errNonPositiveIterations = errors.New("--iterations must be positive")
	errNonPositiveInterval   = errors.New("--interval must be positive")
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// iterations is the number of readings to take.
	iterations int
	// interval is the delay between readings.
	interval time.Duration
	// sensorKind selects the reading source.
	sensorKind string
	// constantValue is the reading of the constant sensor.
	constantValue float64
	// sequence holds the readings of the sequence sensor.
	sequence []float64
	// seed makes the live sensor reproducible.
	seed uint64
	// logLevel is the diagnostic log level.
	logLevel string
	// reportFile is where the session report is written.
	reportFile string

	// rootCmd represents the base command for a monitoring session.
	rootCmd = &cobra.Command{
		Use:   "radiation-monitor",
		Short: "Monitor radioactivity readings and raise a latched alarm.",
		Long: `Samples the plant's radioactivity sensor at a fixed interval and raises an alarm
when a reading leaves the safe range 17.0 - 21.0 (bounds included).

Once triggered the alarm stays on for the rest of the session; every further
out-of-range reading is counted. A status line is printed per reading and a
summary at the end. Settings come from an optional YAML file, flags override it.

The live sensor is simulated. Use --sensor constant or --sensor sequence to
replay known values.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Zero means "use the configured value" inside the service, so reject it here.
			if cmd.Flags().Changed("iterations") && iterations <= 0 {
				return errNonPositiveIterations
			}

			if cmd.Flags().Changed("interval") && interval <= 0 {
				return errNonPositiveInterval
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &monitor.Options{
				ConfigPath: configPath,
				Iterations: iterations,
				Interval:   interval,
				SensorKind: config.SensorKind(sensorKind),
				Sequence:   sequence,
				LogLevel:   logLevel,
				ReportFile: reportFile,
				Output:     cmd.OutOrStdout(),
			}

			// Only explicitly set flags override the configuration file.
			if cmd.Flags().Changed("value") {
				options.Value = &constantValue
			}

			if cmd.Flags().Changed("seed") {
				options.Seed = &seed
			}

			return monitor.Run(ctx, options)
		},
	}
)

// Execute runs the radiation-monitor CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&configPath, "config", "c", "", "path to configuration file")
	flags.IntVarP(&iterations, "iterations", "n", 0, "number of readings, must be positive (config value or 10 when omitted)")
	flags.DurationVarP(&interval, "interval", "i", 0, "delay between readings, must be positive (config value or 500ms when omitted)")
	flags.StringVarP(&sensorKind, "sensor", "s", "", "sensor to read: live, constant or sequence (default live)")
	flags.Float64Var(&constantValue, "value", 0, "reading of the constant sensor")
	flags.Float64SliceVar(&sequence, "sequence", nil, "readings of the sequence sensor, comma separated")
	flags.Uint64Var(&seed, "seed", 0, "seed of the live sensor")
	flags.StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error (default info)")
	flags.StringVarP(&reportFile, "report", "r", "", "write a JSON session report to this path")
}
