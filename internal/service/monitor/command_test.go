package monitor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/radiation-monitor/internal/config"
	domain "github.com/oshokin/radiation-monitor/internal/domain/alarm"
	"github.com/oshokin/radiation-monitor/internal/repository/report"
	"github.com/oshokin/radiation-monitor/internal/sensor"
)

var errSensorFault = errors.New("sensor fault")

// faultySensor succeeds a fixed number of times and then fails.
type faultySensor struct {
	okCalls int
}

// NextMeasurement returns a safe reading until okCalls is exhausted.
func (f *faultySensor) NextMeasurement(context.Context) (float64, error) {
	if f.okCalls == 0 {
		return 0, errSensorFault
	}

	f.okCalls--

	return 19.0, nil
}

// timeoutSensor fails with its own read deadline while the session is still running.
type timeoutSensor struct{}

// NextMeasurement reports a hardware timeout.
func (timeoutSensor) NextMeasurement(context.Context) (float64, error) {
	return 0, fmt.Errorf("hardware read: %w", context.DeadlineExceeded)
}

// newSequence builds a sequence sensor for tests.
func newSequence(t *testing.T, values ...float64) *sensor.Sequence {
	t.Helper()

	s, err := sensor.NewSequence(values...)
	require.NoError(t, err)

	return s
}

// statusLines returns the per-reading lines of a console report.
func statusLines(output string) []string {
	var lines []string

	for line := range strings.SplitSeq(output, "\n") {
		if strings.HasPrefix(line, "Reading ") {
			lines = append(lines, line)
		}
	}

	return lines
}

// TestRun_Scenario runs the reference four-reading scenario and checks the console report.
func TestRun_Scenario(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		Iterations: 4,
		Interval:   time.Millisecond,
		Sensor:     newSequence(t, 18.0, 19.0, 25.0, 15.0),
		Output:     &out,
	})
	require.NoError(t, err)

	output := out.String()
	require.Contains(t, output, "Nuclear Power Plant Radioactivity Monitor")
	require.Contains(t, output, "Safe range: 17.0 - 21.0")
	require.Contains(t, output, "Starting monitoring simulation (4 readings)...")

	lines := statusLines(output)
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Reading 01: Status = Normal")
	require.Contains(t, lines[1], "Reading 02: Status = Normal")
	require.Contains(t, lines[2], "Reading 03: Status = ")
	require.Contains(t, lines[2], "ALARM!")
	require.Contains(t, lines[2], "[NEW]")
	require.Contains(t, lines[3], "ALARM!")
	require.NotContains(t, lines[3], "[NEW]")

	require.Contains(t, output, "Final alarm state: ")
	require.Contains(t, output, "TRIGGERED")
	require.Contains(t, output, "Total alarm triggers: 2")
	require.Contains(t, output, "Monitoring complete.")
}

// TestRun_QuietSession checks a session with only safe readings ends with the alarm off.
func TestRun_QuietSession(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		Iterations: 3,
		Interval:   time.Millisecond,
		SensorKind: config.SensorKindSequence,
		Sequence:   []float64{17.0, 19.0, 21.0},
		Output:     &out,
	})
	require.NoError(t, err)

	output := out.String()
	require.Len(t, statusLines(output), 3)
	require.NotContains(t, output, "ALARM!")
	require.Contains(t, output, "Final alarm state: ")
	require.Contains(t, output, "OFF")
	require.Contains(t, output, "Total alarm triggers: 0")
}

// TestRun_WritesReport verifies the session report is persisted with the final state.
func TestRun_WritesReport(t *testing.T) {
	t.Parallel()

	reportFile := filepath.Join(t.TempDir(), "report.json")
	value := 100.0

	err := Run(context.Background(), &Options{
		Iterations: 2,
		Interval:   time.Millisecond,
		SensorKind: config.SensorKindConstant,
		Value:      &value,
		ReportFile: reportFile,
		Output:     new(bytes.Buffer),
	})
	require.NoError(t, err)

	r, err := report.NewFileRepository(reportFile).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, r.PlannedReadings)
	require.Equal(t, 2, r.Readings)
	require.InDelta(t, domain.LowThreshold(), r.LowThreshold, 0)
	require.InDelta(t, domain.HighThreshold(), r.HighThreshold, 0)
	require.Equal(t, domain.Snapshot{
		State:       domain.StateTriggered,
		AlarmOn:     true,
		AlarmCount:  2,
		LastReading: 100.0,
		HasReading:  true,
	}, r.Final)
	require.False(t, r.FinishedAt.Before(r.StartedAt))
}

// TestRun_ReadsConfigFile ensures file settings drive the session and options override them.
func TestRun_ReadsConfigFile(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	err := config.Save(cfgPath, &config.Config{
		Iterations: 5,
		Interval:   time.Millisecond,
		Sensor: config.SensorConfig{
			Kind:     config.SensorKindSequence,
			Sequence: []float64{15.0, 19.0, 20.0},
		},
	})
	require.NoError(t, err)

	var out bytes.Buffer

	err = Run(context.Background(), &Options{
		ConfigPath: cfgPath,
		Iterations: 3,
		Output:     &out,
	})
	require.NoError(t, err)

	output := out.String()
	require.Len(t, statusLines(output), 3)
	require.Contains(t, output, "Total alarm triggers: 1")
}

// TestRun_KeepsIntervalBetweenReadings checks readings are spaced by the interval, the first one immediate.
func TestRun_KeepsIntervalBetweenReadings(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		start := time.Now()

		err := Run(context.Background(), &Options{
			Iterations: 10,
			Interval:   500 * time.Millisecond,
			Sensor:     sensor.NewConstant(19.0),
			Output:     new(bytes.Buffer),
		})
		require.NoError(t, err)

		require.Equal(t, 9*500*time.Millisecond, time.Since(start))
	})
}

// TestRun_CanceledMidway verifies cancellation stops the loop and still prints the summary.
func TestRun_CanceledMidway(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 1200*time.Millisecond)
		defer cancel()

		var out bytes.Buffer

		err := Run(ctx, &Options{
			Iterations: 10,
			Interval:   500 * time.Millisecond,
			Sensor:     sensor.NewConstant(25.0),
			Output:     &out,
		})
		require.NoError(t, err)

		output := out.String()
		require.Len(t, statusLines(output), 3)
		require.Contains(t, output, "Total alarm triggers: 3")
		require.Contains(t, output, "Monitoring interrupted after 3 of 10 readings.")
	})
}

// TestRun_CanceledMidwayWritesPartialReport verifies an interrupted session records planned and taken readings.
func TestRun_CanceledMidwayWritesPartialReport(t *testing.T) {
	t.Parallel()

	reportFile := filepath.Join(t.TempDir(), "report.json")

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 1200*time.Millisecond)
		defer cancel()

		err := Run(ctx, &Options{
			Iterations: 10,
			Interval:   500 * time.Millisecond,
			Sensor:     sensor.NewConstant(25.0),
			ReportFile: reportFile,
			Output:     new(bytes.Buffer),
		})
		require.NoError(t, err)
	})

	r, err := report.NewFileRepository(reportFile).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, r.PlannedReadings)
	require.Equal(t, 3, r.Readings)
	require.Equal(t, uint64(3), r.Final.AlarmCount)
}

// TestRun_SensorFailure asserts sensor errors are surfaced to the caller.
func TestRun_SensorFailure(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		Iterations: 5,
		Interval:   time.Millisecond,
		Sensor:     &faultySensor{okCalls: 2},
		Output:     &out,
	})
	require.ErrorIs(t, err, errSensorFault)
	require.Len(t, statusLines(out.String()), 2)
}

// TestRun_SensorTimeoutIsFailure asserts a sensor's own deadline error is not taken for session cancellation.
func TestRun_SensorTimeoutIsFailure(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		Iterations: 3,
		Interval:   time.Millisecond,
		Sensor:     timeoutSensor{},
		Output:     &out,
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Empty(t, statusLines(out.String()))
	require.NotContains(t, out.String(), "interrupted")
}

// TestRun_InvalidSettings covers configuration errors reported before the session starts.
func TestRun_InvalidSettings(t *testing.T) {
	t.Parallel()

	cases := map[string]*Options{
		"missing config file": {ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")},
		"negative iterations": {Iterations: -1},
		"unknown sensor":      {SensorKind: "geiger"},
		"empty sequence":      {SensorKind: config.SensorKindSequence},
		"unknown log level":   {LogLevel: "loud"},
	}

	for name, opts := range cases {
		var out bytes.Buffer

		opts.Output = &out

		require.Error(t, Run(context.Background(), opts), name)
		require.Empty(t, out.String(), name)
	}
}
