package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/radiation-monitor/internal/config"
	domain "github.com/oshokin/radiation-monitor/internal/domain/alarm"
)

// Repository defines persistence operations for session reports.
type Repository interface {
	Load(ctx context.Context) (*domain.Report, error)
	Save(ctx context.Context, report *domain.Report) error
}

// FileRepository persists a session report to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON report.
	path string
	// mu protects concurrent access to the report file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the report file does not exist yet.
	ErrNotFound = errors.New("report not found")
	// errReportIsNotSet is returned when Save receives a nil report.
	errReportIsNotSet = errors.New("report is not set")
	// errMalformedReport is returned when a field has an unexpected type.
	errMalformedReport = errors.New("malformed report")
)

// Document field names.
const (
	fieldHostname        = "hostname"
	fieldUsername        = "username"
	fieldStartedAt       = "started_at"
	fieldFinishedAt      = "finished_at"
	fieldPlannedReadings = "planned_readings"
	fieldReadings        = "readings"
	fieldLowThreshold    = "low_threshold"
	fieldHighThreshold   = "high_threshold"
	fieldState           = "state"
	fieldAlarmOn         = "alarm_on"
	fieldAlarmCount      = "alarm_count"
	fieldLastReading     = "last_reading"
)

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the report from disk.
func (r *FileRepository) Load(_ context.Context) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read report file: %w", err)
	}

	var doc structpb.Struct
	if err = protojson.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("decode report file: %w", err)
	}

	return fromStruct(&doc)
}

// Save writes the report to disk.
func (r *FileRepository) Save(_ context.Context, report *domain.Report) error {
	if report == nil {
		return errReportIsNotSet
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
		Indent:    "  ",
	}

	data, err := marshalOptions.Marshal(toStruct(report))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}

	return nil
}

// toStruct converts the domain report into its JSON document.
func toStruct(report *domain.Report) *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldStartedAt:       timeValue(report.StartedAt),
		fieldFinishedAt:      timeValue(report.FinishedAt),
		fieldPlannedReadings: structpb.NewNumberValue(float64(report.PlannedReadings)),
		fieldReadings:        structpb.NewNumberValue(float64(report.Readings)),
		fieldLowThreshold:    structpb.NewNumberValue(report.LowThreshold),
		fieldHighThreshold:   structpb.NewNumberValue(report.HighThreshold),
		fieldState:           structpb.NewStringValue(report.Final.State.String()),
		fieldAlarmOn:         structpb.NewBoolValue(report.Final.AlarmOn),
		fieldAlarmCount:      structpb.NewNumberValue(float64(report.Final.AlarmCount)),
		fieldLastReading:     readingValue(report.Final),
	}

	if report.Actor != nil {
		fields[fieldHostname] = structpb.NewStringValue(report.Actor.Hostname)
		fields[fieldUsername] = structpb.NewStringValue(report.Actor.Username)
	}

	return &structpb.Struct{Fields: fields}
}

// timeValue encodes t as RFC 3339, or null for the zero time.
func timeValue(t time.Time) *structpb.Value {
	if t.IsZero() {
		return structpb.NewNullValue()
	}

	return structpb.NewStringValue(t.UTC().Format(time.RFC3339Nano))
}

// readingValue encodes the last reading. JSON has no NaN or infinities, so those are strings.
func readingValue(s domain.Snapshot) *structpb.Value {
	switch {
	case !s.HasReading:
		return structpb.NewNullValue()
	case math.IsNaN(s.LastReading) || math.IsInf(s.LastReading, 0):
		return structpb.NewStringValue(strconv.FormatFloat(s.LastReading, 'g', -1, 64))
	default:
		return structpb.NewNumberValue(s.LastReading)
	}
}

// fromStruct converts a JSON document back into the domain report.
func fromStruct(doc *structpb.Struct) (*domain.Report, error) {
	fields := doc.GetFields()

	startedAt, err := parseTime(fields[fieldStartedAt])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldStartedAt, err)
	}

	finishedAt, err := parseTime(fields[fieldFinishedAt])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldFinishedAt, err)
	}

	lastReading, hasReading, err := parseReading(fields[fieldLastReading])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldLastReading, err)
	}

	alarmOn := fields[fieldAlarmOn].GetBoolValue()

	state := domain.StateQuiescent
	if alarmOn {
		state = domain.StateTriggered
	}

	var actor *domain.Actor
	if _, ok := fields[fieldHostname]; ok {
		actor = &domain.Actor{
			Hostname: fields[fieldHostname].GetStringValue(),
			Username: fields[fieldUsername].GetStringValue(),
		}
	}

	return &domain.Report{
		Actor:           actor,
		StartedAt:       startedAt,
		FinishedAt:      finishedAt,
		PlannedReadings: int(fields[fieldPlannedReadings].GetNumberValue()),
		Readings:        int(fields[fieldReadings].GetNumberValue()),
		LowThreshold:    fields[fieldLowThreshold].GetNumberValue(),
		HighThreshold:   fields[fieldHighThreshold].GetNumberValue(),
		Final: domain.Snapshot{
			State:       state,
			AlarmOn:     alarmOn,
			AlarmCount:  uint64(fields[fieldAlarmCount].GetNumberValue()),
			LastReading: lastReading,
			HasReading:  hasReading,
		},
	}, nil
}

// parseTime decodes a value written by timeValue.
func parseTime(v *structpb.Value) (time.Time, error) {
	switch kind := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return time.Time{}, nil
	case *structpb.Value_StringValue:
		t, err := time.Parse(time.RFC3339Nano, kind.StringValue)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse time: %w", err)
		}

		return t, nil
	default:
		return time.Time{}, errMalformedReport
	}
}

// parseReading decodes a value written by readingValue.
func parseReading(v *structpb.Value) (float64, bool, error) {
	switch kind := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return 0, false, nil
	case *structpb.Value_NumberValue:
		return kind.NumberValue, true, nil
	case *structpb.Value_StringValue:
		f, err := strconv.ParseFloat(kind.StringValue, 64)
		if err != nil {
			return 0, false, fmt.Errorf("parse reading: %w", err)
		}

		return f, true, nil
	default:
		return 0, false, errMalformedReport
	}
}
