// Package audit writes a structured trail of catalog writes with zap.
package audit

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type EventType string

const (
	EventJobCreated           EventType = "job_created"
	EventJobUpdated           EventType = "job_updated"
	EventJobDeleted           EventType = "job_deleted"
	EventCompanyCreated       EventType = "company_created"
	EventCompanyUpdated       EventType = "company_updated"
	EventApplicationCreated   EventType = "application_created"
	EventApplicationUpdated   EventType = "application_updated"
	EventBookmarkCreated      EventType = "bookmark_created"
	EventBookmarkRemoved      EventType = "bookmark_removed"
	EventUserRegistered       EventType = "user_registered"
	EventUserUpdated          EventType = "user_updated"
	EventFileUploaded         EventType = "file_uploaded"
	EventUploadRejected       EventType = "upload_rejected"
	EventRateLimitTriggered   EventType = "rate_limit_triggered"
	EventApplicationsExported EventType = "applications_exported"
)

// Event is one audit record. Subject identifies the record the event is about.
type Event struct {
	Timestamp   time.Time
	Event       EventType
	SubjectType string // "job", "company", "application", "bookmark", "user", "ip"
	SubjectID   int64
	IP          string
	Details     map[string]any
}

type Logger struct {
	zl          *zap.Logger
	service     string
	environment string
}

// New builds a production JSON logger on stdout. A disabled logger drops every event.
func New(service, environment string, enabled bool) *Logger {
	if !enabled {
		return NewWithZap(zap.NewNop(), service, environment)
	}

	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		zl, _ = zap.NewProduction()
	}
	return NewWithZap(zl, service, environment)
}

func NewWithZap(zl *zap.Logger, service, environment string) *Logger {
	return &Logger{zl: zl, service: service, environment: environment}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return NewWithZap(zap.NewNop(), "", "")
}

func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	level := zapcore.InfoLevel
	switch event.Event {
	case EventRateLimitTriggered, EventUploadRejected, EventJobDeleted:
		level = zapcore.WarnLevel
	}

	fields := []zap.Field{
		zap.String("service", l.service),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("at", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectID != 0 {
		fields = append(fields, zap.Int64("subject_id", event.SubjectID))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	l.zl.Log(level, string(event.Event), fields...)
}

// Record is shorthand for an event about a stored record.
func (l *Logger) Record(ctx context.Context, event EventType, subjectType string, id int64, details map[string]any) {
	l.Log(ctx, Event{Event: event, SubjectType: subjectType, SubjectID: id, Details: details})
}

func (l *Logger) LogRateLimitTriggered(ctx context.Context, ip, endpoint string) {
	l.Log(ctx, Event{
		Event:       EventRateLimitTriggered,
		SubjectType: "ip",
		IP:          ip,
		Details:     map[string]any{"endpoint": endpoint},
	})
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.zl.Sync()
}

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 3 || at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}
