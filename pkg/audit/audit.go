// Package audit records domain events (registrations, applications,
// posting changes) as structured zap entries separate from the app log.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventCandidateRegistered  EventType = "candidate_registered"
	EventUserCreated          EventType = "user_created"
	EventCandidateCreated     EventType = "candidate_created"
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationDuplicate EventType = "application_duplicate"
	EventProfileReplaced      EventType = "profile_replaced"
	EventPostingCreated       EventType = "posting_created"
	EventPostingUpdated       EventType = "posting_updated"
	EventPostingDeleted       EventType = "posting_deleted"
	EventPostingExpired       EventType = "posting_expired_rejected"
	EventRateLimitTriggered   EventType = "rate_limit_triggered"
)

type requestIDKey struct{}

// WithRequestID stores the request id so events can be correlated.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Event is one audit record.
type Event struct {
	Type         EventType
	SubjectType  string // "candidate", "posting", "email", "ip"
	SubjectValue string
	Details      map[string]any
}

type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// New builds a production zap logger writing ISO8601 JSON to stdout.
func New(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		zl, _ = zap.NewProduction()
	}
	return &Logger{zapLogger: zl, serviceName: serviceName, environment: environment}
}

// NewWithZap wraps an existing zap logger. Tests pass zaptest/observer cores.
func NewWithZap(zl *zap.Logger) *Logger {
	return &Logger{zapLogger: zl, serviceName: "test", environment: "test"}
}

// Nop discards every event.
func Nop() *Logger {
	return NewWithZap(zap.NewNop())
}

func levelFor(t EventType) zapcore.Level {
	switch t {
	case EventApplicationDuplicate, EventPostingExpired, EventRateLimitTriggered:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Type)),
		zap.Time("at", time.Now().UTC()),
	}
	if event.SubjectType != "" {
		fields = append(fields,
			zap.String("subject_type", event.SubjectType),
			zap.String("subject_value", maskValue(event.SubjectType, event.SubjectValue)),
		)
	}
	if id := requestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}
	l.zapLogger.Log(levelFor(event.Type), string(event.Type), fields...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***" + email[1:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue returns the first 16 hex chars of SHA-256(value).
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func maskValue(subjectType, value string) string {
	switch subjectType {
	case "email":
		return MaskEmail(value)
	case "candidate", "posting", "user", "ip":
		return value
	default:
		return HashValue(value)
	}
}
