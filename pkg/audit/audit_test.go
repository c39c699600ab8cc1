package audit_test

import (
	"context"
	"testing"

	"job-portal-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", audit.MaskEmail("john@example.com"))
	assert.Equal(t, "***", audit.MaskEmail("ab"))
	assert.Equal(t, "***@x.io", audit.MaskEmail("a@x.io"))
}

func TestLogMasksEmailAndCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := audit.NewWithZap(zap.New(core))

	ctx := audit.WithRequestID(context.Background(), "req-1")
	l.Log(ctx, audit.Event{
		Type:         audit.EventCandidateRegistered,
		SubjectType:  "email",
		SubjectValue: "jane@example.com",
	})
	l.Log(ctx, audit.Event{Type: audit.EventPostingExpired, SubjectType: "posting", SubjectValue: "5"})

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "j***@example.com", fields["subject_value"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *audit.Logger
	assert.NotPanics(t, func() {
		l.Log(context.Background(), audit.Event{Type: audit.EventPostingDeleted})
	})
}
