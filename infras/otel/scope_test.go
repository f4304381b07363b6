package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	"edurooms/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingOtel() (*otelImpl, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()

	return &otelImpl{TracerProvider: trace.NewTracerProvider(trace.WithSpanProcessor(recorder))}, recorder
}

func attributeOf(span trace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int64
		wantStatus codes.Code
	}{
		{name: "conflict stays unset", err: failure.Conflict("room already booked"), wantCode: 400, wantStatus: codes.Unset},
		{name: "not found stays unset", err: failure.NotFound("reservation"), wantCode: 404, wantStatus: codes.Unset},
		{name: "plain error is server side", err: errors.New("connection reset"), wantCode: 500, wantStatus: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, recorder := newRecordingOtel()

			_, scope := tracer.NewScope(context.Background(), "test", "test.TraceError")
			scope.TraceError(tt.err)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)

			code, ok := attributeOf(spans[0], attributeFailureCode)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, code.AsInt64())
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)
			assert.Len(t, spans[0].Events(), 1)
		})
	}
}

func TestScope_TraceIfErrorNil(t *testing.T) {
	tracer, recorder := newRecordingOtel()

	_, scope := tracer.NewScope(context.Background(), "test", "test.TraceIfError")
	scope.TraceIfError(nil)
	scope.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Empty(t, recorder.Ended()[0].Events())
}

func TestScope_SetAttributes(t *testing.T) {
	tracer, recorder := newRecordingOtel()

	date := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

	_, scope := tracer.NewScope(context.Background(), "test", "test.SetAttributes")
	scope.SetAttributes(map[string]any{
		"room_id":   int64(3),
		"confirmed": true,
		"date":      date,
		"slots":     []string{"08:00", "09:30"},
	})
	scope.End()

	span := recorder.Ended()[0]

	roomID, _ := attributeOf(span, "room_id")
	assert.Equal(t, int64(3), roomID.AsInt64())

	confirmed, _ := attributeOf(span, "confirmed")
	assert.True(t, confirmed.AsBool())

	day, _ := attributeOf(span, "date")
	assert.Equal(t, "2025-11-10T09:00:00Z", day.AsString())

	slots, _ := attributeOf(span, "slots")
	assert.Equal(t, []string{"08:00", "09:30"}, slots.AsStringSlice())
}
