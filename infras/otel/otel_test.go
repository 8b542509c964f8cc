package otel_test

import (
	"context"
	"errors"
	"testing"

	"tablebook/config"
	"tablebook/infras/otel"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewWithoutEndpoint(t *testing.T) {
	conf := &config.Config{}
	conf.App.Name = "tablebook-test"

	tracer := otel.New(conf)

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.test")
	defer scope.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, scope)
}

func TestScopeRecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "span")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"query":   "SELECT 1",
		"rows":    3,
		"ok":      true,
		"columns": []string{"a", "b"},
		"id":      int64(9),
	})
	scope.AddEvent("checked")
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	spans := recorder.Ended()
	if assert.Len(t, spans, 1) {
		assert.Len(t, spans[0].Attributes(), 5)
		assert.Equal(t, "boom", spans[0].Status().Description)
		assert.Len(t, spans[0].Events(), 2)
	}
}
