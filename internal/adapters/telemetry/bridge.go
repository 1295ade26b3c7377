package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/siftlab/sift/internal/core/ports"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var _ sdktrace.SpanProcessor = (*LoggerBridge)(nil)

// LoggerBridge is a span processor that forwards completed spans to the
// logger at debug level, so traced operations show up in verbose output
// without requiring an external collector.
type LoggerBridge struct {
	logger ports.Logger
}

// NewLoggerBridge creates a span processor that logs span completions.
func NewLoggerBridge(logger ports.Logger) *LoggerBridge {
	return &LoggerBridge{logger: logger}
}

func (b *LoggerBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

func (b *LoggerBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Microsecond)
	b.logger.Debug(fmt.Sprintf("span %s completed in %s", s.Name(), elapsed))
}

func (b *LoggerBridge) Shutdown(_ context.Context) error { return nil }

func (b *LoggerBridge) ForceFlush(_ context.Context) error { return nil }

// Setup installs a tracer provider that feeds completed spans through the
// bridge. The returned shutdown function flushes pending spans.
func Setup(logger ports.Logger) func(context.Context) error {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewLoggerBridge(logger)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown
}
