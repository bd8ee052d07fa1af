package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/libreshelf/library-console-go/resource/oteladapters"
)

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")
	assert.NotNil(t, logger, "NewSlogBridgeLogger should return non-nil logger")
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug, // Capture all levels
	})

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	logger.DebugContext(ctx, "collection loaded", "collection", "authors")
	logger.InfoContext(ctx, "entity created", "entity_id", 7)
	logger.WarnContext(ctx, "refreshed entity is not part of the local collection")
	logger.ErrorContext(ctx, "remote call failed", "error", "connection refused")

	output := buf.String()

	assert.Contains(t, output, "collection loaded")
	assert.Contains(t, output, "entity created")
	assert.Contains(t, output, "refreshed entity is not part of the local collection")
	assert.Contains(t, output, "remote call failed")
	assert.Contains(t, output, `"collection":"authors"`)
	assert.Contains(t, output, `"entity_id":7`)
	assert.Contains(t, output, `"error":"connection refused"`)
}

func Test_OTelLogger_AllLevels(t *testing.T) {
	// The noop logger exercises the emit path without an OTel backend.
	otelLogger := noop.NewLoggerProvider().Logger("test")
	logger := oteladapters.NewOTelLogger(otelLogger)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "debug message", "key", "value")
		logger.InfoContext(ctx, "info message", "count", 3)
		logger.WarnContext(ctx, "warn message")
		logger.ErrorContext(ctx, "error message", "error", "boom")
	})
}

func Test_OTelLogger_OddArgsAreTolerated(t *testing.T) {
	otelLogger := noop.NewLoggerProvider().Logger("test")
	logger := oteladapters.NewOTelLogger(otelLogger)

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "message", "dangling_key")
	})
}
