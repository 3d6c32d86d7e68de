package mylogger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Info(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	log(ctx, logger, zapcore.InfoLevel, msg, fields)
}

func Error(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	log(ctx, logger, zapcore.ErrorLevel, msg, fields)
}

func Warn(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	log(ctx, logger, zapcore.WarnLevel, msg, fields)
}

func Debug(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	log(ctx, logger, zapcore.DebugLevel, msg, fields)
}

// TraceFields returns trace_id and span_id fields for the span in ctx, if any.
func TraceFields(ctx context.Context) []zap.Field {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return nil
	}

	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

func log(ctx context.Context, logger *zap.Logger, level zapcore.Level, msg string, fields []zap.Field) {
	if ctx != nil {
		fields = append(fields, TraceFields(ctx)...)
	}

	// skip log and the exported wrapper
	logger.WithOptions(zap.AddCallerSkip(2)).Log(level, msg, fields...)
}
