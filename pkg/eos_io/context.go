// pkg/eos_io/context.go

package eos_io

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Component  string
	Attributes map[string]string
}

// NewContext sets up tracing and logging for one command invocation.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	if parent == nil {
		parent = context.Background()
	}
	ctx, span := telemetry.Start(parent, cmdName)

	traceID := span.SpanContext().TraceID().String()
	if !span.SpanContext().HasTraceID() {
		traceID = logger.GenerateTraceID()
	}

	comp, _ := resolveCallContext(3)
	log := logger.GetLogger().With(
		zap.String("component", comp),
		zap.String("action", cmdName),
		zap.String("trace_id", traceID),
	).Named(comp)

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        log,
		Timestamp:  time.Now(),
		Component:  comp,
		Command:    cmdName,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs outcome, records command attributes on the span, and flushes.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)
	success := err == nil

	if success {
		rc.Log.Debug("Command completed", zap.Duration("duration", duration))
	} else {
		rc.Log.Debug("Command failed", zap.Duration("duration", duration), zap.Error(err))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", telemetry.TruncateOrHashArgs(os.Args[1:])),
		attribute.String("version", shared.Version),
		attribute.String("category", telemetry.CommandCategory(rc.Command)),
		attribute.String("error_type", classifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)

	if !success {
		rc.Span.RecordError(err)
		rc.Span.SetStatus(codes.Error, classifyError(err))
	}

	shared.SafeSync()
}

// ––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Helper functions
// ––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

func resolveCallContext(skip int) (component, action string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	parts := strings.Split(file, "/")
	component = "unknown"
	if len(parts) >= 2 {
		component = parts[len(parts)-2]
	}
	action = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields := strings.Split(fn.Name(), ".")
		action = fields[len(fields)-1]
	}
	return
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if eos_err.IsExpectedUserError(err) {
		return "user"
	}
	return eos_err.GetCategory(err).String()
}
