// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	tracer   trace.Tracer
	shutdown = func(context.Context) error { return nil }
)

// Init configures OpenTelemetry; call this early in main().
func Init(service string) error {
	if !IsEnabled() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		shutdown = func(context.Context) error { return nil }
		return nil
	}

	telemetryFile := FilePath()
	if err := xdg.EnsureDir(telemetryFile); err != nil {
		return cerr.Wrap(err, "failed to create telemetry directory")
	}

	// Open telemetry file for appending (JSONL format)
	file, err := os.OpenFile(telemetryFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, shared.SecretFilePerm)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}

	// Use stdout exporter but write to file instead of stdout
	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(), // Spans already have timestamps
	)
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "failed to create file exporter")
	}

	metricExp, err := stdoutmetric.New(stdoutmetric.WithWriter(file))
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "failed to create metric exporter")
	}

	res := sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(service),
		semconv.ServiceVersion(shared.Version),
		attribute.String("host.name", hostname()),
		attribute.String("credgen.anon_id", AnonTelemetryID()),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	// The periodic reader also exports on Shutdown.
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	tracer = tp.Tracer(service)
	shutdown = func(ctx context.Context) error {
		err := mp.Shutdown(ctx)
		if tpErr := tp.Shutdown(ctx); err == nil {
			err = tpErr
		}
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		return err
	}
	return nil
}

// Shutdown flushes buffered spans and metrics. Safe to call when telemetry is disabled.
func Shutdown(ctx context.Context) error {
	return shutdown(ctx)
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background() // 🔧 Safe fallback
	}
	t := tracer
	if t == nil {
		t = otel.Tracer(shared.CredgenID)
	}
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// IsEnabled reports whether the user opted in, via CREDGEN_TELEMETRY=1 or the
// toggle file written by `credgen self telemetry on`.
func IsEnabled() bool {
	switch strings.ToLower(os.Getenv(shared.TelemetryEnv)) {
	case "1", "true", "on":
		return true
	case "0", "false", "off":
		return false
	}
	_, err := os.Stat(ToggleFilePath())
	return err == nil
}

// ToggleFilePath is the opt-in marker file.
func ToggleFilePath() string {
	return xdg.XDGConfigPath(shared.CredgenID, shared.TelemetryToggleFile)
}

// FilePath is where spans are appended as JSON lines.
func FilePath() string {
	return xdg.XDGStatePath(shared.CredgenID, shared.TelemetryFile)
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}

// TruncateOrHashArgs renders command-line arguments for a span attribute.
// Flags keep their name only; positional values are replaced by a short
// SHA-256 prefix so checked strings never land in the telemetry file.
func TruncateOrHashArgs(args []string) string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			name, _, _ := strings.Cut(a, "=")
			out = append(out, name)
			continue
		}
		sum := sha256.Sum256([]byte(a))
		out = append(out, "#"+hex.EncodeToString(sum[:4]))
	}

	full := strings.Join(out, " ")
	if len(full) > 256 {
		return full[:256] + "..."
	}
	return full
}

func CommandCategory(cmd string) string {
	switch {
	case strings.HasPrefix(cmd, "create"), strings.HasPrefix(cmd, "password"):
		return "generate"
	case strings.HasPrefix(cmd, "check"), strings.HasPrefix(cmd, "string"):
		return "inspect"
	default:
		return "general"
	}
}

func AnonTelemetryID() string {
	path := xdg.XDGStatePath(shared.CredgenID, "telemetry_id")

	if data, err := os.ReadFile(path); err == nil {
		return strings.TrimSpace(string(data))
	}

	id := "anon-" + uuid.New().String()
	_ = xdg.EnsureDir(path)
	_ = os.WriteFile(path, []byte(id), shared.SecretFilePerm)

	return id
}
