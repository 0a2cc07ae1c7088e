package telemetry_management

import (
	"bufio"
	"bytes"
	"os"
	"strconv"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_io"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/telemetry"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Status summarises the local telemetry setup.
type Status struct {
	Enabled    bool
	EnvForced  bool
	ToggleFile string
	DataFile   string
	SpanCount  int
}

// Enable writes the opt-in toggle file.
func Enable(rc *eos_io.RuntimeContext) error {
	logger := otelzap.Ctx(rc.Ctx)
	stateFile := telemetry.ToggleFilePath()

	if err := xdg.EnsureDir(stateFile); err != nil {
		logger.Error("Failed to create config directory", zap.Error(err))
		return cerr.Wrap(err, "mkdir failed")
	}
	if err := os.WriteFile(stateFile, []byte("on\n"), shared.SecretFilePerm); err != nil {
		logger.Error("Failed to write telemetry toggle file", zap.Error(err))
		return cerr.Wrap(err, "enable telemetry")
	}

	logger.Debug("Telemetry toggle file written", zap.String("path", stateFile))
	rc.Log.Info("terminal prompt: Telemetry enabled")
	ShowTelemetryInfo(rc)
	return nil
}

// Disable removes the opt-in toggle file. Missing files are not an error.
func Disable(rc *eos_io.RuntimeContext) error {
	logger := otelzap.Ctx(rc.Ctx)
	stateFile := telemetry.ToggleFilePath()

	if err := os.Remove(stateFile); err != nil && !os.IsNotExist(err) {
		logger.Error("Failed to remove telemetry toggle file", zap.Error(err))
		return cerr.Wrap(err, "disable telemetry")
	}

	rc.Log.Info("terminal prompt: Telemetry disabled")
	if _, forced := envSetting(); forced {
		rc.Log.Info("terminal prompt: Note: " + shared.TelemetryEnv + " is set and overrides the toggle file")
	}
	return nil
}

// GetStatus inspects the toggle file, the environment and the data file.
func GetStatus() (Status, error) {
	st := Status{
		Enabled:    telemetry.IsEnabled(),
		ToggleFile: telemetry.ToggleFilePath(),
		DataFile:   telemetry.FilePath(),
	}
	_, st.EnvForced = envSetting()

	n, err := countSpans(st.DataFile)
	if err != nil && !os.IsNotExist(err) {
		return st, cerr.Wrapf(err, "read telemetry file %s", st.DataFile)
	}
	st.SpanCount = n
	return st, nil
}

// ShowTelemetryStatus prints whether telemetry is on and how much has been recorded.
func ShowTelemetryStatus(rc *eos_io.RuntimeContext) error {
	st, err := GetStatus()
	if err != nil {
		return err
	}

	state := "disabled"
	if st.Enabled {
		state = "enabled"
	}
	source := "toggle file"
	if st.EnvForced {
		source = shared.TelemetryEnv
	}

	rc.Log.Info("terminal prompt: Telemetry status",
		zap.String("state", state),
		zap.String("source", source),
		zap.String("toggle_file", st.ToggleFile),
		zap.String("data_file", st.DataFile),
		zap.Int("spans_recorded", st.SpanCount))
	return nil
}

// ShowTelemetryInfo displays telemetry configuration details
func ShowTelemetryInfo(rc *eos_io.RuntimeContext) {
	telemetryPath := telemetry.FilePath()

	rc.Log.Info("terminal prompt: Telemetry configuration",
		zap.String("file_path", telemetryPath),
		zap.String("format", "JSONL (JSON Lines)"),
		zap.String("privacy", "Local storage only - no external transmission"))

	rc.Log.Info("terminal prompt: Analysis commands",
		zap.String("command_frequency", "jq -r '.Name' "+telemetryPath+" | sort | uniq -c | sort -nr"),
		zap.String("failures", "jq -r 'select(.Status.Code == \"Error\") | .Name' "+telemetryPath+" | wc -l"))
}

var spanMarker = []byte(`"SpanContext"`)

func envSetting() (string, bool) {
	v, ok := os.LookupEnv(shared.TelemetryEnv)
	if !ok {
		return "", false
	}
	_, err := strconv.ParseBool(v)
	if err == nil || v == "on" || v == "off" {
		return v, true
	}
	return v, false
}

// countSpans counts span records; metric exports share the file.
func countSpans(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if bytes.Contains(sc.Bytes(), spanMarker) {
			n++
		}
	}
	return n, sc.Err()
}
