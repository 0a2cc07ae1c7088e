// pkg/shared/constants.go

package shared

const (
	CredgenID = "credgen"

	// EnvPrefix scopes viper environment overrides, e.g. CREDGEN_LENGTH.
	EnvPrefix = "CREDGEN"

	CredgenLogFile = CredgenID + ".log"
	// #nosec G101 - This is a log file path, not a hardcoded credential
	CredgenLogsPWD = "./" + CredgenLogFile
	CredgenLogsTmp = "/tmp/" + CredgenID + "/" + CredgenLogFile

	TelemetryFile       = "telemetry.jsonl"
	TelemetryToggleFile = "telemetry_on"
	TelemetryEnv        = EnvPrefix + "_TELEMETRY"

	DefaultConfigFilename = "config.yaml"
	DotEnvFilename        = ".env"
)

const (
	// Permission modes (in octal)
	FilePermOwnerRWX       = 0700
	FilePermOwnerReadWrite = 0600
	SecretDirPerm          = FilePermOwnerRWX
	SecretFilePerm         = FilePermOwnerReadWrite
)

const (
	// Password request defaults used by config and the create command.
	DefaultPasswordLength  = 16
	DefaultNonAlphanumeric = 2
	DefaultPasswordCount   = 1
	MaxPasswordCount       = 1000
	DefaultMaxAttempts     = 0
	DefaultOutputFormat    = "text"
	DefaultQuotaSource     = "crypto"
)
