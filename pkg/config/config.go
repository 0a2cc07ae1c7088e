// pkg/config/config.go
//
// Layered settings for credgen: built-in defaults, then the YAML config file,
// then .env and CREDGEN_* environment variables, then explicit flags.

package config

import (
	"context"
	"os"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Keys shared by flags, config file entries and environment variables.
const (
	KeyLength          = "length"
	KeyNonAlphanumeric = "non-alphanumeric"
	KeyCount           = "count"
	KeyMaxAttempts     = "max-attempts"
	KeyQuotaSource     = "quota-source"
	KeyFormat          = "format"
)

// Password holds the resolved settings for `credgen create password`.
type Password struct {
	Length          int    `mapstructure:"length" yaml:"length" validate:"min=1,max=128"`
	NonAlphanumeric int    `mapstructure:"non-alphanumeric" yaml:"non_alphanumeric"`
	Count           int    `mapstructure:"count" yaml:"count" validate:"min=1,max=1000"`
	MaxAttempts     int    `mapstructure:"max-attempts" yaml:"max_attempts"`
	QuotaSource     string `mapstructure:"quota-source" yaml:"quota_source" validate:"oneof=crypto math"`
	Format          string `mapstructure:"format" yaml:"format" validate:"oneof=text json yaml"`
}

// Options converts the settings into generator options.
func (p *Password) Options() crypto.PasswordOptions {
	return crypto.PasswordOptions{
		Length:         p.Length,
		MinPunctuation: p.NonAlphanumeric,
		MaxAttempts:    p.MaxAttempts,
		QuotaSource:    crypto.QuotaSource(p.QuotaSource),
	}
}

// DefaultConfigPath is the config file read when --config is not given.
func DefaultConfigPath() string {
	return xdg.XDGConfigPath(shared.CredgenID, shared.DefaultConfigFilename)
}

// NewViper returns a viper instance with credgen defaults and env binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLength, shared.DefaultPasswordLength)
	v.SetDefault(KeyNonAlphanumeric, shared.DefaultNonAlphanumeric)
	v.SetDefault(KeyCount, shared.DefaultPasswordCount)
	v.SetDefault(KeyMaxAttempts, shared.DefaultMaxAttempts)
	v.SetDefault(KeyQuotaSource, shared.DefaultQuotaSource)
	v.SetDefault(KeyFormat, shared.DefaultOutputFormat)
	cli.SetViperEnvPrefix(v, shared.EnvPrefix)
	return v
}

// LoadDotEnv loads path into the process environment if it exists.
// Variables already set are left alone.
func LoadDotEnv(ctx context.Context, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return cerr.Wrapf(err, "load %s", path)
	}
	otelzap.Ctx(ctx).Debug("Loaded dotenv file", zap.String("path", path))
	return nil
}

// ReadConfigFile merges a YAML config file into v. An explicit path must
// exist; the default path is optional.
func ReadConfigFile(ctx context.Context, v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return cerr.Wrapf(err, "config file %s", path)
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return cerr.Wrapf(err, "parse config file %s", path)
	}
	otelzap.Ctx(ctx).Debug("Loaded config file", zap.String("path", path))
	return nil
}

// LoadPassword resolves and validates the password settings for cmd.
func LoadPassword(ctx context.Context, cmd *cobra.Command, configPath string) (*Password, error) {
	if err := LoadDotEnv(ctx, shared.DotEnvFilename); err != nil {
		return nil, err
	}

	v := NewViper()
	if err := ReadConfigFile(ctx, v, configPath); err != nil {
		return nil, err
	}
	if err := cli.BindFlagsToViper(cmd, v); err != nil {
		return nil, cerr.Wrap(err, "bind flags")
	}

	var p Password
	if err := v.Unmarshal(&p); err != nil {
		return nil, cerr.Wrap(err, "decode settings")
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
