// pkg/crypto/password.go

package crypto

import (
	"context"
	cryptorand "crypto/rand"
	"io"
	"math"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	MinPasswordLength = 1
	MaxPasswordLength = 128
)

// Parameter names reported in ArgumentError.
const (
	ParamLength          = "length"
	ParamNonAlphanumeric = "numberOfNonAlphanumericCharacters"
	ParamMaxAttempts     = "maxAttempts"
)

// PasswordOptions describes one generation request.
type PasswordOptions struct {
	Length int
	// MinPunctuation is the minimum number of characters drawn from Punctuation.
	MinPunctuation int
	// MaxAttempts caps the number of candidates tried. Zero means no cap.
	MaxAttempts int
	QuotaSource QuotaSource
}

// Validate checks the options against the generator's contract ranges.
func (o PasswordOptions) Validate() error {
	if o.Length < MinPasswordLength || o.Length > MaxPasswordLength {
		return newArgumentError(ParamLength, o.Length, MinPasswordLength, MaxPasswordLength)
	}
	if o.MinPunctuation < 0 || o.MinPunctuation > o.Length {
		return newArgumentError(ParamNonAlphanumeric, o.MinPunctuation, 0, o.Length)
	}
	if o.MaxAttempts < 0 {
		return newArgumentError(ParamMaxAttempts, o.MaxAttempts, 0, math.MaxInt)
	}
	if o.QuotaSource != "" && !ValidQuotaSource(string(o.QuotaSource)) {
		return cerr.Wrapf(ErrInvalidArgument, "unknown quota source %q", o.QuotaSource)
	}
	return nil
}

// Generator produces passwords over Alphabet, rejecting candidates that
// IsDangerousString flags. The zero value is not usable; call NewGenerator.
type Generator struct {
	random    io.Reader
	quotaRand IntN
	meters    metric.MeterProvider

	generated metric.Int64Counter
	rejected  metric.Int64Counter
}

type GeneratorOption func(*Generator)

// WithRandomReader replaces crypto/rand as the source of candidate bytes.
func WithRandomReader(r io.Reader) GeneratorOption {
	return func(g *Generator) { g.random = r }
}

// WithQuotaRand pins the generator used for punctuation patching,
// overriding PasswordOptions.QuotaSource.
func WithQuotaRand(r IntN) GeneratorOption {
	return func(g *Generator) { g.quotaRand = r }
}

// WithMeterProvider records the generated and rejected counters on mp instead
// of the provider installed by telemetry.Init.
func WithMeterProvider(mp metric.MeterProvider) GeneratorOption {
	return func(g *Generator) { g.meters = mp }
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{random: cryptorand.Reader}
	for _, opt := range opts {
		opt(g)
	}
	g.generated = telemetry.Int64Counter(g.meters, "credgen.password.generated", "Passwords returned to the caller")
	g.rejected = telemetry.Int64Counter(g.meters, "credgen.password.rejected", "Candidates rejected as dangerous strings")
	return g
}

var defaultGenerator = NewGenerator()

// GeneratePassword returns a random password of the given length containing at
// least numberOfNonAlphanumericCharacters punctuation symbols. It retries until
// the result is not a dangerous string.
func GeneratePassword(length, numberOfNonAlphanumericCharacters int) (string, error) {
	return defaultGenerator.Generate(context.Background(), PasswordOptions{
		Length:         length,
		MinPunctuation: numberOfNonAlphanumericCharacters,
	})
}

// Generate runs the rejection loop for opts. Arguments are validated before
// any randomness is drawn.
func (g *Generator) Generate(ctx context.Context, opts PasswordOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	ctx, span := telemetry.Start(ctx, "crypto.GeneratePassword",
		attribute.Int("length", opts.Length),
		attribute.Int("min_punctuation", opts.MinPunctuation),
		attribute.Int("max_attempts", opts.MaxAttempts),
	)
	defer span.End()
	logger := otelzap.Ctx(ctx)

	quota := g.quotaRand
	if quota == nil {
		quota = newQuotaRand(opts.QuotaSource)
	}

	buf := make([]byte, opts.Length)
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "cancelled")
			return "", cerr.Wrap(err, "password generation cancelled")
		}

		if err := g.fill(buf, opts.MinPunctuation, quota); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "random source failed")
			return "", err
		}

		candidate := string(buf)
		dangerous, idx := IsDangerousString(candidate)
		if !dangerous {
			span.SetAttributes(attribute.Int("attempts", attempt))
			g.generated.Add(ctx, 1)
			return candidate, nil
		}

		g.rejected.Add(ctx, 1)
		logger.Debug("Rejected dangerous candidate",
			zap.Int("attempt", attempt),
			zap.Int("match_index", idx))

		if opts.MaxAttempts > 0 && attempt >= opts.MaxAttempts {
			err := cerr.Wrapf(ErrExhaustedRetries, "all %d candidates were rejected", attempt)
			span.RecordError(err)
			span.SetStatus(codes.Error, "exhausted retries")
			return "", err
		}
	}
}

// fill overwrites buf with a fresh candidate and patches in punctuation until
// at least minPunct slots hold a punctuation symbol.
func (g *Generator) fill(buf []byte, minPunct int, quota IntN) error {
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return cerr.Wrap(err, "read random bytes")
	}

	count := 0
	for i, b := range buf {
		buf[i] = symbolAt(b)
		if IndexClass(int(b)%alphabetSize) == ClassPunctuation {
			count++
		}
	}

	// count < minPunct <= len(buf) guarantees enough alphanumeric slots remain.
	for d := minPunct - count; d > 0; d-- {
		k := quota.IntN(len(buf))
		for !isAlphanumeric(buf[k]) {
			k = quota.IntN(len(buf))
		}
		buf[k] = Punctuation[quota.IntN(len(Punctuation))]
	}
	return nil
}
