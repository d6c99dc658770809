// Package bootstrap wires the schema pipeline: it enumerates every model
// definition, registers them in a controlled sequence, seals the registry,
// and runs the compiler. Boot failures are deterministic — no reliance on
// load ordering side effects.
package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/modelgate/modelgate/adapters/metrics"
	"github.com/modelgate/modelgate/config"
	"github.com/modelgate/modelgate/core/compiler"
	"github.com/modelgate/modelgate/core/registry"
	"github.com/modelgate/modelgate/core/schema"
)

// App is the booted schema pipeline: a sealed registry and its compiled
// artifact, ready for downstream collaborators.
type App struct {
	Logger   zerolog.Logger
	RunID    string
	Config   *config.Config
	Registry *registry.Registry
	Artifact *compiler.Artifact
	Metrics  *metrics.Collector
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	metrics *metrics.Collector
	logger  *zerolog.Logger
}

// WithMetrics supplies a pre-built metrics collector. Without it, metrics
// are created on the default Prometheus registry when enabled in config.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger supplies a pre-built logger, overriding the config-derived one.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = &l }
}

// New boots the application: parse, register, seal, compile. Registration
// errors are fatal — the process must not proceed to compile with a
// malformed or duplicate model. Compile errors carry the full aggregated
// report.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := NewLogger(cfg)
	if o.logger != nil {
		logger = *o.logger
	}

	runID := uuid.NewString()
	logger = logger.With().Str("run_id", runID).Logger()

	a := &App{
		Logger: logger,
		RunID:  runID,
		Config: cfg,
	}

	if o.metrics != nil {
		a.Metrics = o.metrics
	} else if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	logger.Info().Str("dir", cfg.Models.Dir).Msg("loading model definitions")

	reg, artifact, err := Build(cfg.Models.Dir, logger, a.Metrics)
	if err != nil {
		return nil, err
	}

	a.Registry = reg
	a.Artifact = artifact

	return a, nil
}

// Build runs one full pipeline cycle: parse the model directory, register
// everything into a fresh registry, seal it, and compile. Watch mode calls
// this once per change; boot calls it once.
func Build(dir string, logger zerolog.Logger, m *metrics.Collector) (*registry.Registry, *compiler.Artifact, error) {
	models, err := schema.ParseDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load models: %w", err)
	}

	reg := registry.New()
	for _, model := range models {
		if err := reg.Register(model); err != nil {
			if m != nil {
				m.RegisterErrors.Inc()
			}
			return nil, nil, fmt.Errorf("register model %q: %w", model.Name, err)
		}
		logger.Debug().Str("model", model.Name).Msg("registered model")
	}
	reg.Seal()

	if m != nil {
		m.ModelsRegistered.Set(float64(reg.Len()))
		m.CompilesTotal.Inc()
	}

	start := time.Now()
	artifact, err := compiler.New(reg).Compile()
	elapsed := time.Since(start)

	if m != nil {
		m.CompileDuration.Observe(elapsed.Seconds())
	}

	if err != nil {
		if m != nil {
			m.CompileErrors.Inc()
		}
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("schema compile failed")
		return nil, nil, err
	}

	if m != nil {
		m.LastCompile.SetToCurrentTime()
	}

	logger.Info().
		Int("models", reg.Len()).
		Str("checksum", artifact.Checksum).
		Dur("elapsed", elapsed).
		Msg("schema compiled")

	return reg, artifact, nil
}

// NewLogger builds a zerolog logger from the logging config.
func NewLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil && cfg.Logging.Level != "" {
		level = l
	}

	if cfg.Logging.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
