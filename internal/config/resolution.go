package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// Layer identifies one source in the fixed precedence order. Lower values
// are applied first and lose to higher ones.
type Layer int

const (
	// LayerDefaults is the compiled-in compatibility defaults.
	LayerDefaults Layer = iota + 1

	// LayerEnvironment is the process environment, unless -E or -I.
	LayerEnvironment

	// LayerArguments is the command line; it overrides everything.
	LayerArguments
)

// String returns the string representation of a Layer.
func (l Layer) String() string {
	switch l {
	case LayerDefaults:
		return "defaults"
	case LayerEnvironment:
		return "environment"
	case LayerArguments:
		return "arguments"
	default:
		return "unknown"
	}
}

// step is one pure transformation in the merge fold.
type step struct {
	name string
	run  func(RuntimeConfig) (RuntimeConfig, Status)
}

// Builder resolves a RuntimeConfig from defaults, environment and
// arguments. A Builder is meant to run once, early, on a single goroutine.
type Builder struct {
	lookup   LookupFunc
	logger   *log.Logger
	defaults *RuntimeConfig
}

// Option configures a Builder.
type Option func(*Builder)

// WithLookupEnv sets how environment variables are read. The default is
// the process environment.
func WithLookupEnv(lookup LookupFunc) Option {
	return func(b *Builder) { b.lookup = lookup }
}

// WithLogger sets the logger used for per-layer debug output.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithDefaults replaces the compatibility defaults, for embedders that
// start from their own baseline.
func WithDefaults(cfg RuntimeConfig) Option {
	return func(b *Builder) {
		c := cfg.Clone()
		b.defaults = &c
	}
}

// NewBuilder returns a Builder reading the process environment.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		lookup: OSEnv,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the merge: defaults, preliminary scan, environment,
// arguments, finalize. The first non-OK status stops it.
//
// On StatusError the returned config is the last successfully merged
// value. On StatusExit it carries the help or version request.
func (b *Builder) Build(args []string) (RuntimeConfig, Status) {
	cfg := InitCompat()
	if b.defaults != nil {
		cfg = b.defaults.Clone()
	}
	b.logger.Debug("config layer applied", "layer", LayerDefaults)

	pre, st := ReadPreliminary(cfg, args, b.lookup)
	if st.IsException() {
		b.logger.Debug("preliminary scan failed", "status", st.Kind, "err", st.Message)
		return cfg, st
	}
	b.logger.Debug("preliminary scan",
		"isolated", pre.Isolated, "use_environment", pre.UseEnvironment,
		"dev_mode", pre.DevMode, "utf8_mode", pre.UTF8Mode)

	steps := []step{
		{"preliminary", pre.apply},
		{LayerEnvironment.String(), func(c RuntimeConfig) (RuntimeConfig, Status) {
			return applyEnvironment(c, pre.UseEnvironment.IsTrue(), b.lookup, pre.XOptions)
		}},
		{LayerArguments.String(), func(c RuntimeConfig) (RuntimeConfig, Status) {
			return ApplyArguments(c, args)
		}},
		{"finalize", Finalize},
	}

	for _, s := range steps {
		next, st := s.run(cfg)
		switch {
		case st.IsExit():
			b.logger.Debug("config merge exit requested", "step", s.name, "code", st.Code)
			return next, st
		case st.IsError():
			b.logger.Debug("config merge failed", "step", s.name, "class", st.Class, "err", st.Message)
			return cfg, st
		}
		b.logger.Debug("config layer applied", "layer", s.name)
		cfg = next
	}
	return cfg, OK()
}

// Finalize resolves every Unset tri-state from the compatibility defaults,
// enforces isolated mode and validates the result, which is returned
// frozen. Finalizing a frozen config returns it unchanged.
func Finalize(cfg RuntimeConfig) (RuntimeConfig, Status) {
	const fn = "Finalize"
	if cfg.frozen {
		return cfg, OK()
	}
	def := compatDefaults().Resolve
	out := cfg.Clone()

	out.Isolated = out.Isolated.Or(def.Isolated)
	if out.Isolated.IsTrue() {
		if out.UseEnvironment.IsTrue() {
			return cfg, Errorf(ClassConflict, fn, "isolated mode cannot be combined with use_environment=1")
		}
		out.UseEnvironment = False
		out.UserSite = False
		out.SafePath = True
	}
	out.UseEnvironment = out.UseEnvironment.Or(true)
	out.DevMode = out.DevMode.Or(def.DevMode)
	out.UTF8Mode = out.UTF8Mode.Or(def.UTF8Mode)
	out.WriteBytecode = out.WriteBytecode.Or(def.WriteBytecode)
	out.BufferedStdio = out.BufferedStdio.Or(def.BufferedStdio)
	out.UserSite = out.UserSite.Or(def.UserSite)
	out.SiteImport = out.SiteImport.Or(def.SiteImport)
	out.SafePath = out.SafePath.Or(def.SafePath)

	if out.Argv == nil {
		out.Argv = []string{""}
	}
	if out.XOptions == nil {
		out.XOptions = []string{}
	}
	if out.WarnOptions == nil {
		out.WarnOptions = []string{}
	}
	if out.CheckHashPycsMode == "" {
		out.CheckHashPycsMode = CheckHashDefault
	}
	if out.IntMaxStrDigits < 0 {
		out.IntMaxStrDigits = def.IntMaxStrDigits
	}

	if st := validateResolvedConfig(out); st.IsException() {
		return cfg, st
	}
	out.frozen = true
	return out, OK()
}

// validateResolvedConfig rejects combinations no layer should produce.
func validateResolvedConfig(cfg RuntimeConfig) Status {
	const fn = "Finalize"
	switch cfg.CheckHashPycsMode {
	case CheckHashDefault, CheckHashAlways, CheckHashNever:
	default:
		return Errorf(ClassConflict, fn, "invalid check_hash_pycs_mode: %q", cfg.CheckHashPycsMode)
	}
	if cfg.IntMaxStrDigits != IntMaxStrDigitsUnlimited && cfg.IntMaxStrDigits < IntMaxStrDigitsThreshold {
		return Errorf(ClassConflict, fn, "int_max_str_digits must be >= %d or 0, got %d",
			IntMaxStrDigitsThreshold, cfg.IntMaxStrDigits)
	}
	if cfg.RunCommand != "" && cfg.RunModule != "" {
		return Errorf(ClassConflict, fn, "run_command and run_module are mutually exclusive")
	}
	for _, c := range []struct {
		name string
		n    int
	}{
		{"verbose", cfg.Verbose},
		{"optimization_level", cfg.OptimizationLevel},
		{"parser_debug", cfg.ParserDebug},
		{"bytes_warning", cfg.BytesWarning},
		{"inspect", cfg.Inspect},
		{"quiet", cfg.Quiet},
	} {
		if c.n < 0 {
			return Errorf(ClassConflict, fn, "%s must not be negative, got %d", c.name, c.n)
		}
	}
	return OK()
}
