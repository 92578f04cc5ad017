package memory

import s "github.com/prataprc/gosettings"

// Option configures a Memory at construction time.
type Option func(*Memory)

// WithLogger routes segment-growth diagnostics to logger instead of the
// default stderr logger.
func WithLogger(logger Logger) Option {
	return func(m *Memory) { m.log = logger }
}

// WithSilentLogger discards every diagnostic a Memory would otherwise
// write to stderr.
func WithSilentLogger() Option {
	return WithLogger(NopLogger{})
}

// WithSettings overrides the base settings a Memory was built from,
// merging over DefaultSettings.
func WithSettings(settings s.Settings) Option {
	return func(m *Memory) {
		for k, v := range settings {
			m.settings[k] = v
		}
		m.slabSize = slabSizeFromSettings(m.settings)
	}
}

// WithSlabSize is shorthand for WithSettings(s.Settings{"slab.size": ...}).
func WithSlabSize(size uintptr) Option {
	return func(m *Memory) {
		m.settings["slab.size"] = int64(size)
		m.slabSize = slabSizeFromSettings(m.settings)
	}
}
