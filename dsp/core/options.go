package core

// DefaultSamplesPerBit is the time resolution used when no option overrides it.
const DefaultSamplesPerBit = 300

// SynthConfig defines common waveform synthesis settings.
type SynthConfig struct {
	SamplesPerBit int
}

// SynthOption mutates a SynthConfig.
type SynthOption func(*SynthConfig)

// DefaultSynthConfig returns sensible defaults for offline synthesis.
func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		SamplesPerBit: DefaultSamplesPerBit,
	}
}

// WithSamplesPerBit sets the number of samples generated per input bit.
func WithSamplesPerBit(samplesPerBit int) SynthOption {
	return func(cfg *SynthConfig) {
		if samplesPerBit > 0 {
			cfg.SamplesPerBit = samplesPerBit
		}
	}
}

// ApplySynthOptions applies zero or more options to the default config.
func ApplySynthOptions(opts ...SynthOption) SynthConfig {
	cfg := DefaultSynthConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
