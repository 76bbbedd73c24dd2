package keying

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"

	"github.com/cwbudde/algo-keying/dsp/core"
)

// ErrInvalidBits reports a bit string that is empty or contains
// characters other than '0' and '1'.
var ErrInvalidBits = errors.New("invalid binary input")

var bitPattern = regexp.MustCompile(`^[01]+$`)

// DefaultRandomBitCount is the bit string length used by RandomBits
// when no explicit length is requested.
const DefaultRandomBitCount = 8

// Params describes one synthesis run.
type Params struct {
	Scheme        Scheme
	Frequency     float64 // carrier frequency in kHz
	Amplitude     float64 // peak amplitude in volts
	BitRate       float64 // in kbps
	FreqDeviation float64 // in kHz, used by FSK for '0' bits
	Bits          string
}

// Result holds the sample series of one synthesis run.
//
// All series share the length len(Bits) * samplesPerBit and the TimeMs
// axis. Data is recomputed in full on every run; a Result never aliases
// a previous one.
type Result struct {
	Digital   []float64
	Carrier   []float64
	Modulated []float64
	TimeMs    []float64 // milliseconds, monotonically increasing
}

// Unmodulated returns the carrier series under its second display
// label. The comparison view shows the carrier twice (once next to the
// digital signal, once next to the modulated one); both labels share
// one backing slice.
func (r *Result) Unmodulated() []float64 {
	return r.Carrier
}

// Len returns the shared sample count of all series.
func (r *Result) Len() int {
	return len(r.TimeMs)
}

// Synthesizer creates modulation sample series from a shared configuration.
type Synthesizer struct {
	cfg  core.SynthConfig
	seed int64
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed sets the deterministic seed for random bit generation.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.seed = seed
	}
}

// NewSynthesizer creates a configured synthesizer.
func NewSynthesizer(opts ...core.SynthOption) *Synthesizer {
	return &Synthesizer{
		cfg:  core.ApplySynthOptions(opts...),
		seed: 1,
	}
}

// NewSynthesizerWithOptions creates a synthesizer with keying-specific options.
func NewSynthesizerWithOptions(coreOpts []core.SynthOption, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		cfg:  core.ApplySynthOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Config returns the synthesizer configuration.
func (s *Synthesizer) Config() core.SynthConfig {
	return s.cfg
}

// Synthesize produces the digital, carrier and modulated series for p.
//
// The bit string is validated first; a malformed string yields an error
// wrapping [ErrInvalidBits] and no series. Numeric parameters are
// expected to be pre-constrained by the caller and are not validated
// here.
func (s *Synthesizer) Synthesize(p Params) (*Result, error) {
	if !bitPattern.MatchString(p.Bits) {
		return nil, fmt.Errorf("synthesize bits %q: %w", p.Bits, ErrInvalidBits)
	}
	if p.Scheme != SchemeASK && p.Scheme != SchemeFSK && p.Scheme != SchemePSK {
		return nil, fmt.Errorf("synthesize: unsupported scheme %d", int(p.Scheme))
	}

	spb := s.cfg.SamplesPerBit
	n := len(p.Bits) * spb
	res := &Result{
		Digital:   make([]float64, 0, n),
		Carrier:   make([]float64, 0, n),
		Modulated: make([]float64, 0, n),
		TimeMs:    make([]float64, 0, n),
	}

	bitDurationMs := 1000 / p.BitRate

	for i := 0; i < len(p.Bits); i++ {
		one := p.Bits[i] == '1'

		level := 0.0
		freq := p.Frequency
		phase := 0.0
		switch {
		case one:
			level = 1
		case p.Scheme == SchemeFSK:
			freq += p.FreqDeviation
		case p.Scheme == SchemePSK:
			phase = math.Pi
		}

		for k := 0; k < spb; k++ {
			t := (float64(i) + float64(k)/float64(spb)) * bitDurationMs

			carrier := p.Amplitude * math.Sin(2*math.Pi*p.Frequency*t/1000)

			var modulated float64
			switch p.Scheme {
			case SchemeASK:
				if one {
					modulated = carrier
				}
			case SchemeFSK:
				modulated = p.Amplitude * math.Sin(2*math.Pi*freq*t/1000)
			case SchemePSK:
				modulated = p.Amplitude * math.Sin(2*math.Pi*p.Frequency*t/1000+phase)
			}

			res.TimeMs = append(res.TimeMs, t)
			res.Digital = append(res.Digital, level)
			res.Carrier = append(res.Carrier, carrier)
			res.Modulated = append(res.Modulated, modulated)
		}
	}

	return res, nil
}

// RandomBits generates a uniform random bit string of length n.
// A length of zero or less yields [DefaultRandomBitCount] bits. The
// output is deterministic for a given seed.
func (s *Synthesizer) RandomBits(n int) string {
	if n <= 0 {
		n = DefaultRandomBitCount
	}
	rng := rand.New(rand.NewSource(s.seed))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte('0' + byte(rng.Intn(2)))
	}
	return b.String()
}

// SetSeed updates the random bit seed.
func (s *Synthesizer) SetSeed(seed int64) {
	s.seed = seed
}

// Seed returns the current random bit seed.
func (s *Synthesizer) Seed() int64 {
	return s.seed
}
