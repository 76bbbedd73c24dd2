// Package keying synthesizes time-sampled views of digital
// carrier-modulation schemes (amplitude, frequency and phase shift
// keying) for a binary input string.
//
// One synthesis run produces four parallel sample series sharing a
// single millisecond time axis:
//
//   - digital: the input bits as a 0/1 level signal
//   - carrier: the raw sinusoidal carrier
//   - modulated: the carrier keyed by the input bits
//   - unmodulated: the carrier under a second display label
//
// Transitions at bit boundaries are sample-aligned and instantaneous:
// FSK switches frequency and PSK switches phase with no continuity
// correction. This is an ideal textbook model for visual comparison,
// not a band-limited physical one.
//
// # Usage
//
//	s := keying.NewSynthesizer()
//	res, err := s.Synthesize(keying.Params{
//	    Scheme:    keying.SchemePSK,
//	    Frequency: 10,  // kHz
//	    Amplitude: 1,   // V peak
//	    BitRate:   2,   // kbps
//	    Bits:      "10110001",
//	})
//	if err != nil {
//	    // err wraps ErrInvalidBits for malformed bit strings
//	}
//	_ = res.Modulated
package keying
