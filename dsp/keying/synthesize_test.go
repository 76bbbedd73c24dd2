package keying

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-keying/dsp/core"
	"github.com/cwbudde/algo-keying/internal/testutil"
)

func TestSynthesizeSeriesLengths(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(25))
	res, err := s.Synthesize(Params{
		Scheme:    SchemeASK,
		Frequency: 5,
		Amplitude: 1,
		BitRate:   2,
		Bits:      "10110",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	want := 5 * 25
	if res.Len() != want {
		t.Fatalf("Len() = %d, want %d", res.Len(), want)
	}
	for name, series := range map[string][]float64{
		"digital":     res.Digital,
		"carrier":     res.Carrier,
		"modulated":   res.Modulated,
		"unmodulated": res.Unmodulated(),
		"timeMs":      res.TimeMs,
	} {
		if len(series) != want {
			t.Fatalf("len(%s) = %d, want %d", name, len(series), want)
		}
	}
}

func TestSynthesizeDefaultSamplesPerBit(t *testing.T) {
	s := NewSynthesizer()
	res, err := s.Synthesize(Params{
		Scheme:    SchemePSK,
		Frequency: 1,
		Amplitude: 1,
		BitRate:   1,
		Bits:      "1",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if res.Len() != core.DefaultSamplesPerBit {
		t.Fatalf("Len() = %d, want %d", res.Len(), core.DefaultSamplesPerBit)
	}
}

func TestSynthesizeTimeAxis(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(4))
	res, err := s.Synthesize(Params{
		Scheme:    SchemeASK,
		Frequency: 1,
		Amplitude: 1,
		BitRate:   2, // 500 ms per bit
		Bits:      "01",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	want := []float64{0, 125, 250, 375, 500, 625, 750, 875}
	testutil.RequireSliceNearlyEqual(t, res.TimeMs, want, 1e-9)

	for i := 1; i < len(res.TimeMs); i++ {
		if res.TimeMs[i] <= res.TimeMs[i-1] {
			t.Fatalf("time axis not increasing at %d: %v <= %v", i, res.TimeMs[i], res.TimeMs[i-1])
		}
	}
}

func TestSynthesizeDigitalLevels(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(3))
	res, err := s.Synthesize(Params{
		Scheme:    SchemeASK,
		Frequency: 2,
		Amplitude: 1,
		BitRate:   1,
		Bits:      "101",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	want := []float64{1, 1, 1, 0, 0, 0, 1, 1, 1}
	for i, v := range res.Digital {
		if v != want[i] {
			t.Fatalf("digital[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestCarrierMatchesClosedForm(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(50))
	res, err := s.Synthesize(Params{
		Scheme:    SchemeFSK,
		Frequency: 3,
		Amplitude: 2.5,
		BitRate:   4,
		Bits:      "0110",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	want := testutil.CarrierSeries(3, 2.5, res.TimeMs)
	testutil.RequireSliceNearlyEqual(t, res.Carrier, want, 1e-12)
}

func TestUnmodulatedIsCarrier(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(10))
	res, err := s.Synthesize(Params{
		Scheme:    SchemePSK,
		Frequency: 7,
		Amplitude: 1,
		BitRate:   2,
		Bits:      "1100",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	unmod := res.Unmodulated()
	if len(unmod) != len(res.Carrier) {
		t.Fatalf("len = %d, want %d", len(unmod), len(res.Carrier))
	}
	for i := range unmod {
		if unmod[i] != res.Carrier[i] {
			t.Fatalf("unmodulated[%d] = %v, carrier = %v", i, unmod[i], res.Carrier[i])
		}
	}
}

func TestASKSuppressesZeroBits(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(30))
	res, err := s.Synthesize(Params{
		Scheme:    SchemeASK,
		Frequency: 9,
		Amplitude: 3,
		BitRate:   1,
		Bits:      "1010",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	spb := 30
	for bitIdx, b := range "1010" {
		for k := 0; k < spb; k++ {
			i := bitIdx*spb + k
			if b == '0' {
				if res.Modulated[i] != 0 {
					t.Fatalf("modulated[%d] = %v, want exact 0 for '0' bit", i, res.Modulated[i])
				}
			} else if res.Modulated[i] != res.Carrier[i] {
				t.Fatalf("modulated[%d] = %v, want carrier %v for '1' bit", i, res.Modulated[i], res.Carrier[i])
			}
		}
	}
}

func TestFSKKeysZeroBitsToDeviation(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(40))
	res, err := s.Synthesize(Params{
		Scheme:        SchemeFSK,
		Frequency:     2,
		Amplitude:     1.5,
		BitRate:       1,
		FreqDeviation: 3,
		Bits:          "10",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	spb := 40
	base := testutil.CarrierSeries(2, 1.5, res.TimeMs)
	shifted := testutil.CarrierSeries(5, 1.5, res.TimeMs)

	testutil.RequireSliceNearlyEqual(t, res.Modulated[:spb], base[:spb], 1e-12)
	testutil.RequireSliceNearlyEqual(t, res.Modulated[spb:], shifted[spb:], 1e-12)
}

func TestPSKInvertsZeroBits(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(40))
	res, err := s.Synthesize(Params{
		Scheme:    SchemePSK,
		Frequency: 2,
		Amplitude: 1,
		BitRate:   1,
		Bits:      "10",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	spb := 40
	inverted := make([]float64, spb)
	for i := 0; i < spb; i++ {
		inverted[i] = -res.Carrier[spb+i]
	}
	testutil.RequireSliceNearlyEqual(t, res.Modulated[spb:], inverted, 1e-12)
	testutil.RequireSliceNearlyEqual(t, res.Modulated[:spb], res.Carrier[:spb], 1e-12)
}

func TestSynthesizeInvalidBits(t *testing.T) {
	s := NewSynthesizer()
	for _, bits := range []string{"", "102", "abc", "01 0", "0b1"} {
		res, err := s.Synthesize(Params{
			Scheme:    SchemeASK,
			Frequency: 1,
			Amplitude: 1,
			BitRate:   1,
			Bits:      bits,
		})
		if !errors.Is(err, ErrInvalidBits) {
			t.Fatalf("bits %q: error = %v, want ErrInvalidBits", bits, err)
		}
		if res != nil {
			t.Fatalf("bits %q: expected no result", bits)
		}
	}
}

func TestSynthesizeUnknownScheme(t *testing.T) {
	s := NewSynthesizer()
	if _, err := s.Synthesize(Params{Scheme: Scheme(42), Frequency: 1, Amplitude: 1, BitRate: 1, Bits: "1"}); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}

func TestSynthesizeSpecExampleASK(t *testing.T) {
	// bits "10", 1 kHz, 1 V, 1 kbps, 300 samples per bit: the first bit
	// follows sin(2*pi*t/1000), the second is fully suppressed.
	s := NewSynthesizer(core.WithSamplesPerBit(300))
	res, err := s.Synthesize(Params{
		Scheme:    SchemeASK,
		Frequency: 1,
		Amplitude: 1,
		BitRate:   1,
		Bits:      "10",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	want := testutil.CarrierSeries(1, 1, res.TimeMs[:300])
	testutil.RequireSliceNearlyEqual(t, res.Modulated[:300], want, 1e-12)
	for i := 300; i < 600; i++ {
		if res.Modulated[i] != 0 {
			t.Fatalf("modulated[%d] = %v, want exact 0", i, res.Modulated[i])
		}
	}
}

func TestSynthesizeSpecExamplePSK(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(300))
	res, err := s.Synthesize(Params{
		Scheme:    SchemePSK,
		Frequency: 1,
		Amplitude: 1,
		BitRate:   1,
		Bits:      "10",
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	for i := 300; i < 600; i++ {
		want := math.Sin(2*math.Pi*res.TimeMs[i]/1000 + math.Pi)
		if math.Abs(res.Modulated[i]-want) > 1e-12 {
			t.Fatalf("modulated[%d] = %v, want %v", i, res.Modulated[i], want)
		}
	}
}

func TestSynthesizeFinite(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(20))
	for _, scheme := range []Scheme{SchemeASK, SchemeFSK, SchemePSK} {
		res, err := s.Synthesize(Params{
			Scheme:        scheme,
			Frequency:     11,
			Amplitude:     2,
			BitRate:       3,
			FreqDeviation: 4,
			Bits:          "1101001",
		})
		if err != nil {
			t.Fatalf("%v: Synthesize() error = %v", scheme, err)
		}
		testutil.RequireFinite(t, res.Modulated)
		testutil.RequireFinite(t, res.Carrier)
	}
}

func TestRandomBitsDeterministic(t *testing.T) {
	s1 := NewSynthesizerWithOptions(nil, WithSeed(42))
	s2 := NewSynthesizerWithOptions(nil, WithSeed(42))
	if a, b := s1.RandomBits(16), s2.RandomBits(16); a != b {
		t.Fatalf("bits mismatch: %q != %q", a, b)
	}
}

func TestRandomBitsDefaultLength(t *testing.T) {
	s := NewSynthesizer()
	bits := s.RandomBits(0)
	if len(bits) != DefaultRandomBitCount {
		t.Fatalf("len = %d, want %d", len(bits), DefaultRandomBitCount)
	}
	if strings.Trim(bits, "01") != "" {
		t.Fatalf("bits %q contain non-binary characters", bits)
	}
}

func TestSetSeed(t *testing.T) {
	s := NewSynthesizer()
	s.SetSeed(99)
	if s.Seed() != 99 {
		t.Fatalf("Seed() = %d, want 99", s.Seed())
	}

	a := s.RandomBits(64)
	s.SetSeed(100)
	b := s.RandomBits(64)
	if a == b {
		t.Fatal("expected different seeds to produce different bits")
	}
}

func TestRandomBitsRoundTrip(t *testing.T) {
	s := NewSynthesizer(core.WithSamplesPerBit(8))
	bits := s.RandomBits(12)
	res, err := s.Synthesize(Params{
		Scheme:    SchemeFSK,
		Frequency: 2,
		Amplitude: 1,
		BitRate:   1,
		Bits:      bits,
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if res.Len() != 12*8 {
		t.Fatalf("Len() = %d, want %d", res.Len(), 12*8)
	}
}
