// Package spectrum computes single-sided magnitude spectra of sample
// series for the frequency-domain comparison panel.
//
// The input is one complete offline series per call, so there is no
// streaming ring buffer or overlap handling: the series is Hann
// windowed, zero padded to the FFT size and transformed once.
package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-keying/dsp/core"
)

// MinDB is the floor applied to magnitude bins, in dBFS.
const MinDB = -130.0

// Config holds spectrum analysis parameters.
type Config struct {
	// FFTSize must be a power of two between 256 and 8192;
	// anything else falls back to 2048.
	FFTSize int
}

func sanitizeConfig(cfg Config) Config {
	switch cfg.FFTSize {
	case 256, 512, 1024, 2048, 4096, 8192:
	default:
		cfg.FFTSize = 2048
	}
	return cfg
}

// Analyze returns the single-sided magnitude spectrum of series in
// dBFS, floored at [MinDB]. The result has FFTSize/2+1 bins.
func Analyze(series []float64, cfg Config) ([]float64, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("analyze input must not be empty")
	}
	cfg = sanitizeConfig(cfg)

	n := cfg.FFTSize
	frame := make([]float64, n)
	copy(frame, series[:min(len(series), n)])

	win := hann(min(len(series), n))
	vecmath.MulBlockInPlace(frame[:len(win)], win)

	winGain := 0.0
	for _, w := range win {
		winGain += w
	}
	winGain /= float64(len(win))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum fft plan: %w", err)
	}

	input := make([]complex128, n)
	output := make([]complex128, n)
	for i, v := range frame {
		input[i] = complex(v, 0)
	}
	if err := plan.Forward(output, input); err != nil {
		return nil, fmt.Errorf("spectrum fft forward: %w", err)
	}

	const eps = 1e-12
	norm := float64(len(win)) * math.Max(winGain, eps)

	mags := Magnitude(output[:n/2+1])
	last := len(mags) - 1
	out := make([]float64, len(mags))
	for k, mag := range mags {
		mag /= norm
		if k > 0 && k < last {
			mag *= 2
		}
		db := core.LinearToDB(math.Max(eps, mag))
		if db < MinDB {
			db = MinDB
		}
		out[k] = db
	}

	return out, nil
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// The square roots go through the SIMD-dispatched vecmath kernel, so
// the per-bin cost stays flat even for the largest FFT sizes.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

// hann returns a periodic Hann window of length n.
func hann(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}
	for i := range out {
		out[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return out
}
