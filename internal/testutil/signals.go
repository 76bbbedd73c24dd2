package testutil

import "math"

// CarrierSeries evaluates amplitude*sin(2*pi*freqKHz*t/1000) over the
// given millisecond time axis. This is the closed-form carrier the
// synthesizer is expected to reproduce.
func CarrierSeries(freqKHz, amplitude float64, timeMs []float64) []float64 {
	out := make([]float64, len(timeMs))
	for i, t := range timeMs {
		out[i] = amplitude * math.Sin(2*math.Pi*freqKHz*t/1000)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}
