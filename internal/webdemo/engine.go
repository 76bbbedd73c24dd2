// Package webdemo hosts the simulation state behind the browser demo.
//
// The JS side owns all presentation (sliders, chart overlay, canvas
// panels); this engine owns parameters and synthesis results, and hands
// plain float slices across the wasm boundary.
package webdemo

import (
	"fmt"

	"github.com/cwbudde/algo-keying/dsp/core"
	"github.com/cwbudde/algo-keying/dsp/keying"
	"github.com/cwbudde/algo-keying/dsp/spectrum"
)

// Params mirrors the UI controls for one simulation run.
type Params struct {
	Scheme        string
	Frequency     float64
	Amplitude     float64
	BitRate       float64
	FreqDeviation float64
	Bits          string
}

// Engine runs the modulation simulation for the web demo.
type Engine struct {
	synth  *keying.Synthesizer
	params keying.Params
	result *keying.Result
}

// NewEngine creates a configured engine.
func NewEngine(opts ...core.SynthOption) *Engine {
	return &Engine{
		synth: keying.NewSynthesizer(opts...),
		params: keying.Params{
			Scheme:    keying.SchemeASK,
			Frequency: 10,
			Amplitude: 1,
			BitRate:   2,
			Bits:      "10110010",
		},
	}
}

// SetParams replaces the pending simulation parameters.
// The previous result stays visible until the next Run.
func (e *Engine) SetParams(p Params) error {
	scheme, err := keying.ParseScheme(p.Scheme)
	if err != nil {
		return err
	}
	e.params = keying.Params{
		Scheme:        scheme,
		Frequency:     p.Frequency,
		Amplitude:     p.Amplitude,
		BitRate:       p.BitRate,
		FreqDeviation: p.FreqDeviation,
		Bits:          p.Bits,
	}
	return nil
}

// Run synthesizes all series for the current parameters.
func (e *Engine) Run() error {
	res, err := e.synth.Synthesize(e.params)
	if err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}
	e.result = res
	return nil
}

// Len returns the sample count of the last run, or 0 before any run.
func (e *Engine) Len() int {
	if e.result == nil {
		return 0
	}
	return e.result.Len()
}

// Digital returns the 0/1 level series of the last run.
func (e *Engine) Digital() []float64 {
	if e.result == nil {
		return nil
	}
	return e.result.Digital
}

// Carrier returns the raw carrier series of the last run.
func (e *Engine) Carrier() []float64 {
	if e.result == nil {
		return nil
	}
	return e.result.Carrier
}

// Modulated returns the keyed series of the last run.
func (e *Engine) Modulated() []float64 {
	if e.result == nil {
		return nil
	}
	return e.result.Modulated
}

// Unmodulated returns the carrier under its second display label.
func (e *Engine) Unmodulated() []float64 {
	if e.result == nil {
		return nil
	}
	return e.result.Unmodulated()
}

// TimeLabels returns the millisecond time axis of the last run.
func (e *Engine) TimeLabels() []float64 {
	if e.result == nil {
		return nil
	}
	return e.result.TimeMs
}

// SpectrumDB returns the magnitude spectrum of the modulated series in
// dBFS, or nil before any run.
func (e *Engine) SpectrumDB(fftSize int) ([]float64, error) {
	if e.result == nil {
		return nil, nil
	}
	return spectrum.Analyze(e.result.Modulated, spectrum.Config{FFTSize: fftSize})
}

// RandomBits generates a bit string for the "randomize" control.
func (e *Engine) RandomBits(n int) string {
	return e.synth.RandomBits(n)
}
