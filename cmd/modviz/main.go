// Command modviz renders modulation comparison panels to PNG files.
//
// Usage:
//
//	modviz [flags]
//
// Parameters come from an optional YAML config file; individual flags
// override it. One run writes one PNG per panel (digital, carrier,
// modulated, unmodulated) plus a spectrum view of the modulated signal.
//
// Examples:
//
//	modviz -scheme psk -bits 10110001
//	modviz -config sim.yaml -out ./panels
//	modviz -scheme fsk -random 16
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-keying/dsp/core"
	"github.com/cwbudde/algo-keying/dsp/keying"
	"github.com/cwbudde/algo-keying/dsp/spectrum"
	"github.com/cwbudde/algo-keying/render"
)

type config struct {
	Scheme        string  `yaml:"scheme"`
	Bits          string  `yaml:"bits"`
	Frequency     float64 `yaml:"frequency"`
	Amplitude     float64 `yaml:"amplitude"`
	BitRate       float64 `yaml:"bitRate"`
	FreqDeviation float64 `yaml:"freqDeviation"`
	SamplesPerBit int     `yaml:"samplesPerBit"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	PixelRatio    float64 `yaml:"pixelRatio"`
	FFTSize       int     `yaml:"fftSize"`
	OutDir        string  `yaml:"outDir"`
}

func defaultConfig() config {
	return config{
		Scheme:        "ask",
		Bits:          "10110010",
		Frequency:     10,
		Amplitude:     1,
		BitRate:       2,
		FreqDeviation: 5,
		SamplesPerBit: core.DefaultSamplesPerBit,
		Width:         640,
		Height:        160,
		PixelRatio:    1,
		FFTSize:       2048,
		OutDir:        ".",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.Frequency <= 0 {
		return fmt.Errorf("frequency must be > 0: %v", c.Frequency)
	}
	if c.Amplitude <= 0 {
		return fmt.Errorf("amplitude must be > 0: %v", c.Amplitude)
	}
	if c.BitRate <= 0 {
		return fmt.Errorf("bit rate must be > 0: %v", c.BitRate)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("panel size must be positive: %dx%d", c.Width, c.Height)
	}
	return nil
}

var panelColors = map[string]color.RGBA{
	"digital":     {R: 0x4c, G: 0xd9, B: 0x64, A: 0xff},
	"carrier":     {R: 0xff, G: 0xd6, B: 0x3a, A: 0xff},
	"modulated":   {R: 0xff, G: 0x45, B: 0x58, A: 0xff},
	"unmodulated": {R: 0x3a, G: 0xb4, B: 0xff, A: 0xff},
	"spectrum":    {R: 0xbf, G: 0x5a, B: 0xf2, A: 0xff},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("modviz: ")

	configPath := flag.String("config", "", "YAML config file")
	schemeFlag := flag.String("scheme", "", "modulation scheme (ask, fsk, psk, bask, bfsk, bpsk)")
	bitsFlag := flag.String("bits", "", "binary input string")
	randomBits := flag.Int("random", 0, "generate a random bit string of this length instead of -bits")
	outFlag := flag.String("out", "", "output directory for PNG panels")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modviz [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders ASK/FSK/PSK comparison panels as PNG files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modviz -scheme psk -bits 10110001\n")
		fmt.Fprintf(os.Stderr, "  modviz -config sim.yaml -out ./panels\n")
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *schemeFlag != "" {
		cfg.Scheme = *schemeFlag
	}
	if *bitsFlag != "" {
		cfg.Bits = *bitsFlag
	}
	if *outFlag != "" {
		cfg.OutDir = *outFlag
	}
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	scheme, err := keying.ParseScheme(cfg.Scheme)
	if err != nil {
		log.Fatal(err)
	}

	synth := keying.NewSynthesizer(core.WithSamplesPerBit(cfg.SamplesPerBit))
	if *randomBits > 0 {
		cfg.Bits = synth.RandomBits(*randomBits)
		fmt.Printf("bits: %s\n", cfg.Bits)
	}

	res, err := synth.Synthesize(keying.Params{
		Scheme:        scheme,
		Frequency:     cfg.Frequency,
		Amplitude:     cfg.Amplitude,
		BitRate:       cfg.BitRate,
		FreqDeviation: cfg.FreqDeviation,
		Bits:          cfg.Bits,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Fatal(err)
	}

	panels := []struct {
		name   string
		series []float64
		label  string
	}{
		{"digital", res.Digital, "DIGITAL SIGNAL"},
		{"carrier", res.Carrier, "CARRIER SIGNAL"},
		{"modulated", res.Modulated, scheme.String() + " SIGNAL"},
		{"unmodulated", res.Unmodulated(), "UNMODULATED CARRIER"},
	}

	for _, p := range panels {
		if err := writePanel(cfg, p.name, p.series, p.label); err != nil {
			log.Fatal(err)
		}
	}

	curve, err := spectrum.Analyze(res.Modulated, spectrum.Config{FFTSize: cfg.FFTSize})
	if err != nil {
		log.Fatal(err)
	}
	if err := writePanel(cfg, "spectrum", curve, scheme.String()+" SPECTRUM"); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %d bits, %d samples, %d panels -> %s\n",
		scheme, len(cfg.Bits), res.Len(), len(panels)+1, cfg.OutDir)
}

func writePanel(cfg config, name string, series []float64, label string) error {
	s := render.NewSurface(cfg.Width, cfg.Height, render.WithPixelRatio(cfg.PixelRatio))
	s.Plot(series, panelColors[name], label)

	path := filepath.Join(cfg.OutDir, name+".png")
	if err := s.SavePNG(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
