//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-keying/dsp/core"
	"github.com/cwbudde/algo-keying/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		var opts []core.SynthOption
		if len(args) > 0 {
			opts = append(opts, core.WithSamplesPerBit(args[0].Int()))
		}
		engine = webdemo.NewEngine(opts...)
		return js.Null()
	}))

	api.Set("setParams", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		p := args[0]
		err := engine.SetParams(webdemo.Params{
			Scheme:        p.Get("scheme").String(),
			Frequency:     p.Get("frequency").Float(),
			Amplitude:     p.Get("amplitude").Float(),
			BitRate:       p.Get("bitRate").Float(),
			FreqDeviation: p.Get("freqDeviation").Float(),
			Bits:          p.Get("bits").String(),
		})
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("run", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		if err := engine.Run(); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("series", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float64Array").New(0)
		}
		switch args[0].String() {
		case "digital":
			return toFloat64Array(engine.Digital())
		case "carrier":
			return toFloat64Array(engine.Carrier())
		case "modulated":
			return toFloat64Array(engine.Modulated())
		case "unmodulated":
			return toFloat64Array(engine.Unmodulated())
		case "time":
			return toFloat64Array(engine.TimeLabels())
		default:
			return js.Global().Get("Float64Array").New(0)
		}
	}))

	api.Set("spectrum", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float64Array").New(0)
		}
		curve, err := engine.SpectrumDB(args[0].Int())
		if err != nil {
			return err.Error()
		}
		return toFloat64Array(curve)
	}))

	api.Set("randomBits", export(func(args []js.Value) any {
		if engine == nil {
			return ""
		}
		n := 0
		if len(args) > 0 {
			n = args[0].Int()
		}
		return engine.RandomBits(n)
	}))

	js.Global().Set("keyingDemo", api)

	select {}
}

func export(fn func(args []js.Value) any) js.Func {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

func toFloat64Array(data []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}
