package cv

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"
)

// VoltageOutput is a hardware CV jack. Writes are fire and forget; there is
// no failure signal to handle.
type VoltageOutput interface {
	Voltage(volts float64)
}

// Property keys settable on an Output.
const (
	PropClockMod  = "clock_mod"
	PropWave      = "wave"
	PropAmplitude = "amplitude"
	PropWidth     = "width"
	PropSkip      = "skip"
	PropESteps    = "e_step"
	PropETrigs    = "e_trig"
	PropERot      = "e_rot"
	PropQuantizer = "quant"
)

// ChannelProps lists every Output key in an order that is safe to apply
// left to right: e_step comes before e_trig/e_rot so their clamping sees
// the new step count.
var ChannelProps = []string{
	PropClockMod,
	PropWave,
	PropAmplitude,
	PropWidth,
	PropSkip,
	PropESteps,
	PropETrigs,
	PropERot,
	PropQuantizer,
}

// Output drives a single CV jack. Configuration lives in lock-free props
// written from the main goroutine; the active pattern and cursor are owned
// by the clock's tick goroutine. The only crossing point is the pending
// pattern slot: a reconfiguration stages a freshly built pattern there and
// Tick swaps it in when the cursor wraps to zero, so channels stay
// phase-aligned and no pulse is cut short.
type Output struct {
	*Props
	out VoltageOutput

	clockMod  *atomic.Value // string, one of ClockModLabels
	wave      *atomic.Value // string, one of WaveShapeLabels
	amplitude *atomic.Value // int 0-100
	width     *atomic.Value // int 0-100
	skip      *atomic.Value // int 0-100
	eStep     *atomic.Value // int 0-MaxEuclidSteps
	eTrig     *atomic.Value // int, kept <= e_step
	eRot      *atomic.Value // int, kept <= e_step
	quant     *atomic.Value // string, one of QuantizerLabels

	pending atomic.Value // []float64 staged by the main goroutine

	// Owned by the tick goroutine.
	pattern   []float64
	pos       int
	prevVolts float64
	skipPulse bool

	ready bool // registration finished, setters may restage
}

func NewOutput(props *Props, out VoltageOutput) *Output {
	o := &Output{Props: props, out: out}
	o.eStep = props.MustRegister(PropESteps, o.setSteps, 0)
	o.eTrig = props.MustRegister(PropETrigs, o.setEuclid(), 0)
	o.eRot = props.MustRegister(PropERot, o.setEuclid(), 0)
	o.clockMod = props.MustRegister(PropClockMod, o.restage(setChoice(ClockModLabels)), "x1")
	o.wave = props.MustRegister(PropWave, o.restage(setChoice(WaveShapeLabels)), "Squ")
	o.amplitude = props.MustRegister(PropAmplitude, setInt(0, 100), 50) // applied at tick time
	o.width = props.MustRegister(PropWidth, o.restage(setInt(0, 100)), 50)
	o.skip = props.MustRegister(PropSkip, setInt(0, 100), 0) // applied at tick time
	o.quant = props.MustRegister(PropQuantizer, setChoice(QuantizerLabels), "None")
	o.ready = true
	o.pattern = o.build()
	return o
}

// restage wraps a setter so a successful store rebuilds the pattern into
// the pending slot.
func (o *Output) restage(set setter) setter {
	return withHook(set, func() {
		if o.ready {
			o.stage()
		}
	})
}

// setSteps clamps e_trig and e_rot back into range whenever the step count
// shrinks, then restages.
func (o *Output) setSteps(v interface{}, dest *atomic.Value) error {
	if err := setInt(0, MaxEuclidSteps)(v, dest); err != nil {
		return err
	}
	if !o.ready {
		return nil
	}
	steps := dest.Load().(int)
	if o.eTrig.Load().(int) > steps {
		o.eTrig.Store(steps)
	}
	if o.eRot.Load().(int) > steps {
		o.eRot.Store(steps)
	}
	o.stage()
	return nil
}

// setEuclid bounds e_trig/e_rot by the current step count.
func (o *Output) setEuclid() setter {
	return func(v interface{}, prop *atomic.Value) error {
		n, err := coerceInt(v)
		if err != nil {
			return err
		}
		max := MaxEuclidSteps
		if o.ready {
			max = o.eStep.Load().(int)
		}
		if n < 0 || n > max {
			return fmt.Errorf("property value is not in valid range %v - %v: %v", 0, max, n)
		}
		prop.Store(n)
		if o.ready {
			o.stage()
		}
		return nil
	}
}

// stage rebuilds the sample pattern and parks it for the tick goroutine to
// pick up at the next wrap. Building is proportional to steps per note and
// never happens inside Tick.
func (o *Output) stage() {
	o.pending.Store(o.build())
}

// build expands the Euclidean pattern into one sample per clock tick.
// Values are normalized to [0, 1]; amplitude and skip are applied at tick
// time. For the random shape the samples are just on/off markers and the
// actual voltage is drawn on each rising edge.
func (o *Output) build() []float64 {
	ePattern := EuclideanPattern(o.eStep.Load().(int), o.eTrig.Load().(int), o.eRot.Load().(int))
	ticksPerNote := int(math.Round(PPQN / ClockMods[o.clockMod.Load().(string)]))
	width := float64(o.width.Load().(int))
	shape := WaveShapes[o.wave.Load().(string)]

	samples := make([]float64, 0, ticksPerNote*len(ePattern))
	for _, pulse := range ePattern {
		for tick := 0; tick < ticksPerNote; tick++ {
			if pulse == 0 {
				samples = append(samples, 0)
				continue
			}
			switch shape {
			case WaveSquare:
				duty := float64(ticksPerNote) * width / 100
				if float64(tick) < duty {
					samples = append(samples, 1)
				} else {
					samples = append(samples, 0)
				}
			case WaveTriangle:
				rising := int(math.Round(float64(ticksPerNote) * width / 100))
				switch {
				case tick < rising:
					samples = append(samples, float64(tick)/float64(rising))
				case tick == rising:
					samples = append(samples, 1)
				default:
					falling := ticksPerNote - rising
					samples = append(samples, 1-float64(tick-rising)/float64(falling))
				}
			case WaveSine:
				theta := float64(tick) / float64(ticksPerNote) * 2 * math.Pi
				samples = append(samples, (math.Sin(theta)+1)/2)
			case WaveRandom:
				// on/off markers only; the voltage is drawn per rising
				// edge at tick time, so a contiguous run of on-steps
				// holds a single draw
				samples = append(samples, 1)
			default:
				// reset shape only fires on clock stop
				samples = append(samples, 0)
			}
		}
	}
	return samples
}

// Reset rewinds the cursor and held voltage, applying any staged pattern.
func (o *Output) Reset() {
	o.pos = 0
	o.prevVolts = 0
	if next, _ := o.pending.Swap([]float64(nil)).([]float64); next != nil {
		o.pattern = next
	}
}

// Tick advances the channel one clock pulse and writes the jack voltage.
// Runs on the clock goroutine and must stay cheap: no allocation, no
// pattern building.
func (o *Output) Tick() {
	prev := o.pos
	o.pos++
	if o.pos >= len(o.pattern) {
		o.pos = 0
		// a queued reconfiguration takes effect only here
		if next, _ := o.pending.Swap([]float64(nil)).([]float64); next != nil {
			o.pattern = next
			prev = len(o.pattern) - 1
		}
	}
	sample := o.pattern[o.pos]

	// Pattern restart or an off-to-on transition in the rhythm.
	risingEdge := o.pos == 0 || (o.pattern[prev] == 0 && sample > 0)
	if risingEdge {
		o.skipPulse = rand.Intn(100) < o.skip.Load().(int)
	}

	amplitude := float64(o.amplitude.Load().(int))
	var volts float64
	if WaveShapes[o.wave.Load().(string)] == WaveRandom {
		if risingEdge && !o.skipPulse {
			width := float64(o.width.Load().(int))
			volts = MaxOutputVoltage*rand.Float64()*(amplitude/100) + MaxOutputVoltage*(width/100)
		} else {
			// hold between pulses; a skip suppresses only the redraw
			volts = o.prevVolts
		}
	} else if o.skipPulse {
		volts = 0
	} else {
		volts = MaxOutputVoltage * sample * (amplitude / 100)
	}

	if q := Quantizers[o.quant.Load().(string)]; q != nil {
		volts, _ = q.Quantize(volts, 0)
	}

	o.out.Voltage(volts)
	o.prevVolts = volts
}
