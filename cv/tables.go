package cv

// Output range of the CV jacks and the ceiling of the analog input.
const (
	MaxOutputVoltage = 10.0
	MaxInputVoltage  = 12.0
)

// WaveShape selects how an on-step of the pattern is filled with samples.
type WaveShape int

const (
	// Pulse/square wave; width is the duty cycle.
	WaveSquare WaveShape = iota
	// Triangle; width 0 is a falling saw, 50 symmetric, 100 a rising ramp.
	WaveTriangle
	// Sine spanning [0, 1] over one note; width is ignored.
	WaveSine
	// Sample & hold: a fresh voltage per pulse, held until the next one.
	// Amplitude scales the draw, width offsets it.
	WaveRandom
	// Off during normal ticking; emits a short trigger when the clock stops.
	WaveReset
)

var WaveShapes = map[string]WaveShape{
	"Squ": WaveSquare,
	"Tri": WaveTriangle,
	"Sin": WaveSine,
	"Rnd": WaveRandom,
	"Rst": WaveReset,
}

var WaveShapeLabels = []string{"Squ", "Tri", "Sin", "Rnd", "Rst"}

// ClockMods maps a modifier label to the channel rate relative to the
// master BPM. Every ratio divides PPQN evenly, so ticks per note is always
// an integer.
var ClockMods = map[string]float64{
	"x8":  8.0,
	"x6":  6.0,
	"x4":  4.0,
	"x3":  3.0,
	"x2":  2.0,
	"x1":  1.0,
	"/2":  1 / 2.0,
	"/3":  1 / 3.0,
	"/4":  1 / 4.0,
	"/6":  1 / 6.0,
	"/8":  1 / 8.0,
	"/12": 1 / 12.0,
	"/16": 1 / 16.0,
}

var ClockModLabels = []string{
	"x8", "x6", "x4", "x3", "x2", "x1",
	"/2", "/3", "/4", "/6", "/8", "/12", "/16",
}

// Quantizers holds the scales a channel can snap to, as semitone masks
// ordered C C# D D# E F F# G G# A A# B.
var Quantizers = map[string]*Quantizer{
	"Chromatic": newScale("111111111111"),

	"Nat Maj": newScale("101011010101"),
	"Har Maj": newScale("101011011010"),
	"Maj 135": newScale("100010010000"),

	"Nat Min": newScale("101101011010"),
	"Har Min": newScale("101101011001"),
	"Min 135": newScale("100100010000"),

	"Maj Blues": newScale("101110010100"),
	"Min Blues": newScale("100101110010"),

	"Penta": newScale("101010010100"),
	"Whole": newScale("101010101010"),
	"135b7": newScale("100010010010"),
}

// QuantizerLabels is the display/persistence order; "None" disables
// quantization.
var QuantizerLabels = []string{
	"None",
	"Chromatic",
	"Nat Maj",
	"Har Maj",
	"Maj 135",
	"Nat Min",
	"Har Min",
	"Min 135",
	"Maj Blues",
	"Min Blues",
	"Penta",
	"Whole",
	"135b7",
}
