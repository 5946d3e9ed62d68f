package cv

import (
	"fmt"
	"math"
)

// 1.0 V/octave, the Eurorack standard.
const (
	VoltsPerOctave     = 1.0
	SemitonesPerOctave = 12
	VoltsPerSemitone   = VoltsPerOctave / SemitonesPerOctave
)

// SemitoneLabels names the 12 semitones, sharps not flats.
var SemitoneLabels = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Quantizer is a set of enabled semitones voltages can snap to.
type Quantizer struct {
	notes [SemitonesPerOctave]bool
}

// NewQuantizer builds a quantizer from an explicit semitone mask.
func NewQuantizer(notes [SemitonesPerOctave]bool) *Quantizer {
	return &Quantizer{notes: notes}
}

// newScale parses a 12-character "101011010101" mask, index 0 being C.
// Only used for the static scale tables.
func newScale(mask string) *Quantizer {
	if len(mask) != SemitonesPerOctave {
		panic(fmt.Sprintf("scale mask must have %d characters: %q", SemitonesPerOctave, mask))
	}
	var q Quantizer
	for i, c := range mask {
		q.notes[i] = c == '1'
	}
	return &q
}

// Note reports whether semitone n is enabled. n may be any integer and is
// reduced modulo the octave.
func (q *Quantizer) Note(n int) bool {
	return q.notes[((n%SemitonesPerOctave)+SemitonesPerOctave)%SemitonesPerOctave]
}

// SetNote enables or disables semitone n.
func (q *Quantizer) SetNote(n int, on bool) {
	q.notes[((n%SemitonesPerOctave)+SemitonesPerOctave)%SemitonesPerOctave] = on
}

// Quantize rounds volts to the nearest enabled scale degree, transposed up
// by root semitones. It returns the output voltage and the resolved degree
// (0-11 relative to the root). A scale with only the root enabled
// degenerates to octave snapping. An empty scale outputs zero.
func (q *Quantizer) Quantize(volts float64, root int) (float64, int) {
	enabled := false
	for _, on := range q.notes {
		if on {
			enabled = true
			break
		}
	}
	if !enabled {
		return 0, 0
	}

	// Bracket the input with the nearest enabled degree on either side and
	// keep whichever is closer in voltage. Ties prefer the lower note.
	rootVolts := VoltsPerSemitone * float64(root)
	exact := (volts - rootVolts) / VoltsPerSemitone
	nearest := int(math.Round(exact))

	down, up := nearest, nearest
	for !q.Note(down) {
		down--
	}
	for !q.Note(up) {
		up++
	}
	semi := down
	if math.Abs(exact-float64(up)) < math.Abs(exact-float64(down)) {
		semi = up
	}

	out := float64(semi)*VoltsPerSemitone + rootVolts

	// Keep the result inside the DAC's range without leaving the scale.
	for out > MaxOutputVoltage {
		semi--
		if q.Note(semi) {
			out = float64(semi)*VoltsPerSemitone + rootVolts
		}
	}
	for out < 0 {
		semi++
		if q.Note(semi) {
			out = float64(semi)*VoltsPerSemitone + rootVolts
		}
	}

	return out, ((semi % SemitonesPerOctave) + SemitonesPerOctave) % SemitonesPerOctave
}
