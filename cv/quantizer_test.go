package cv

import (
	"math"
	"testing"
)

func TestQuantizeChromatic(t *testing.T) {
	q := Quantizers["Chromatic"]
	tests := []struct {
		in       float64
		want     float64
		wantNote int
	}{
		{0.0, 0.0, 0},
		{1.0, 1.0, 0},
		{0.5, 0.5, 6},
		{2.26, 2.25, 3},
		{VoltsPerSemitone * 7, VoltsPerSemitone * 7, 7},
	}
	for _, test := range tests {
		got, note := q.Quantize(test.in, 0)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("quantize(%v): want %v, got %v", test.in, test.want, got)
		}
		if note != test.wantNote {
			t.Errorf("quantize(%v): want note %v, got %v", test.in, test.wantNote, note)
		}
	}
}

func TestQuantizeRootOnlySnapsToOctaves(t *testing.T) {
	q := newScale("100000000000")
	for _, in := range []float64{0.0, 0.3, 0.49, 0.51, 0.9, 1.2, 4.49, 7.9} {
		got, note := q.Quantize(in, 0)
		want := math.Round(in)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("quantize(%v): want octave %v, got %v", in, want, got)
		}
		if note != 0 {
			t.Errorf("quantize(%v): want root note, got %v", in, note)
		}
	}
}

func TestQuantizeNearestDegree(t *testing.T) {
	// natural major: F# (semitone 6) is off scale, nearest is F (5)
	q := Quantizers["Nat Maj"]
	got, note := q.Quantize(VoltsPerSemitone*6, 0)
	if want := VoltsPerSemitone * 5; math.Abs(got-want) > 1e-9 {
		t.Errorf("want %v, got %v", want, got)
	}
	if note != 5 {
		t.Errorf("want note 5, got %v", note)
	}
}

func TestQuantizeRootTransposes(t *testing.T) {
	q := newScale("100000000000")
	// with the root moved up two semitones, snapping targets D + octaves
	got, note := q.Quantize(VoltsPerSemitone*2, 2)
	if want := VoltsPerSemitone * 2; math.Abs(got-want) > 1e-9 {
		t.Errorf("want %v, got %v", want, got)
	}
	if note != 0 {
		t.Errorf("want root degree, got %v", note)
	}
	got, _ = q.Quantize(1.0+VoltsPerSemitone*2, 2)
	if want := 1.0 + VoltsPerSemitone*2; math.Abs(got-want) > 1e-9 {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestQuantizeEmptyScale(t *testing.T) {
	q := newScale("000000000000")
	if got, note := q.Quantize(3.3, 0); got != 0 || note != 0 {
		t.Errorf("empty scale: want (0, 0), got (%v, %v)", got, note)
	}
}

func TestQuantizeClampsToOutputRange(t *testing.T) {
	q := Quantizers["Chromatic"]
	got, _ := q.Quantize(MaxOutputVoltage+1, 0)
	if got > MaxOutputVoltage {
		t.Errorf("quantized voltage above DAC range: %v", got)
	}
}

func TestScaleTables(t *testing.T) {
	for _, label := range QuantizerLabels {
		if label == "None" {
			continue
		}
		q, ok := Quantizers[label]
		if !ok {
			t.Errorf("label %q has no scale", label)
			continue
		}
		if !q.Note(0) {
			t.Errorf("scale %q does not contain its root", label)
		}
	}
	if _, ok := Quantizers["None"]; ok {
		t.Error("None must not resolve to a scale")
	}
}
