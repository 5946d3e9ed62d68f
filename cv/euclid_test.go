package cv

import (
	"reflect"
	"testing"
)

func TestEuclideanPatternPulseCount(t *testing.T) {
	for steps := 0; steps <= MaxEuclidSteps; steps++ {
		for pulses := 0; pulses <= steps; pulses++ {
			for rot := 0; rot <= steps; rot++ {
				pattern := EuclideanPattern(steps, pulses, rot)
				wantLen := steps
				if steps == 0 {
					wantLen = 1
				}
				if len(pattern) != wantLen {
					t.Fatalf("E(%d,%d,%d): wrong length %d", steps, pulses, rot, len(pattern))
				}
				var ones int
				for _, v := range pattern {
					ones += v
				}
				wantOnes := pulses
				if steps == 0 {
					wantOnes = 1
				}
				if ones != wantOnes {
					t.Errorf("E(%d,%d,%d): want %d pulses, got %d", steps, pulses, rot, wantOnes, ones)
				}
			}
		}
	}
}

func TestEuclideanPatternRotation(t *testing.T) {
	for steps := 1; steps <= MaxEuclidSteps; steps++ {
		for pulses := 0; pulses <= steps; pulses++ {
			base := EuclideanPattern(steps, pulses, 0)
			for rot := 0; rot < steps; rot++ {
				got := EuclideanPattern(steps, pulses, rot)
				want := make([]int, steps)
				for i := range base {
					want[i] = base[(i+rot)%steps]
				}
				if !reflect.DeepEqual(want, got) {
					t.Errorf("E(%d,%d,%d): want %v, got %v", steps, pulses, rot, want, got)
				}
			}
		}
	}
}

func TestEuclideanPatternSpacing(t *testing.T) {
	tests := []struct {
		steps, pulses int
		want          []int
	}{
		{8, 3, []int{1, 0, 0, 1, 0, 0, 1, 0}},
		{5, 2, []int{1, 0, 0, 1, 0}},
		{4, 4, []int{1, 1, 1, 1}},
		{8, 0, []int{0, 0, 0, 0, 0, 0, 0, 0}},
		{16, 4, []int{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}},
	}
	for _, test := range tests {
		if got := EuclideanPattern(test.steps, test.pulses, 0); !reflect.DeepEqual(test.want, got) {
			t.Errorf("E(%d,%d): want %v, got %v", test.steps, test.pulses, test.want, got)
		}
	}
}

func TestEuclideanPatternDegenerate(t *testing.T) {
	if got := EuclideanPattern(0, 0, 0); !reflect.DeepEqual([]int{1}, got) {
		t.Errorf("E(0,0,0): want [1], got %v", got)
	}
	// pulses beyond steps are clamped, not an error
	if got := EuclideanPattern(4, 9, 0); !reflect.DeepEqual([]int{1, 1, 1, 1}, got) {
		t.Errorf("E(4,9,0): want all ones, got %v", got)
	}
}
