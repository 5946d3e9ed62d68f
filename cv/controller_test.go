package cv

import "testing"

// testInput is an analog input pinned at a fixed voltage.
type testInput struct {
	volts float64
}

func (in *testInput) ReadVoltage() float64 {
	return in.volts
}

func newTestController(t *testing.T, in *testInput) (*CVController, *MasterClock, *Output) {
	t.Helper()
	ch, _ := newTestOutput(t, nil)
	clock := NewMasterClock(NewProps(), 120, []*Output{ch})
	ctrl := NewCVController(NewProps(), in, clock, []*Output{ch})
	return ctrl, clock, ch
}

func TestControllerMapsInputRange(t *testing.T) {
	in := &testInput{}
	ctrl, _, ch := newTestController(t, in)
	if err := ctrl.Set(PropDestObj, "cv1"); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Set(PropDestKey, PropSkip); err != nil {
		t.Fatal(err)
	}

	in.volts = MaxInputVoltage
	ctrl.ReadAndApply()
	if v, _ := ch.Get(PropSkip); v != 100 {
		t.Errorf("full input: want skip 100, got %v", v)
	}

	in.volts = 0
	ctrl.ReadAndApply()
	if v, _ := ch.Get(PropSkip); v != 0 {
		t.Errorf("zero input: want skip 0, got %v", v)
	}
}

func TestControllerClockTempo(t *testing.T) {
	in := &testInput{volts: MaxInputVoltage}
	ctrl, clock, _ := newTestController(t, in)
	if err := ctrl.Set(PropDestObj, "clock"); err != nil {
		t.Fatal(err)
	}
	ctrl.ReadAndApply()
	if clock.BPM() != MaxBPM {
		t.Errorf("full input: want bpm %d, got %d", MaxBPM, clock.BPM())
	}

	in.volts = 0
	ctrl.ReadAndApply()
	if clock.BPM() != MinBPM {
		t.Errorf("zero input: want bpm %d, got %d", MinBPM, clock.BPM())
	}
}

func TestControllerGainScalesInput(t *testing.T) {
	in := &testInput{volts: MaxInputVoltage}
	ctrl, _, ch := newTestController(t, in)
	if err := ctrl.Set(PropDestObj, "cv1"); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Set(PropDestKey, PropAmplitude); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Set(PropGain, 0); err != nil {
		t.Fatal(err)
	}
	ctrl.ReadAndApply()
	if v, _ := ch.Get(PropAmplitude); v != 0 {
		t.Errorf("zero gain: want amplitude 0, got %v", v)
	}
}

func TestControllerEuclidBoundedBySteps(t *testing.T) {
	in := &testInput{volts: MaxInputVoltage}
	ctrl, _, ch := newTestController(t, in)
	if err := ch.Set(PropESteps, 8); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Set(PropDestObj, "cv1"); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Set(PropDestKey, PropETrigs); err != nil {
		t.Fatal(err)
	}
	ctrl.ReadAndApply()
	if v, _ := ch.Get(PropETrigs); v != 8 {
		t.Errorf("want e_trig capped at the live step count, got %v", v)
	}
}

func TestControllerDestKeyFollowsDestObj(t *testing.T) {
	ctrl, _, _ := newTestController(t, &testInput{})

	// switching destinations replaces a key that no longer applies
	if err := ctrl.Set(PropDestObj, "clock"); err != nil {
		t.Fatal(err)
	}
	if v, _ := ctrl.Get(PropDestKey); v != PropBPM {
		t.Errorf("want dest_key %q, got %v", PropBPM, v)
	}
	if err := ctrl.Set(PropDestKey, PropWave); err == nil {
		t.Error("want error setting a channel key on the clock")
	}

	if err := ctrl.Set(PropDestObj, "cv1"); err != nil {
		t.Fatal(err)
	}
	if v, _ := ctrl.Get(PropDestKey); v != PropClockMod {
		t.Errorf("want dest_key %q, got %v", PropClockMod, v)
	}
}

func TestControllerNoneIsInert(t *testing.T) {
	in := &testInput{volts: MaxInputVoltage}
	ctrl, clock, ch := newTestController(t, in)
	skip, _ := ch.Get(PropSkip)
	bpm := clock.BPM()

	ctrl.ReadAndApply()

	if v, _ := ch.Get(PropSkip); v != skip {
		t.Errorf("dest none wrote to a channel: skip %v", v)
	}
	if clock.BPM() != bpm {
		t.Errorf("dest none wrote to the clock: bpm %d", clock.BPM())
	}
}
