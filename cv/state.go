package cv

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Persisted state mirrors the devices' property keys. Pointer fields so a
// missing key leaves the current value alone; a malformed one is logged and
// skipped without invalidating the rest of the file.

type clockState struct {
	BPM          *int  `json:"bpm,omitempty"`
	ResetOnStart *bool `json:"reset_on_start,omitempty"`
}

type channelState struct {
	ClockMod  *string `json:"clock_mod,omitempty"`
	Wave      *string `json:"wave,omitempty"`
	Amplitude *int    `json:"amplitude,omitempty"`
	Width     *int    `json:"width,omitempty"`
	Skip      *int    `json:"skip,omitempty"`
	ESteps    *int    `json:"e_step,omitempty"`
	ETrigs    *int    `json:"e_trig,omitempty"`
	ERot      *int    `json:"e_rot,omitempty"`
	Quantizer *string `json:"quant,omitempty"`
}

type controllerState struct {
	DestObj *string `json:"dest_obj,omitempty"`
	DestKey *string `json:"dest_key,omitempty"`
	Gain    *int    `json:"gain,omitempty"`
}

type patchState struct {
	Clock    *clockState      `json:"clock,omitempty"`
	Channels []channelState   `json:"channels,omitempty"`
	Ain      *controllerState `json:"ain,omitempty"`
}

// SaveState writes the whole patch as JSON.
func SaveState(path string, clock Device, channels []*Output, ctrl Device) error {
	var patch patchState

	patch.Clock = &clockState{
		BPM:          intProp(clock, PropBPM),
		ResetOnStart: boolProp(clock, PropResetOnStart),
	}
	for _, ch := range channels {
		patch.Channels = append(patch.Channels, channelState{
			ClockMod:  stringProp(ch, PropClockMod),
			Wave:      stringProp(ch, PropWave),
			Amplitude: intProp(ch, PropAmplitude),
			Width:     intProp(ch, PropWidth),
			Skip:      intProp(ch, PropSkip),
			ESteps:    intProp(ch, PropESteps),
			ETrigs:    intProp(ch, PropETrigs),
			ERot:      intProp(ch, PropERot),
			Quantizer: stringProp(ch, PropQuantizer),
		})
	}
	patch.Ain = &controllerState{
		DestObj: stringProp(ctrl, PropDestObj),
		DestKey: stringProp(ctrl, PropDestKey),
		Gain:    intProp(ctrl, PropGain),
	}

	data, err := json.MarshalIndent(&patch, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadState applies a saved patch field by field. A field the devices
// reject (unknown label, out-of-range value) is logged and skipped; the
// rest of the patch still loads.
func LoadState(path string, clock Device, channels []*Output, ctrl Device) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var patch patchState
	if err := json.Unmarshal(data, &patch); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	if patch.Clock != nil {
		applyInt(clock, PropBPM, patch.Clock.BPM)
		applyBool(clock, PropResetOnStart, patch.Clock.ResetOnStart)
	}
	for i, cs := range patch.Channels {
		if i >= len(channels) {
			break
		}
		ch := channels[i]
		// steps first so the trigger/rotation clamp sees the new count
		applyInt(ch, PropESteps, cs.ESteps)
		applyInt(ch, PropETrigs, cs.ETrigs)
		applyInt(ch, PropERot, cs.ERot)
		applyString(ch, PropClockMod, cs.ClockMod)
		applyString(ch, PropWave, cs.Wave)
		applyInt(ch, PropAmplitude, cs.Amplitude)
		applyInt(ch, PropWidth, cs.Width)
		applyInt(ch, PropSkip, cs.Skip)
		applyString(ch, PropQuantizer, cs.Quantizer)
	}
	if patch.Ain != nil {
		applyString(ctrl, PropDestObj, patch.Ain.DestObj)
		applyString(ctrl, PropDestKey, patch.Ain.DestKey)
		applyInt(ctrl, PropGain, patch.Ain.Gain)
	}
	return nil
}

func applyInt(dev Device, key string, v *int) {
	if v == nil {
		return
	}
	if err := dev.Set(key, *v); err != nil {
		log.Printf("load: skipping %s: %v", key, err)
	}
}

func applyBool(dev Device, key string, v *bool) {
	if v == nil {
		return
	}
	if err := dev.Set(key, *v); err != nil {
		log.Printf("load: skipping %s: %v", key, err)
	}
}

func applyString(dev Device, key string, v *string) {
	if v == nil {
		return
	}
	if err := dev.Set(key, *v); err != nil {
		log.Printf("load: skipping %s: %v", key, err)
	}
}

func intProp(dev Device, key string) *int {
	v, err := dev.Get(key)
	if err != nil {
		return nil
	}
	if n, ok := v.(int); ok {
		return &n
	}
	return nil
}

func boolProp(dev Device, key string) *bool {
	v, err := dev.Get(key)
	if err != nil {
		return nil
	}
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

func stringProp(dev Device, key string) *string {
	v, err := dev.Get(key)
	if err != nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}
