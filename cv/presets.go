package cv

import (
	"fmt"
	"sort"
)

// Device is the generic keyed get/set contract shared by the clock, the
// outputs and the CV controller. Unknown keys return an error; callers that
// may race a concurrent reconfiguration (the CVController) discard it,
// everyone else treats it as a programming error.
type Device interface {
	Set(key string, val interface{}) error
	Get(key string) (interface{}, error)
}

type preset map[string]interface{}

// Factory channel setups. Values go through the same validating setters as
// any other edit, so a preset can never put a channel in an illegal state.
var presets = map[string]preset{
	"gate": {
		PropWave:      "Squ",
		PropClockMod:  "x1",
		PropWidth:     50,
		PropAmplitude: 50,
		PropESteps:    0,
		PropSkip:      0,
	},
	"pwm-lfo": {
		PropWave:      "Squ",
		PropClockMod:  "/4",
		PropWidth:     25,
		PropAmplitude: 100,
	},
	"tri-lfo": {
		PropWave:      "Tri",
		PropClockMod:  "/8",
		PropWidth:     50,
		PropAmplitude: 100,
	},
	"sine-lfo": {
		PropWave:      "Sin",
		PropClockMod:  "/8",
		PropAmplitude: 100,
	},
	"sample-hold": {
		PropWave:      "Rnd",
		PropClockMod:  "x1",
		PropAmplitude: 100,
		PropWidth:     0,
	},
	"euclid": {
		PropWave:      "Squ",
		PropClockMod:  "x1",
		PropESteps:    16,
		PropETrigs:    5,
		PropERot:      0,
		PropWidth:     50,
	},
	"run": {
		PropWave:      "Rst",
		PropAmplitude: 100,
	},
}

// LoadPreset applies a factory preset to a device key by key. e_step is
// applied first so the euclid trigger/rotation values fit their range.
func LoadPreset(name string, d Device) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %v", name)
	}
	if v, ok := p[PropESteps]; ok {
		if err := d.Set(PropESteps, v); err != nil {
			return err
		}
	}
	for k, v := range p {
		if k == PropESteps {
			continue
		}
		if err := d.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// PresetNames lists the factory presets in stable order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
