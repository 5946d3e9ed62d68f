package cv

import (
	"fmt"
	"io"

	wav "github.com/youpy/go-wav"
)

// captureOutput collects every voltage written during an offline render.
type captureOutput struct {
	volts []float64
}

func (c *captureOutput) Voltage(volts float64) {
	c.volts = append(c.volts, volts)
}

// Render plays a detached copy of src for the given number of beats at bpm
// and writes the resulting CV stream as 16-bit mono WAV, each clock tick
// expanded to its real-time length in samples. Handy for eyeballing a
// channel's waveform in an editor without hardware attached.
func Render(w io.Writer, src Device, bpm, beats int) error {
	if bpm < MinBPM || bpm > MaxBPM {
		return fmt.Errorf("bpm out of range %d - %d: %d", MinBPM, MaxBPM, bpm)
	}
	if beats <= 0 {
		return fmt.Errorf("nothing to render: %d beats", beats)
	}

	capture := &captureOutput{}
	out := NewOutput(NewProps(), capture)
	for _, key := range ChannelProps {
		v, err := src.Get(key)
		if err != nil {
			return err
		}
		if err := out.Set(key, v); err != nil {
			return err
		}
	}
	out.Reset()

	for n := 0; n < beats*PPQN; n++ {
		out.Tick()
	}

	samplesPerTick := int(float64(sampleRate) * 60 / (float64(bpm) * PPQN))
	samples := make([]wav.Sample, 0, len(capture.volts)*samplesPerTick)
	for _, volts := range capture.volts {
		level := int(volts / MaxOutputVoltage * 32767)
		for i := 0; i < samplesPerTick; i++ {
			samples = append(samples, wav.Sample{Values: [2]int{level, level}})
		}
	}
	writer := wav.NewWriter(w, uint32(len(samples)), 1, sampleRate, 16)
	return writer.WriteSamples(samples)
}
