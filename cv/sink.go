package cv

import (
	"fmt"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

const (
	sampleRate = 44100
	bufferSize = 512
)

// Sink drives a DC-coupled audio interface as the module's hardware: every
// engine channel holds a constant level on its own output channel, and the
// first input channel doubles as the analog CV input. Voltages are scaled
// against MaxOutputVoltage / MaxInputVoltage at the interface boundary.
type Sink struct {
	stream *portaudio.Stream
	volts  []atomic.Value // float64 per output channel
	ain    atomic.Value   // float64, last seen input voltage
}

func NewSink(numChannels int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &Sink{volts: make([]atomic.Value, numChannels)}
	for i := range s.volts {
		s.volts[i].Store(0.0)
	}
	s.ain.Store(0.0)
	stream, err := portaudio.OpenDefaultStream(1, numChannels, sampleRate, bufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

func (s *Sink) Stop() error {
	s.stream.Close()
	return portaudio.Terminate()
}

func (s *Sink) process(in, out [][]float32) {
	for ch := range out {
		level := float32(s.volts[ch].Load().(float64) / MaxOutputVoltage)
		buf := out[ch]
		for i := range buf {
			buf[i] = level
		}
	}
	if len(in) > 0 && len(in[0]) > 0 {
		s.ain.Store(float64(in[0][len(in[0])-1]) * MaxInputVoltage)
	}
}

// Channel returns the VoltageOutput for output jack n.
func (s *Sink) Channel(n int) (VoltageOutput, error) {
	if n < 0 || n >= len(s.volts) {
		return nil, fmt.Errorf("no such output channel: %d", n)
	}
	return &sinkChannel{sink: s, n: n}, nil
}

// Voltages returns a snapshot of the currently held output voltages.
func (s *Sink) Voltages() []float64 {
	snapshot := make([]float64, len(s.volts))
	for i := range s.volts {
		snapshot[i] = s.volts[i].Load().(float64)
	}
	return snapshot
}

// ReadVoltage implements VoltageInput from the first input channel.
func (s *Sink) ReadVoltage() float64 {
	return s.ain.Load().(float64)
}

type sinkChannel struct {
	sink *Sink
	n    int
}

func (c *sinkChannel) Voltage(volts float64) {
	c.sink.volts[c.n].Store(volts)
}
