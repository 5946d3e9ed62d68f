package cv

import (
	"sync"
	"sync/atomic"
	"time"
)

// PPQN is the internal clock resolution in pulses per quarter note. 24 is
// fine enough to approximate waveforms and is a multiple of 3, which the
// triplet clock mods need.
const PPQN = 24

const (
	MinBPM = 1
	MaxBPM = 300
)

// Property keys settable on the MasterClock.
const (
	PropBPM          = "bpm"
	PropResetOnStart = "reset_on_start"
)

// Duration of the trigger emitted on stop by reset-shape channels.
const resetPulse = 10 * time.Millisecond

// MasterClock drives every Output. A single goroutine services the ticker,
// so all channel Tick calls run synchronously and each pulse completes
// before the next one fires. Tempo edits can arrive from the analog poll
// loop concurrently with REPL start/stop, so the run state and ticker are
// guarded by a mutex.
type MasterClock struct {
	*Props
	channels []*Output

	bpm          *atomic.Value // int
	resetOnStart *atomic.Value // bool

	mu      sync.Mutex
	running bool
	ticker  *time.Ticker
	done    chan struct{}
}

func NewMasterClock(props *Props, bpm int, channels []*Output) *MasterClock {
	c := &MasterClock{Props: props, channels: channels}
	c.bpm = props.MustRegister(PropBPM, c.setBPM, bpm)
	c.resetOnStart = props.MustRegister(PropResetOnStart, setBool, true)
	return c
}

func (c *MasterClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *MasterClock) BPM() int {
	return c.bpm.Load().(int)
}

// period is the tick interval: 60000 / (bpm * PPQN) milliseconds.
func (c *MasterClock) period() time.Duration {
	return time.Duration(float64(time.Minute) / float64(c.BPM()) / PPQN)
}

// setBPM stores the new tempo and re-arms a running ticker right away
// instead of waiting out the current interval.
func (c *MasterClock) setBPM(v interface{}, dest *atomic.Value) error {
	if err := setInt(MinBPM, MaxBPM)(v, dest); err != nil {
		return err
	}
	c.mu.Lock()
	if c.running {
		c.ticker.Reset(c.period())
	}
	c.mu.Unlock()
	return nil
}

// Start arms the timer. With reset_on_start set, every channel rewinds to
// its pattern start first so all outputs begin phase-aligned.
func (c *MasterClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	if c.resetOnStart.Load().(bool) {
		for _, ch := range c.channels {
			ch.Reset()
		}
	}
	// arm the ticker before flipping running so a concurrent tempo edit
	// never sees a running clock without one
	c.ticker = time.NewTicker(c.period())
	c.done = make(chan struct{})
	c.running = true
	go c.run(c.ticker, c.done)
}

func (c *MasterClock) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			for _, ch := range c.channels {
				ch.Tick()
			}
		}
	}
}

// Stop halts the clock. Channels in the reset shape emit a trigger at their
// configured amplitude for about 10ms; every other channel is pulled to
// zero immediately so no output is left sitting high.
func (c *MasterClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	// unbuffered handshake: the tick goroutine has finished its last pulse
	// once this send completes
	c.done <- struct{}{}
	c.ticker.Stop()

	for _, ch := range c.channels {
		if WaveShapes[ch.wave.Load().(string)] == WaveReset {
			ch.out.Voltage(MaxOutputVoltage * float64(ch.amplitude.Load().(int)) / 100)
		} else {
			ch.out.Voltage(0)
		}
	}
	time.Sleep(resetPulse)
	for _, ch := range c.channels {
		if WaveShapes[ch.wave.Load().(string)] == WaveReset {
			ch.out.Voltage(0)
		}
	}
}
