package cv

import (
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// VoltageInput is the hardware analog input jack.
type VoltageInput interface {
	ReadVoltage() float64
}

// Property keys settable on the CVController.
const (
	PropDestObj = "dest_obj"
	PropDestKey = "dest_key"
	PropGain    = "gain"
)

// DestObjects names the destinations the analog input can be routed to.
var DestObjects = []string{"none", "clock", "cv1", "cv2", "cv3", "cv4", "cv5", "cv6"}

var (
	noneDestKeys  = []string{"none"}
	clockDestKeys = []string{PropBPM}
	channelDestKeys = []string{
		PropClockMod, PropWave, PropWidth, PropAmplitude, PropSkip,
		PropESteps, PropETrigs, PropERot, PropQuantizer,
	}
)

// CVController routes the analog input onto one property of one device.
// Reads run in the main goroutine, cooperatively interleaved with the REPL
// and pattern staging; there is no locking against concurrent edits, so a
// transient mismatch is discarded instead of propagated.
type CVController struct {
	*Props
	in       VoltageInput
	clock    *MasterClock
	channels []*Output

	destObj *atomic.Value // string, one of DestObjects
	destKey *atomic.Value // string, valid for the current dest_obj
	gain    *atomic.Value // int 0-300 percent
}

func NewCVController(props *Props, in VoltageInput, clock *MasterClock, channels []*Output) *CVController {
	c := &CVController{Props: props, in: in, clock: clock, channels: channels}
	c.destObj = props.MustRegister(PropDestObj, c.setDestObj, "none")
	c.destKey = props.MustRegister(PropDestKey, c.setDestKey, "none")
	c.gain = props.MustRegister(PropGain, setInt(0, 300), 100)
	return c
}

// DestKeys returns the settable keys for a destination label.
func DestKeys(obj string) []string {
	switch {
	case obj == "clock":
		return clockDestKeys
	case strings.HasPrefix(obj, "cv"):
		return channelDestKeys
	default:
		return noneDestKeys
	}
}

// setDestObj switches the destination and, if the current key is invalid
// for it, falls back to the destination's first key.
func (c *CVController) setDestObj(v interface{}, dest *atomic.Value) error {
	if err := setChoice(DestObjects)(v, dest); err != nil {
		return err
	}
	if c.destKey == nil {
		return nil
	}
	obj := dest.Load().(string)
	key := c.destKey.Load().(string)
	for _, k := range DestKeys(obj) {
		if k == key {
			return nil
		}
	}
	c.destKey.Store(DestKeys(obj)[0])
	return nil
}

func (c *CVController) setDestKey(v interface{}, dest *atomic.Value) error {
	obj := "none"
	if c.destObj != nil {
		obj = c.destObj.Load().(string)
	}
	return setChoice(DestKeys(obj))(v, dest)
}

// device resolves a destination label to its Device.
func (c *CVController) device(obj string) Device {
	if obj == "clock" {
		return c.clock
	}
	if strings.HasPrefix(obj, "cv") {
		n, err := strconv.Atoi(obj[2:])
		if err != nil || n < 1 || n > len(c.channels) {
			return nil
		}
		return c.channels[n-1]
	}
	return nil
}

// options lists the values the input can currently map to for (dev, key).
// The euclid trigger/rotation ranges depend on the destination's live step
// count, so the list can shift underneath us; callers treat failures as
// transient.
func (c *CVController) options(dev Device, key string) []interface{} {
	switch key {
	case PropBPM:
		return intOptions(MinBPM, MaxBPM)
	case PropClockMod:
		return labelOptions(ClockModLabels)
	case PropWave:
		return labelOptions(WaveShapeLabels)
	case PropQuantizer:
		return labelOptions(QuantizerLabels)
	case PropWidth, PropAmplitude, PropSkip:
		return intOptions(0, 100)
	case PropESteps:
		return intOptions(0, MaxEuclidSteps)
	case PropETrigs, PropERot:
		v, err := dev.Get(PropESteps)
		if err != nil {
			return nil
		}
		steps, ok := v.(int)
		if !ok {
			return nil
		}
		return intOptions(0, steps)
	}
	return nil
}

// ReadAndApply samples the analog input, scales it by the gain and maps it
// onto the destination property's option list. Any error from a write that
// raced a concurrent reconfiguration is discarded.
func (c *CVController) ReadAndApply() {
	obj := c.destObj.Load().(string)
	dev := c.device(obj)
	if dev == nil {
		return
	}
	key := c.destKey.Load().(string)
	opts := c.options(dev, key)
	if len(opts) == 0 {
		return
	}
	volts := c.in.ReadVoltage() * float64(c.gain.Load().(int)) / 100
	idx := int(math.Round(volts / MaxInputVoltage * float64(len(opts))))
	if idx > len(opts)-1 {
		idx = len(opts) - 1
	}
	if idx < 0 {
		idx = 0
	}
	_ = dev.Set(key, opts[idx])
}

func intOptions(min, max int) []interface{} {
	opts := make([]interface{}, 0, max-min+1)
	for n := min; n <= max; n++ {
		opts = append(opts, n)
	}
	return opts
}

func labelOptions(labels []string) []interface{} {
	opts := make([]interface{}, len(labels))
	for i, l := range labels {
		opts[i] = l
	}
	return opts
}
