package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/modcv/workout/cv"
)

// renderState prints the clock, every channel's settings, its Euclidean
// rhythm and the voltage currently held on its jack.
func renderState(w io.Writer, env *env) {
	state := "stopped"
	if env.clock.Running() {
		state = "running"
	}
	fmt.Fprintf(w, "♩ %d  %s\n", env.clock.BPM(), colorize(state, colorMagenta))

	volts := env.sink.Voltages()
	for i, ch := range env.channels {
		id := colorize(fmt.Sprintf("cv%d", i+1), colorGreen)
		fmt.Fprintf(w, "%s %-3v %-3v amp %-3v wid %-3v skip %-3v %-9v %s %s\n",
			id,
			prop(ch, cv.PropClockMod),
			prop(ch, cv.PropWave),
			prop(ch, cv.PropAmplitude),
			prop(ch, cv.PropWidth),
			prop(ch, cv.PropSkip),
			prop(ch, cv.PropQuantizer),
			rhythm(ch),
			colorize(fmt.Sprintf("%5.2fV", volts[i]), colorBlue),
		)
	}

	obj := prop(env.controller, cv.PropDestObj)
	if obj != "none" {
		fmt.Fprintf(w, "ain → %v %v gain %v%%\n",
			obj, prop(env.controller, cv.PropDestKey), prop(env.controller, cv.PropGain))
	}
}

func prop(dev cv.Device, key string) interface{} {
	v, err := dev.Get(key)
	if err != nil {
		return "?"
	}
	return v
}

// rhythm draws the channel's Euclidean pattern as filled/empty steps.
func rhythm(ch cv.Device) string {
	steps, ok1 := prop(ch, cv.PropESteps).(int)
	trigs, ok2 := prop(ch, cv.PropETrigs).(int)
	rot, ok3 := prop(ch, cv.PropERot).(int)
	if !ok1 || !ok2 || !ok3 {
		return ""
	}
	if steps == 0 {
		return "⬛"
	}
	var b strings.Builder
	for _, v := range cv.EuclideanPattern(steps, trigs, rot) {
		if v > 0 {
			b.WriteString("⬛")
		} else {
			b.WriteString("⬜")
		}
	}
	return b.String()
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
