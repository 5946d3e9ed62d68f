package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/modcv/workout/cv"
	"github.com/modcv/workout/lang"
)

// variadic marks commands that validate their own argument count.
const variadic = -1

type command struct {
	name  string
	help  string
	run   func(*env, []lang.Node) (string, error)
	arity int // exact number of arguments, or variadic
}

var commands = []command{
	{"start", "start the master clock", startCommand, 0},
	{"stop", "stop the master clock and clear the outputs", stopCommand, 0},
	{"set", "set <device> <key> <value>", setCommand, 3},
	{"get", "get <device> <key>", getCommand, 2},
	{"show", "print clock and channel state", showCommand, 0},
	{"preset", "preset <device> <name>: apply a factory channel setup", presetCommand, 2},
	{"save", "save [file]: write the patch as JSON", saveCommand, variadic},
	{"load", "load [file]: apply a saved patch", loadCommand, variadic},
	{"render", "render <device> <beats> <file>: write a channel's CV to WAV", renderCommand, 3},
	{"help", "list commands", helpCommand, 0},
}

func startCommand(env *env, args []lang.Node) (string, error) {
	env.clock.Start()
	return "", nil
}

func stopCommand(env *env, args []lang.Node) (string, error) {
	env.clock.Stop()
	return "", nil
}

func setCommand(env *env, args []lang.Node) (string, error) {
	var device, key string
	if err := readArgs(args[:2], &device, &key); err != nil {
		return "", err
	}
	dev, err := env.device(device)
	if err != nil {
		return "", err
	}
	val := nodeValue(args[2])
	if val == nil {
		return "", fmt.Errorf("unsupported property type: %v", args[2])
	}
	return "", dev.Set(key, val)
}

func getCommand(env *env, args []lang.Node) (string, error) {
	var device, key string
	if err := readArgs(args, &device, &key); err != nil {
		return "", err
	}
	dev, err := env.device(device)
	if err != nil {
		return "", err
	}
	v, err := dev.Get(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", v), nil
}

func showCommand(env *env, args []lang.Node) (string, error) {
	var b strings.Builder
	renderState(&b, env)
	return strings.TrimRight(b.String(), "\n"), nil
}

func presetCommand(env *env, args []lang.Node) (string, error) {
	var device, name string
	if err := readArgs(args, &device, &name); err != nil {
		return "", err
	}
	dev, err := env.device(device)
	if err != nil {
		return "", err
	}
	if err := cv.LoadPreset(name, dev); err != nil {
		return "", fmt.Errorf("%w (have: %s)", err, strings.Join(cv.PresetNames(), ", "))
	}
	return "", nil
}

func saveCommand(env *env, args []lang.Node) (string, error) {
	path, err := patchPath(env, args)
	if err != nil {
		return "", err
	}
	if err := cv.SaveState(path, env.clock, env.channels, env.controller); err != nil {
		return "", err
	}
	return "saved " + path, nil
}

func loadCommand(env *env, args []lang.Node) (string, error) {
	path, err := patchPath(env, args)
	if err != nil {
		return "", err
	}
	if err := cv.LoadState(path, env.clock, env.channels, env.controller); err != nil {
		return "", err
	}
	return "loaded " + path, nil
}

func patchPath(env *env, args []lang.Node) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("want a single file argument, got %v", len(args))
	}
	if len(args) == 0 {
		return env.patchFile, nil
	}
	var path string
	if err := readArgs(args[:1], &path); err != nil {
		return "", err
	}
	return path, nil
}

func renderCommand(env *env, args []lang.Node) (string, error) {
	var device, file string
	var beats int
	if err := readArgs(args, &device, &beats, &file); err != nil {
		return "", err
	}
	dev, err := env.device(device)
	if err != nil {
		return "", err
	}
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := cv.Render(f, dev, env.clock.BPM(), beats); err != nil {
		return "", err
	}
	return "rendered " + file, nil
}

func helpCommand(env *env, args []lang.Node) (string, error) {
	var b strings.Builder
	for _, cmd := range commands {
		fmt.Fprintf(&b, "%-8s %s\n", cmd.name, cmd.help)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
