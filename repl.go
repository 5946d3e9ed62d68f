package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/modcv/workout/cv"
	"github.com/modcv/workout/lang"
)

type env struct {
	clock      *cv.MasterClock
	controller *cv.CVController
	channels   []*cv.Output
	sink       *cv.Sink
	devices    map[string]cv.Device
	patchFile  string
}

func (e *env) device(name string) (cv.Device, error) {
	dev, ok := e.devices[name]
	if !ok {
		return nil, fmt.Errorf("unknown device: %s", name)
	}
	return dev, nil
}

func (e *env) eval(input string) (string, error) {
	command, err := lang.Parse(input)
	if err != nil {
		return "", err
	}
	name := string(command.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity != variadic && len(command.Args) != cmd.arity {
			return "", fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(command.Args))
		}
		result, err := cmd.run(e, command.Args)
		if err != nil {
			return result, fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return result, nil
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

func repl(env *env) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return err
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if result, err := env.eval(line); err != nil {
			fmt.Println(err)
		} else if result != "" {
			fmt.Println(result)
		}
	}
}

// readArgs unpacks command arguments into the given slots, converting
// identifiers and quoted strings to string values.
func readArgs(args []lang.Node, slots ...interface{}) error {
	if len(args) != len(slots) {
		return errors.New("not enough arguments")
	}
	for n, arg := range args {
		dest := slots[n]
		switch p := dest.(type) {
		case *string:
			switch s := arg.(type) {
			case lang.String:
				*p = string(s)
			case lang.Identifier:
				*p = string(s)
			default:
				return fmt.Errorf("argument error: expected a string or identifier")
			}
		case *float64:
			switch v := arg.(type) {
			case lang.Float:
				*p = float64(v)
			case lang.Int:
				*p = float64(v)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		case *int:
			v, ok := arg.(lang.Int)
			if !ok {
				return fmt.Errorf("argument error: expected an integer")
			}
			*p = int(v)
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	return nil
}

// nodeValue converts a parsed argument to the value passed into the Device
// set contract. The identifiers true/false become booleans; no property
// label collides with them.
func nodeValue(arg lang.Node) interface{} {
	switch v := arg.(type) {
	case lang.Int:
		return int(v)
	case lang.Float:
		return float64(v)
	case lang.String:
		return string(v)
	case lang.Identifier:
		switch v {
		case "true":
			return true
		case "false":
			return false
		}
		return string(v)
	}
	return nil
}
