package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/modcv/workout/cv"
)

const numChannels = 6

// Analog input poll interval. Parameter edits driven by the CV input are
// rate-limited to this.
const pollInterval = 50 * time.Millisecond

func main() {
	var (
		bpm       = flag.Int("bpm", 120, "initial master clock tempo")
		patchFile = flag.String("patch", "patch.json", "patch file for save/load")
		runFile   = flag.String("run", "", "file with commands to run on startup")
	)
	flag.Parse()

	sink, err := cv.NewSink(numChannels)
	if err != nil {
		log.Fatal(err)
	}
	defer sink.Stop()

	channels := make([]*cv.Output, numChannels)
	devices := make(map[string]cv.Device)
	for i := range channels {
		jack, err := sink.Channel(i)
		if err != nil {
			log.Fatal(err)
		}
		channels[i] = cv.NewOutput(cv.NewProps(), jack)
		devices[fmt.Sprintf("cv%d", i+1)] = channels[i]
	}
	clock := cv.NewMasterClock(cv.NewProps(), *bpm, channels)
	controller := cv.NewCVController(cv.NewProps(), sink, clock, channels)
	devices["clock"] = clock
	devices["ain"] = controller

	env := &env{
		clock:      clock,
		controller: controller,
		channels:   channels,
		sink:       sink,
		devices:    devices,
		patchFile:  *patchFile,
	}

	if _, err := os.Stat(*patchFile); err == nil {
		if err := cv.LoadState(*patchFile, clock, channels, controller); err != nil {
			log.Fatal(err)
		}
	}

	if err := sink.Start(); err != nil {
		log.Fatal(err)
	}

	if *runFile != "" {
		if err := runCommands(env, *runFile); err != nil {
			log.Fatal(err)
		}
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error { return poll(ctx, controller) })
	g.Go(func() error { return repl(env) })

	err = g.Wait()
	clock.Stop()
	if err != nil && err != io.EOF && err != context.Canceled {
		fmt.Println(err)
		os.Exit(1)
	}
}

// poll runs the analog-input mapping loop in the main execution context,
// interleaved with REPL edits.
func poll(ctx context.Context, controller *cv.CVController) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			controller.ReadAndApply()
		}
	}
}

func runCommands(env *env, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := env.eval(line); err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
	}
	return scanner.Err()
}
