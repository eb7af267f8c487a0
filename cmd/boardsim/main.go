// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command boardsim runs an STM32L432KC board with a buzzer. The
// microcontroller is replaced by a square wave generator on the buzzer pin.
//
//	boardsim -pin PB3 -tone 1000 -type tone -audio oto
//
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/audio"
	"github.com/db47h/boardsim/audio/otoout"
	"github.com/db47h/boardsim/audio/paout"
	"github.com/db47h/boardsim/audio/wavout"
	"github.com/db47h/boardsim/boards"
	"github.com/db47h/boardsim/emulator"
	"github.com/db47h/boardsim/parts"
	"github.com/db47h/boardsim/scope"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	clock    = flag.Float64("clock", 16, "instruction clock `MHz`")
	window   = flag.Duration("window", boardsim.DefaultWindow, "analog estimation window")
	pin      = flag.String("pin", "PB3", "buzzer pin")
	tone     = flag.Float64("tone", 1000, "tone frequency on the buzzer pin, in Hz")
	duty     = flag.Float64("duty", 0.5, "duty cycle of the tone")
	typ      = flag.String("type", "tone", "buzzer type: active, passive or tone")
	low      = flag.Bool("low", false, "buzzer input is active low")
	output   = flag.String("audio", "null", "audio output: null, wav, oto or portaudio")
	wavFile  = flag.String("wav", "boardsim.wav", "output file for -audio wav")
	rate     = flag.Int("samplerate", audio.DefaultSampleRate, "audio sample rate")
	prefs    = flag.String("prefs", "", "preferences file, loaded at start and saved on exit")
	duration = flag.Duration("duration", 0, "simulated duration, 0 to run until interrupted")
	fast     = flag.Bool("fast", false, "run as fast as possible instead of in real time")
	trace    = flag.Int("scope", 0, "print the last `n` samples of the buzzer pin on exit")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if err := run(); err != nil && errors.Cause(err) != context.Canceled {
		glog.Error(err)
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

func parseType(s string) (parts.BuzzerType, error) {
	for _, t := range []parts.BuzzerType{parts.Active, parts.Passive, parts.Tone} {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown buzzer type %q", s)
}

func run() error {
	bt, err := parseType(*typ)
	if err != nil {
		return err
	}

	mixer := audio.NewMixer(*rate)
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				glog.Error(err)
			}
		}
	}()

	p := boardsim.NewBus(boards.L432KCPins...).Lookup(*pin)
	if p == boardsim.NC {
		return errors.Wrapf(boardsim.ErrInvalidPin, "no pin %q on the board", *pin)
	}
	gen := emulator.New(len(boards.L432KCPins), *clock*1e6)
	opts := []boardsim.Option{boardsim.WithWindow(*window)}
	var sc *scope.Scope
	if *trace > 0 {
		if sc, err = scope.New(*trace, p); err != nil {
			return err
		}
		opts = append(opts, boardsim.WithObserver(sc))
	}
	board, err := boards.NewL432KC(gen, opts...)
	if err != nil {
		return err
	}

	part, err := board.Mount(parts.BuzzerSpec(mixer), "in="+*pin)
	if err != nil {
		return err
	}
	bz := part.(*parts.Buzzer)
	bz.SetActiveHigh(!*low)
	if err = bz.ChangeType(bt); err != nil {
		return err
	}

	switch *output {
	case "null":
	case "wav":
		f, err := os.Create(*wavFile)
		if err != nil {
			return errors.Wrap(err, "create wav file")
		}
		closers = append(closers, f)
		rec := wavout.New(f, mixer, *window)
		board.Attach("WAV", rec)
		closers = append(closers, rec)
	case "oto":
		pl, err := otoout.New(mixer)
		if err != nil {
			return err
		}
		closers = append(closers, pl)
	case "portaudio":
		st, err := paout.New(mixer)
		if err != nil {
			return err
		}
		closers = append(closers, st)
	default:
		return errors.Errorf("unknown audio output %q", *output)
	}

	if *prefs != "" {
		if err = loadPrefs(board.Board, *prefs); err != nil {
			return err
		}
		defer func() {
			if err := savePrefs(board.Board, *prefs); err != nil {
				glog.Error(err)
			}
		}()
	}

	if err = gen.Drive(bz.In, *tone, *duty); err != nil {
		return err
	}
	glog.Infof("%s: %.1f MHz, window %v, buzzer %s on %s", board.Config().Name,
		gen.InstructionClockFrequency()/1e6, *window, bz.Type(), board.Bus().Name(bz.In))

	defer func() {
		if sc != nil {
			fmt.Print(sc)
		}
	}()

	if *fast {
		return runFast(board.Board)
	}
	return runRealTime(board.Board)
}

func runFast(b *boardsim.Board) error {
	if *duration <= 0 {
		return errors.New("-fast needs a -duration")
	}
	start := time.Now()
	b.AdvanceBy(uint64(*duration))
	glog.Infof("simulated %v in %v (%d instructions)", *duration, time.Since(start), b.Context().Instructions())
	return nil
}

func runRealTime(b *boardsim.Board) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(ctx, 0)
	})
	g.Go(func() error {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				glog.V(1).Infof("windows %d, instructions %d", b.Context().Windows(), b.Context().Instructions())
			}
		}
	})
	err := g.Wait()
	if err == context.DeadlineExceeded || err == context.Canceled {
		return nil
	}
	return err
}

func loadPrefs(b *boardsim.Board, name string) error {
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "open preferences")
	}
	defer f.Close()
	return b.ReadPreferences(f)
}

func savePrefs(b *boardsim.Board, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create preferences")
	}
	if err = b.WritePreferences(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
