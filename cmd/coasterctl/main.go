// Command coasterctl builds, inspects, plots and rides roller coaster track
// files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/coaster/track"
	"github.com/npillmayer/coaster/trackfile"
	"github.com/npillmayer/coaster/trackplot"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("coaster.cmd")
}

var (
	configPath = flag.String("config", "", "YAML configuration file")
	samples    = flag.Int("samples", 400, "samples for plots")
	timestep   = flag.Float64("dt", 0.016, "time step for rides")
)

var errUsage = errors.New("usage")

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "coasterctl: %v\n", err)
		os.Exit(1)
	}
	command, args := flag.Arg(0), flag.Args()[1:]
	switch command {
	case "example":
		err = handleExample(cfg, args)
	case "info":
		err = handleInfo(cfg, args)
	case "plot":
		err = handlePlot(cfg, args)
	case "ride":
		err = handleRide(cfg, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if errors.Is(err, errUsage) {
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		tracer().Errorf("%s: %v", command, err)
		fmt.Fprintf(os.Stderr, "coasterctl %s: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`coasterctl - roller coaster track tool

Usage: coasterctl [flags] <command> [arguments]

Commands:
  example <out>                    Write a demo circuit to <out>
  info <file>                      Print pieces, boundaries and length
  plot <file> <plan> [profile]     Plot plan view and height profile (.png, .svg)
  ride <file> <steps>              Ride the track and print the car's position
  help                             Show this help message

Flags:`)
	flag.PrintDefaults()
}

func loadConfig() (track.Config, error) {
	if *configPath == "" {
		return track.DefaultConfig(), nil
	}
	return track.LoadConfigFile(*configPath)
}

func loadTrack(cfg track.Config, path string) (*track.Track, error) {
	tr := track.New(cfg, nil)
	if err := trackfile.LoadFile(tr, path); err != nil {
		return nil, err
	}
	return tr, nil
}

// demo is a closed circuit with banked turns and a hill.
var demo = []struct {
	tag  track.Tag
	roll float64
}{
	{track.Straight, 0},
	{track.RightTurn, -45},
	{track.Straight, 0},
	{track.RightTurn, -45},
	{track.Straight, 0},
	{track.RightTurn, -45},
	{track.ClimbUp, 0},
	{track.ClimbDown, 0},
	{track.CompleteTrack, 0},
}

func handleExample(cfg track.Config, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	tr := track.New(cfg, nil)
	for _, piece := range demo {
		if err := tr.AddTrackPiece(piece.tag); err != nil {
			return err
		}
		tr.Back().SetRollTarget(piece.roll)
	}
	if err := trackfile.SaveFile(args[0], tr); err != nil {
		return err
	}
	fmt.Printf("wrote %d pieces, length %.2f, to %s\n", tr.TrackPieceCount(), tr.TrackLength(), args[0])
	return nil
}

func handleInfo(cfg track.Config, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	tr, err := loadTrack(cfg, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("pieces: %d (max %d)\n", tr.TrackPieceCount(), tr.MaxTrackPieceCount())
	fmt.Printf("length: %.3f\n", tr.TrackLength())
	for i := 0; i < tr.TrackPieceCount(); i++ {
		p := tr.TrackPiece(i)
		b := p.Bounds()
		fmt.Printf("%3d  t=[%.4f, %.4f]  length=%8.3f  roll=%6.1f\n", i, b.T0, b.T1, p.Length(), p.RollTarget())
	}
	supports := tr.GenerateSupportStructures()
	fmt.Printf("supports: %d\n", len(supports))
	return nil
}

func handlePlot(cfg track.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errUsage
	}
	tr, err := loadTrack(cfg, args[0])
	if err != nil {
		return err
	}
	plan, err := trackplot.Plan(tr, *samples)
	if err != nil {
		return err
	}
	if err := trackplot.Save(plan, args[1], 8, 8); err != nil {
		return err
	}
	if len(args) == 3 {
		profile, err := trackplot.Profile(tr, *samples)
		if err != nil {
			return err
		}
		return trackplot.Save(profile, args[2], 12, 4)
	}
	return nil
}

func handleRide(cfg track.Config, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	steps, err := strconv.Atoi(args[1])
	if err != nil || steps < 0 {
		return fmt.Errorf("invalid step count %q", args[1])
	}
	tr, err := loadTrack(cfg, args[0])
	if err != nil {
		return err
	}
	rider := track.NewRider(tr)
	for i := 0; i < steps; i++ {
		rider.Step(*timestep)
		f := rider.Frame()
		fmt.Printf("%6d  d=%.5f  v=%.5f  pos=%v  roll=%6.1f\n",
			i, rider.Progress(), rider.Speed(), f.Centre.Zap(), f.Roll)
	}
	return nil
}
