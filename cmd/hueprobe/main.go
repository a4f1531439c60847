// hueprobe names the color under a point in an image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/hueprobe/internal/config"
	"github.com/Faultbox/hueprobe/internal/imaging"
	"github.com/Faultbox/hueprobe/internal/logger"
	"github.com/Faultbox/hueprobe/pkg/match"
	"github.com/Faultbox/hueprobe/pkg/palette"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hueprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	flags := config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	args = fs.Args()

	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command, rest := args[0], args[1:]
	switch command {
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "pick", "match", "palette", "ls":
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	switch command {
	case "pick":
		err = cmdPick(cfg, rest, stdout, stderr)
	case "match":
		err = cmdMatch(cfg, rest, stdout, stderr)
	case "palette", "ls":
		err = cmdPalette(cfg, rest, stdout, stderr)
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Debug("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(stderr, "Error: %s\n", describe(err))
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `hueprobe - name the color under a point in an image

Usage:
  hueprobe [global flags] <command> [options]

Commands:
  pick [-n N] [-plain] <image> <x> <y>   Name the color at pixel x,y
  match [-n N] [-plain] <r> <g> <b>      Name an RGB color
  match [-n N] [-plain] <#rrggbb>        Name a hex color
  palette [pattern]                      List palette colors

Global flags:
  -config <file>     Config file (default ./hueprobe.yaml)
  -palette <file>    Palette CSV (Nearest Color Name, Red, Green, Blue)
  -builtin           Use the built-in SVG color names
  -max-width <px>    Shrink wider images to this width (0 = never)
  -log-file <file>   Also write logs to file
  -debug             Enable debug logging

Examples:
  hueprobe pick photo.jpg 120 45
  hueprobe -builtin match 0 128 130
  hueprobe match -n 5 "#ff7f50"
  hueprobe palette blue`)
}

// describe turns an error into a message for the person at the terminal.
func describe(err error) string {
	var decodeErr *imaging.DecodeError
	var resourceErr *palette.ResourceError

	switch {
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("could not load image %s: %v", decodeErr.Name, decodeErr.Err)
	case errors.As(err, &resourceErr):
		return fmt.Sprintf("could not load color table: %v", resourceErr)
	case errors.Is(err, match.ErrEmptyPalette):
		return "the color table has no entries"
	case errors.Is(err, match.ErrInvalidQuery):
		return fmt.Sprintf("color values must be between 0 and 255 (%v)", err)
	default:
		return err.Error()
	}
}
