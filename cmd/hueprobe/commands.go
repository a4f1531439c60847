package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/hueprobe/internal/config"
	"github.com/Faultbox/hueprobe/internal/detect"
	"github.com/Faultbox/hueprobe/pkg/match"
)

var errUsage = errors.New("usage")

func cmdPick(cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 1, "Show the N nearest colors")
	plain := fs.Bool("plain", false, "Do not print a color swatch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 3 {
		return fmt.Errorf("%w: hueprobe pick <image> <x> <y>", errUsage)
	}
	x, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid x coordinate %q", fs.Arg(1))
	}
	y, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		return fmt.Errorf("invalid y coordinate %q", fs.Arg(2))
	}

	d, err := detect.New(cfg)
	if err != nil {
		return err
	}

	report, err := d.PickFile(fs.Arg(0), image.Point{X: x, Y: y})
	if err != nil {
		return err
	}

	if report.Clamped() {
		fmt.Fprintf(stdout, "Point:  %v clamped to %v (image is %dx%d)\n",
			report.Requested, report.Point, report.Size.X, report.Size.Y)
	}
	printDetected(stdout, report.Query, report.Result, !*plain)

	if *n > 1 {
		nearest, err := d.Nearest(report.Query, *n)
		if err != nil {
			return err
		}
		printNearest(stdout, nearest)
	}
	return nil
}

func cmdMatch(cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 1, "Show the N nearest colors")
	plain := fs.Bool("plain", false, "Do not print a color swatch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q, err := parseQuery(fs.Args())
	if err != nil {
		return err
	}

	d, err := detect.New(cfg)
	if err != nil {
		return err
	}

	nearest, err := d.Nearest(q, max(*n, 1))
	if err != nil {
		return err
	}

	printDetected(stdout, q, nearest[0], !*plain)
	if *n > 1 {
		printNearest(stdout, nearest)
	}
	return nil
}

func cmdPalette(cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	d, err := detect.New(cfg)
	if err != nil {
		return err
	}
	p := d.Palette()

	pattern := ""
	if len(args) > 0 {
		pattern = strings.ToLower(args[0])
	}

	count := 0
	for _, e := range p.Entries() {
		if pattern != "" && !strings.Contains(strings.ToLower(e.Name), pattern) {
			continue
		}
		fmt.Fprintf(stdout, "%-24s %3d %3d %3d\n", e.Name, e.R, e.G, e.B)
		count++
	}

	fmt.Fprintf(stderr, "\n%s: %d of %d colors (checksum %016x)\n", p.Source(), count, p.Len(), p.Checksum())
	return nil
}

// parseQuery accepts either three channel values or a single hex color.
func parseQuery(args []string) (match.Query, error) {
	switch len(args) {
	case 1:
		hex := args[0]
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return match.Query{}, fmt.Errorf("invalid hex color %q", args[0])
		}
		r, g, b := c.RGB255()
		return match.Query{R: int(r), G: int(g), B: int(b)}, nil
	case 3:
		var ch [3]int
		for i, s := range args {
			v, err := strconv.Atoi(s)
			if err != nil {
				return match.Query{}, fmt.Errorf("invalid channel value %q", s)
			}
			ch[i] = v
		}
		q := match.Query{R: ch[0], G: ch[1], B: ch[2]}
		return q, q.Validate()
	default:
		return match.Query{}, fmt.Errorf("%w: hueprobe match <r> <g> <b> | <#rrggbb>", errUsage)
	}
}

func printDetected(w io.Writer, q match.Query, res match.Result, swatch bool) {
	fmt.Fprintf(w, "Detected Color: %s\n", res.Name)
	fmt.Fprintf(w, "RGB:    %s\n", q)
	fmt.Fprintf(w, "Match:  %s %s\n", res, res.Hex())
	if swatch {
		fmt.Fprintf(w, "        %s pixel  %s match\n",
			block(uint8(q.R), uint8(q.G), uint8(q.B)), block(res.R, res.G, res.B))
	}
}

func printNearest(w io.Writer, nearest []match.Result) {
	fmt.Fprintln(w, "\nNearest:")
	for i, r := range nearest {
		fmt.Fprintf(w, "  %2d. %-24s %-16s %s  d²=%.0f\n", i+1, r.Name, r.String(), r.Hex(), r.Distance)
	}
}

// block renders a truecolor swatch.
func block(r, g, b uint8) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm      \x1b[0m", r, g, b)
}
