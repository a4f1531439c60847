package palette

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Palette table errors.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyName     = errors.New("empty color name")
	ErrNonNumeric    = errors.New("non-numeric channel value")
	ErrChannelRange  = errors.New("channel value out of range 0-255")
	ErrMalformed     = errors.New("malformed table")
)

// ResourceError reports a palette source that could not be loaded.
// Line is 0 when the failure is not tied to a row.
type ResourceError struct {
	Source string
	Line   int
	Err    error
}

func (e *ResourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("palette %s line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("palette %s: %v", e.Source, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Column headers, compared after trimming and lowercasing.
var (
	nameHeaders  = []string{"nearest color name", "color name", "color name", "name"}
	redHeaders   = []string{"red", "r"}
	greenHeaders = []string{"green", "g"}
	blueHeaders  = []string{"blue", "b"}
)

// LoadFile reads a palette table from a CSV file.
func LoadFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Source: path, Err: err}
	}
	defer f.Close()

	return Load(f, path)
}

// Load parses a CSV palette table with a header row. Columns are located by
// name; the name column is "Nearest Color Name" (or "Name"), channels are
// "Red", "Green" and "Blue". Other columns are ignored.
// Any bad row fails the whole load.
func Load(r io.Reader, source string) (*Palette, error) {
	// Strip a UTF-8 or UTF-16 byte order mark if present.
	r = transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ResourceError{Source: source, Err: fmt.Errorf("%w: no header row", ErrMalformed)}
	}
	if err != nil {
		return nil, wrapCSVError(source, err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, &ResourceError{Source: source, Line: 1, Err: err}
	}

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(source, err)
		}
		line, _ := cr.FieldPos(0)

		entry, err := parseRow(record, cols)
		if err != nil {
			return nil, &ResourceError{Source: source, Line: line, Err: err}
		}
		entries = append(entries, entry)
	}

	return New(source, entries...), nil
}

type columns struct {
	name, red, green, blue int
}

func locateColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	find := func(label string, aliases []string) (int, error) {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: %q", ErrMissingColumn, label)
	}

	var c columns
	var err error
	if c.name, err = find("Nearest Color Name", nameHeaders); err != nil {
		return c, err
	}
	if c.red, err = find("Red", redHeaders); err != nil {
		return c, err
	}
	if c.green, err = find("Green", greenHeaders); err != nil {
		return c, err
	}
	if c.blue, err = find("Blue", blueHeaders); err != nil {
		return c, err
	}
	return c, nil
}

func parseRow(record []string, c columns) (Entry, error) {
	name := strings.TrimSpace(record[c.name])
	if name == "" {
		return Entry{}, ErrEmptyName
	}

	r, err := parseChannel("Red", record[c.red])
	if err != nil {
		return Entry{}, err
	}
	g, err := parseChannel("Green", record[c.green])
	if err != nil {
		return Entry{}, err
	}
	b, err := parseChannel("Blue", record[c.blue])
	if err != nil {
		return Entry{}, err
	}

	return Entry{Name: name, R: r, G: g, B: b}, nil
}

func parseChannel(label, field string) (uint8, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s=%s", ErrChannelRange, label, strings.TrimSpace(field))
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrNonNumeric, label, field)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%w: %s=%d", ErrChannelRange, label, v)
	}
	return uint8(v), nil
}

func wrapCSVError(source string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ResourceError{Source: source, Line: perr.Line, Err: fmt.Errorf("%w: %v", ErrMalformed, perr.Err)}
	}
	return &ResourceError{Source: source, Err: err}
}
