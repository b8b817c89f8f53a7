package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrShortRow is reported when a data row has fewer fields than the schema needs.
var ErrShortRow = errors.New("row has too few fields")

// maxLineBytes bounds a single raw line.
const maxLineBytes = 1 << 20

// LoadError describes why a player file could not be loaded.
type LoadError struct {
	Path string
	Line int // 1-based; 0 when the failure is not tied to a line
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Record is one player row.
type Record struct {
	AttackWins      uint64
	DefenseWins     uint64
	Donations       uint64
	BuilderTrophies uint64
	Trophies        uint64
}

// Table is the ordered result of loading a player file.
type Table struct {
	Name    string
	Records []Record
	// Defaulted counts selected cells that did not parse and were read as 0.
	Defaulted int
}

// LoadFile reads the player file at path using schema.
func LoadFile(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("open csv: %w", err)}
	}
	defer f.Close()
	t, err := Read(f, path, schema)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// Read parses comma-delimited player rows from r. The first line is a header
// and is skipped without inspection. Each following line is split on every
// comma; quotes carry no meaning. name is only used in errors.
func Read(r io.Reader, name string, schema Schema) (*Table, error) {
	if err := schema.Validate(); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	t := &Table{Name: name}
	need := schema.MinFields()
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue
		}
		fields := strings.Split(strings.TrimSuffix(sc.Text(), "\r"), ",")
		if len(fields) < need {
			return nil, &LoadError{
				Path: name,
				Line: line,
				Err:  fmt.Errorf("%w: got %d, need %d", ErrShortRow, len(fields), need),
			}
		}
		cell := func(idx int) uint64 {
			n, ok := parseCount(fields[idx])
			if !ok {
				t.Defaulted++
			}
			return n
		}
		t.Records = append(t.Records, Record{
			AttackWins:      cell(schema.AttackWins),
			DefenseWins:     cell(schema.DefenseWins),
			Donations:       cell(schema.Donations),
			BuilderTrophies: cell(schema.BuilderTrophies),
			Trophies:        cell(schema.Trophies),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Path: name, Line: line + 1, Err: fmt.Errorf("read line: %w", err)}
	}
	log.Debug().
		Str("file", name).
		Int("records", len(t.Records)).
		Int("defaulted", t.Defaulted).
		Msg("player records loaded")
	return t, nil
}
