package rawfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrTraceNotFound is returned when a named trace is absent from the file.
var ErrTraceNotFound = errors.New("rawfile: trace not found")

// Variable is one entry of the rawfile's variable table.
type Variable struct {
	Index int
	Name  string
	Kind  string // "time", "voltage", "current", ...
}

// RawFile holds a parsed simulator waveform file: the header metadata, the
// variable table, and one sample sequence per variable.
type RawFile struct {
	Title    string
	Plotname string
	Flags    []string

	Variables []Variable

	points int
	data   [][]float64 // indexed by variable, then point
}

// Read parses the rawfile at path. The format is the ngspice/LTspice
// lineage: an ASCII header terminated by a "Binary:" or "Values:" card,
// followed by the sample data. Binary data is packed little-endian float64,
// one value per variable per point.
func Read(path string) (*RawFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rawfile: %w", err)
	}
	defer f.Close()

	return ReadFrom(bufio.NewReader(f))
}

// ReadFrom parses rawfile content from a reader.
func ReadFrom(r *bufio.Reader) (*RawFile, error) {
	rf := &RawFile{points: -1}
	nVars := -1
	var mode string

header:
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil, fmt.Errorf("rawfile: truncated header")
		} else if err != nil && err != io.EOF {
			return nil, fmt.Errorf("rawfile: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")

		key, value, _ := strings.Cut(line, ":")
		switch strings.TrimSpace(key) {
		case "Title":
			rf.Title = strings.TrimSpace(value)
		case "Plotname":
			rf.Plotname = strings.TrimSpace(value)
		case "Flags":
			rf.Flags = strings.Fields(value)
		case "No. Variables":
			nVars, err = strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("rawfile: bad variable count %q", value)
			}
		case "No. Points":
			rf.points, err = strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("rawfile: bad point count %q", value)
			}
		case "Variables":
			if nVars < 0 {
				return nil, fmt.Errorf("rawfile: variable table before count")
			}
			if err := rf.readVariableTable(r, nVars); err != nil {
				return nil, err
			}
		case "Binary", "Values":
			mode = strings.TrimSpace(key)
			break header
		}
	}

	if len(rf.Variables) == 0 {
		return nil, fmt.Errorf("rawfile: no variable table")
	}
	if rf.points < 0 {
		return nil, fmt.Errorf("rawfile: missing point count")
	}
	for _, f := range rf.Flags {
		if strings.EqualFold(f, "complex") {
			return nil, fmt.Errorf("rawfile: complex data not supported")
		}
	}

	rf.data = make([][]float64, len(rf.Variables))
	for i := range rf.data {
		rf.data[i] = make([]float64, rf.points)
	}

	var err error
	switch mode {
	case "Binary":
		err = rf.readBinary(r)
	case "Values":
		err = rf.readValues(r)
	default:
		err = fmt.Errorf("rawfile: no data section")
	}
	if err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *RawFile) readVariableTable(r *bufio.Reader, nVars int) error {
	for i := 0; i < nVars; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return fmt.Errorf("rawfile: truncated variable table")
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("rawfile: malformed variable entry %q", strings.TrimSpace(line))
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil || idx != i {
			return fmt.Errorf("rawfile: variable index %q out of order", fields[0])
		}
		rf.Variables = append(rf.Variables, Variable{Index: idx, Name: fields[1], Kind: fields[2]})
	}
	return nil
}

func (rf *RawFile) readBinary(r *bufio.Reader) error {
	buf := make([]byte, 8)
	for p := 0; p < rf.points; p++ {
		for v := range rf.Variables {
			if _, err := io.ReadFull(r, buf); err != nil {
				return fmt.Errorf("rawfile: truncated binary data at point %d: %w", p, err)
			}
			rf.data[v][p] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
		}
	}
	return nil
}

func (rf *RawFile) readValues(r *bufio.Reader) error {
	var fields []string
	for p := 0; p < rf.points; p++ {
		for v := range rf.Variables {
			for len(fields) == 0 {
				line, err := r.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("rawfile: truncated values at point %d", p)
				}
				fields = strings.Fields(line)
				if v == 0 && len(fields) > 0 {
					// Each point starts with its index.
					fields = fields[1:]
				}
			}
			val, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return fmt.Errorf("rawfile: bad sample %q: %w", fields[0], err)
			}
			fields = fields[1:]
			rf.data[v][p] = val
		}
	}
	return nil
}

// Points reports the number of samples per trace.
func (rf *RawFile) Points() int { return rf.points }

// TraceNames returns the variable names in file order.
func (rf *RawFile) TraceNames() []string {
	names := make([]string, len(rf.Variables))
	for i, v := range rf.Variables {
		names[i] = v.Name
	}
	return names
}

// Trace returns the sample sequence of the named variable. The lookup is
// case-insensitive, matching simulator conventions ("V(vout)" == "v(vout)").
func (rf *RawFile) Trace(name string) ([]float64, error) {
	for i, v := range rf.Variables {
		if strings.EqualFold(v.Name, name) {
			return rf.data[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q (have %s)", ErrTraceNotFound, name, strings.Join(rf.TraceNames(), ", "))
}

// Time returns the shared time axis: the variable named "time", falling
// back to the first variable as simulators order the scale first.
func (rf *RawFile) Time() ([]float64, error) {
	if t, err := rf.Trace("time"); err == nil {
		return t, nil
	}
	if len(rf.data) > 0 {
		return rf.data[0], nil
	}
	return nil, fmt.Errorf("rawfile: no time axis")
}
