package spicelib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// ErrNoSubcircuit is returned when a model file contains no subcircuit
// definition at all.
var ErrNoSubcircuit = errors.New("spicelib: no subcircuit definition found")

// Subcircuit describes one ".subckt" block of a model library.
type Subcircuit struct {
	Name  string   // declared name, verbatim
	Pins  []string // external pins in declared order
	Cards int      // number of body cards, nested definitions included
}

// Library is the result of reading a model file: the top-level subcircuit
// definitions in file order.
type Library struct {
	Subcircuits []Subcircuit
}

// First returns the first subcircuit definition in the file.
func (l *Library) First() Subcircuit {
	return l.Subcircuits[0]
}

// Find looks a subcircuit up by name, case-insensitively.
func (l *Library) Find(name string) (Subcircuit, bool) {
	for _, s := range l.Subcircuits {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Subcircuit{}, false
}

// Parser reads SPICE model library files (.lib/.sub/.mod).
type Parser struct {
	parser *participle.Parser[libFile]
}

// NewParser builds the participle parser for the library grammar.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[libFile](
		participle.Lexer(LibLexer),
		participle.Elide("Comment", "InlineComment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads a model library from a reader. It fails with ErrNoSubcircuit
// when the input holds no subcircuit definition; a partial result is never
// returned.
func (p *Parser) Parse(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return p.ParseString(string(data))
}

// ParseString parses model library text.
func (p *Parser) ParseString(input string) (*Library, error) {
	file, err := p.parser.ParseString("", joinContinuations(input))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	lib := &Library{}
	for _, item := range file.Items {
		if item.Subckt != nil {
			lib.Subcircuits = append(lib.Subcircuits, newSubcircuit(item.Subckt))
		}
	}
	if len(lib.Subcircuits) == 0 {
		return nil, ErrNoSubcircuit
	}
	return lib, nil
}

// ParseFile parses a model library from a file path.
func (p *Parser) ParseFile(filename string) (*Library, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

func newSubcircuit(def *subcktDef) Subcircuit {
	return Subcircuit{
		Name:  def.Name,
		Pins:  append([]string(nil), def.Pins...),
		Cards: countCards(def.Body),
	}
}

func countCards(items []*libItem) int {
	n := 0
	for _, item := range items {
		switch {
		case item.Card != nil:
			n++
		case item.Subckt != nil:
			n += 1 + countCards(item.Subckt.Body)
		}
	}
	return n
}

// joinContinuations folds "+" continuation cards into the preceding card,
// the way simulators read decks, so the grammar only ever sees whole cards.
// A trailing newline is guaranteed.
func joinContinuations(input string) string {
	var b strings.Builder
	sc := bufio.NewScanner(strings.NewReader(input))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	firstCard := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "+") && !firstCard {
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(trimmed[1:]))
			continue
		}
		if !firstCard {
			b.WriteString("\n")
		}
		firstCard = false
		b.WriteString(line)
	}
	b.WriteString("\n")
	return b.String()
}
