package netlist

import (
	"bufio"
	"strings"
)

// Component is one element card of a netlist: designator, node list, and the
// trailing value (or subcircuit model name for X cards).
type Component struct {
	Name  string   // full designator, e.g. "R1", "XU2"
	Kind  byte     // leading designator letter, upper case: R, C, L, V, I, X
	Nodes []string // node names in card order
	Value string   // component value or model name, verbatim
}

// Parse extracts the component cards from netlist text. The first line is
// the title card; "*" comment cards and "." directive cards are skipped and
// "+" continuation cards are folded into the preceding card, as simulators
// read them.
func Parse(text string) []Component {
	var cards []string
	sc := bufio.NewScanner(strings.NewReader(text))
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if first {
			first = false
			continue // title card
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "*") {
			continue
		}
		if strings.HasPrefix(trimmed, "+") && len(cards) > 0 {
			cards[len(cards)-1] += " " + strings.TrimSpace(trimmed[1:])
			continue
		}
		cards = append(cards, trimmed)
	}

	var comps []Component
	for _, card := range cards {
		if strings.HasPrefix(card, ".") {
			continue
		}
		fields := strings.Fields(card)
		if len(fields) < 3 {
			continue
		}
		name := fields[0]
		kind := name[0]
		if kind >= 'a' && kind <= 'z' {
			kind -= 'a' - 'A'
		}
		// Source cards carry function values such as PULSE(...) or
		// SINE(...) that span several fields.
		valueStart := len(fields) - 1
		for i := 1; i < len(fields); i++ {
			if strings.Contains(fields[i], "(") {
				valueStart = i
				break
			}
		}
		comps = append(comps, Component{
			Name:  name,
			Kind:  kind,
			Nodes: fields[1:valueStart],
			Value: strings.Join(fields[valueStart:], " "),
		})
	}
	return comps
}
