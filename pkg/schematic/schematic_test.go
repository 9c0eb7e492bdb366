package schematic

import (
	"strings"
	"testing"

	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
)

func TestRenderEachComponentOnce(t *testing.T) {
	text := netlist.BuildOpAmp(netlist.DefaultOpAmpParams(), "LM7171", "lm7171.lib")
	out, err := RenderNetlist(text)
	if err != nil {
		t.Fatalf("RenderNetlist: %v", err)
	}
	doc := string(out)

	if !strings.HasPrefix(doc, "<?xml") {
		t.Errorf("output is not an SVG document: %.40q", doc)
	}

	for _, name := range []string{"V4", "V5", "V1", "R1", "R3", "R9", "C1", "XU2"} {
		want := ">" + name + "<"
		if got := strings.Count(doc, want); got != 1 {
			t.Errorf("component %s appears %d times, want exactly once", name, got)
		}
	}
}

func TestRenderValuesLabelled(t *testing.T) {
	text := netlist.BuildRC(netlist.DefaultRCParams())
	out, err := RenderNetlist(text)
	if err != nil {
		t.Fatalf("RenderNetlist: %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, "1k") {
		t.Errorf("resistor value label missing")
	}
	if !strings.Contains(doc, "1u") {
		t.Errorf("capacitor value label missing")
	}
}

func TestRenderEmpty(t *testing.T) {
	if _, err := RenderNetlist("* title only\n.end\n"); err == nil {
		t.Errorf("component-free netlist should be an error")
	}
}
