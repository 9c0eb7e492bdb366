package netlist

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BuildOpAmp assembles the op-amp transient test bench. The subcircuit is
// instantiated as XU2 with the bench's fixed node order; model is the
// subcircuit name declared in the library file referenced by libPath.
//
// Identical inputs always produce byte-identical text. Component values are
// not range-checked; circuit validity is the simulator's problem.
func BuildOpAmp(p OpAmpParams, model, libPath string) string {
	lines := []string{
		"* op-amp transient test bench",
		"V4 VCC 0 12",
		"V5 -VCC 0 -12",
		fmt.Sprintf("R9 Vout N001 %s", FormatValue(p.R9)),
		fmt.Sprintf("XU2 N003 N001 VCC -VCC Vout %s", model),
		fmt.Sprintf("R3 Vout 0 %s", FormatValue(p.R3)),
		"V1 N002 0 PULSE(0 1 0 1n 1n 1u 2u)",
		fmt.Sprintf("R1 N003 N002 %s", FormatValue(p.R1)),
		fmt.Sprintf("C1 Vout N001 %s", FormatValue(p.C1)),
		fmt.Sprintf(".include %q", filepath.ToSlash(libPath)),
		fmt.Sprintf(".tran %s", FormatValue(p.Stop)),
		".end",
	}
	return strings.Join(lines, "\n") + "\n"
}

// BuildRC assembles the RC low-pass bench driven by a sine source. The
// transient step is fixed at a thousandth of the stop time.
func BuildRC(p RCParams) string {
	lines := []string{
		"* rc low-pass transient test bench",
		fmt.Sprintf("V1 in 0 SINE(0 %s %s)", FormatValue(p.Amplitude), FormatValue(p.Frequency)),
		fmt.Sprintf("R1 in out %s", FormatValue(p.R1)),
		fmt.Sprintf("C1 out 0 %s", FormatValue(p.C1)),
		fmt.Sprintf(".tran %s %s", FormatValue(p.Stop/1000), FormatValue(p.Stop)),
		".end",
	}
	return strings.Join(lines, "\n") + "\n"
}
