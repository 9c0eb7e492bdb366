package netlist

// OpAmpParams holds the adjustable values of the op-amp test bench. The
// record is passed by value; once handed to a builder it is never mutated.
type OpAmpParams struct {
	R9   float64 // gain resistor, ohms
	R1   float64 // input resistor, ohms
	R3   float64 // load resistor, ohms
	C1   float64 // feedback capacitor, farads
	Stop float64 // transient stop time, seconds
}

// DefaultOpAmpParams mirrors the values of the reference bench.
func DefaultOpAmpParams() OpAmpParams {
	return OpAmpParams{
		R9:   1e3,
		R1:   500,
		R3:   1e3,
		C1:   5e-12,
		Stop: 5e-6,
	}
}

// RCParams holds the adjustable values of the RC low-pass bench.
type RCParams struct {
	R1        float64 // series resistor, ohms
	C1        float64 // shunt capacitor, farads
	Amplitude float64 // source amplitude, volts
	Frequency float64 // source frequency, hertz
	Stop      float64 // transient stop time, seconds
}

// DefaultRCParams returns a 1k/1uF divider driven by a 1V 1kHz sine.
func DefaultRCParams() RCParams {
	return RCParams{
		R1:        1e3,
		C1:        1e-6,
		Amplitude: 1,
		Frequency: 1e3,
		Stop:      10e-3,
	}
}
