package analysis

import (
	"math"
	"testing"
)

func TestSpectrumSinePeak(t *testing.T) {
	// 1 kHz sine sampled at 1 MHz over 2 ms, so the tone sits exactly on
	// a bin and the normalized peak stays near 1.
	const (
		freq = 1e3
		dt   = 1e-6
		n    = 2000
	)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	points, err := Spectrum(samples, dt)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}

	peak := PeakFrequency(points)
	bin := BinWidth(points)
	if math.Abs(peak-freq) > bin {
		t.Errorf("peak at %g Hz, want %g Hz +- %g Hz", peak, freq, bin)
	}

	// Unit sine, maximum magnitude close to 1 after normalization.
	var maxMag float64
	for _, p := range points {
		if p.Magnitude > maxMag {
			maxMag = p.Magnitude
		}
	}
	if maxMag < 0.8 || maxMag > 1.2 {
		t.Errorf("peak magnitude %g, want about 1", maxMag)
	}
}

func TestSpectrumErrors(t *testing.T) {
	if _, err := Spectrum([]float64{1}, 1e-6); err == nil {
		t.Errorf("single sample should be an error")
	}
	if _, err := Spectrum([]float64{1, 2}, 0); err == nil {
		t.Errorf("zero interval should be an error")
	}
}

func TestResampleUniform(t *testing.T) {
	// Irregular time steps over a straight line; linear interpolation must
	// reproduce the line exactly.
	time := []float64{0, 0.1, 0.15, 0.4, 1.0}
	values := make([]float64, len(time))
	for i, ts := range time {
		values[i] = 2 * ts
	}

	out, dt, err := Resample(time, values, 11)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if math.Abs(dt-0.1) > 1e-12 {
		t.Errorf("dt = %g, want 0.1", dt)
	}
	for i, v := range out {
		want := 2 * float64(i) * dt
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("out[%d] = %g, want %g", i, v, want)
		}
	}
}

func TestResampleErrors(t *testing.T) {
	if _, _, err := Resample([]float64{0, 1}, []float64{0}, 4); err == nil {
		t.Errorf("length mismatch should be an error")
	}
	if _, _, err := Resample([]float64{1, 1}, []float64{0, 0}, 4); err == nil {
		t.Errorf("zero-span axis should be an error")
	}
}

func TestVpp(t *testing.T) {
	time := []float64{0, 1, 2, 3, 4, 5}
	values := []float64{0, 3, -2, 1, 5, -1}

	res, err := Vpp(time, values, 0, 3)
	if err != nil {
		t.Fatalf("Vpp: %v", err)
	}
	if res.Vpp != 5 {
		t.Errorf("Vpp = %g, want 5", res.Vpp)
	}
	if res.VMax != 3 || res.TMax != 1 {
		t.Errorf("max = %g at %g, want 3 at 1", res.VMax, res.TMax)
	}
	if res.VMin != -2 || res.TMin != 2 {
		t.Errorf("min = %g at %g, want -2 at 2", res.VMin, res.TMin)
	}

	// Reversed bounds behave the same.
	rev, err := Vpp(time, values, 3, 0)
	if err != nil {
		t.Fatalf("Vpp reversed: %v", err)
	}
	if rev != res {
		t.Errorf("reversed bounds gave %+v, want %+v", rev, res)
	}
}

func TestVppEmptyWindow(t *testing.T) {
	if _, err := Vpp([]float64{0, 1}, []float64{0, 1}, 5, 6); err == nil {
		t.Errorf("empty window should be an error")
	}
}
