package analysis

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Point is one bin of a magnitude spectrum.
type Point struct {
	Frequency float64 // Hz
	Magnitude float64
}

// Spectrum computes the one-sided magnitude spectrum of uniformly sampled
// data with sample interval dt. Magnitudes are normalized by the sequence
// length, and non-DC bins are doubled so a unit sine yields a unit peak.
func Spectrum(samples []float64, dt float64) ([]Point, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 samples, have %d", len(samples))
	}
	if dt <= 0 {
		return nil, fmt.Errorf("analysis: non-positive sample interval %g", dt)
	}

	fft := fourier.NewFFT(len(samples))
	coeffs := fft.Coefficients(nil, samples)

	n := float64(len(samples))
	points := make([]Point, len(coeffs))
	for i, c := range coeffs {
		mag := cmplx.Abs(c) / n
		if i > 0 && i < len(coeffs)-1 {
			mag *= 2 // one-sided spectrum
		}
		points[i] = Point{
			Frequency: fft.Freq(i) / dt,
			Magnitude: mag,
		}
	}
	return points, nil
}

// PeakFrequency returns the frequency of the largest non-DC magnitude bin.
func PeakFrequency(points []Point) float64 {
	best := 0.0
	bestMag := -1.0
	for _, p := range points {
		if p.Frequency == 0 {
			continue
		}
		if p.Magnitude > bestMag {
			bestMag = p.Magnitude
			best = p.Frequency
		}
	}
	return best
}

// BinWidth reports the frequency spacing of a spectrum.
func BinWidth(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	return points[1].Frequency - points[0].Frequency
}

// Resample interpolates variable-step transient output onto a uniform grid
// of n points spanning the time axis, returning the resampled values and
// the resulting sample interval. Transient solvers take irregular steps, so
// this runs before Spectrum.
func Resample(time, values []float64, n int) ([]float64, float64, error) {
	if len(time) != len(values) {
		return nil, 0, fmt.Errorf("analysis: axis length %d != trace length %d", len(time), len(values))
	}
	if len(time) < 2 {
		return nil, 0, fmt.Errorf("analysis: need at least 2 samples, have %d", len(time))
	}
	if n < 2 {
		return nil, 0, fmt.Errorf("analysis: need at least 2 output points, asked for %d", n)
	}

	span := time[len(time)-1] - time[0]
	if span <= 0 {
		return nil, 0, fmt.Errorf("analysis: non-increasing time axis")
	}
	dt := span / float64(n-1)

	out := make([]float64, n)
	j := 0
	for i := 0; i < n; i++ {
		t := time[0] + float64(i)*dt
		for j < len(time)-2 && time[j+1] < t {
			j++
		}
		t0, t1 := time[j], time[j+1]
		v0, v1 := values[j], values[j+1]
		if t1 == t0 {
			out[i] = v0
			continue
		}
		frac := (t - t0) / (t1 - t0)
		if frac < 0 {
			frac = 0
		} else if frac > 1 {
			frac = 1
		}
		out[i] = v0 + frac*(v1-v0)
	}
	return out, dt, nil
}
