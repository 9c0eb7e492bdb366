package analysis

import "fmt"

// VppResult holds a peak-to-peak measurement: the extreme values inside the
// window and the times at which they occur.
type VppResult struct {
	Vpp  float64
	TMax float64
	VMax float64
	TMin float64
	VMin float64
}

// Vpp measures the peak-to-peak excursion of a trace within the time window
// [lo, hi]. The bounds may be given in either order. An empty window is an
// error.
func Vpp(time, values []float64, lo, hi float64) (VppResult, error) {
	if len(time) != len(values) {
		return VppResult{}, fmt.Errorf("analysis: axis length %d != trace length %d", len(time), len(values))
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	found := false
	var res VppResult
	for i, t := range time {
		if t < lo || t > hi {
			continue
		}
		v := values[i]
		if !found {
			res = VppResult{TMax: t, VMax: v, TMin: t, VMin: v}
			found = true
			continue
		}
		if v > res.VMax {
			res.VMax, res.TMax = v, t
		}
		if v < res.VMin {
			res.VMin, res.TMin = v, t
		}
	}
	if !found {
		return VppResult{}, fmt.Errorf("analysis: no points in range [%g, %g]", lo, hi)
	}
	res.Vpp = res.VMax - res.VMin
	return res, nil
}
