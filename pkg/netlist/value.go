package netlist

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Engineering suffixes accepted by SPICE-class simulators. "meg" must be
// matched before "m" when parsing.
var unitScale = []struct {
	Suffix string
	Exp    int
}{
	{"T", 12},
	{"G", 9},
	{"meg", 6},
	{"k", 3},
	{"m", -3},
	{"u", -6},
	{"n", -9},
	{"p", -12},
	{"f", -15},
}

// FormatValue renders a component value with the largest engineering suffix
// that keeps the mantissa in [1, 1000). The output is stable for identical
// inputs, which keeps generated netlists byte-identical across runs.
func FormatValue(v float64) string {
	if v == 0 {
		return "0"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v >= 1 && v < 1000 {
		return sign + trimFloat(v)
	}
	for _, u := range unitScale {
		scaled := v / math.Pow10(u.Exp)
		if scaled >= 1 && scaled < 1000 {
			return sign + trimFloat(scaled) + u.Suffix
		}
	}
	return sign + strconv.FormatFloat(v, 'g', -1, 64)
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// ParseValue converts a SPICE value string such as "1k", "5p" or "2.2meg"
// back to a float64. Suffix matching is case-insensitive; trailing unit
// letters after the scale suffix (e.g. "10uF") are ignored, as simulators do.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("netlist: empty value")
	}
	end := len(s)
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '+' || r == '-' || r == 'e' || r == 'E' {
			// 'e'/'E' is only part of the number when followed by a digit or sign
			if r == 'e' || r == 'E' {
				if i+1 >= len(s) || !isExpTail(s[i+1]) {
					end = i
					break
				}
			}
			continue
		}
		end = i
		break
	}
	mantissa := s[:end]
	rest := strings.ToLower(s[end:])

	exp := 0
	switch {
	case rest == "":
		// No scale suffix.
	case strings.HasPrefix(rest, "meg"):
		exp = 6
	default:
		for _, u := range unitScale {
			if u.Suffix == "meg" {
				continue
			}
			if strings.HasPrefix(rest, strings.ToLower(u.Suffix)) {
				exp = u.Exp
				break
			}
		}
		// No match means a bare unit such as "F" or "Ohm".
	}

	v, err := scaleDecimal(mantissa, exp)
	if err != nil {
		return 0, fmt.Errorf("netlist: bad value %q: %w", s, err)
	}
	return v, nil
}

// scaleDecimal applies a power-of-ten exponent while the value is still
// decimal text, so "10u" parses to exactly 1e-5 instead of the product of
// two separately rounded floats.
func scaleDecimal(mantissa string, exp int) (float64, error) {
	if exp == 0 {
		return strconv.ParseFloat(mantissa, 64)
	}
	base := mantissa
	if i := strings.IndexAny(mantissa, "eE"); i >= 0 {
		e, err := strconv.Atoi(mantissa[i+1:])
		if err != nil {
			return 0, err
		}
		base = mantissa[:i]
		exp += e
	}
	return strconv.ParseFloat(base + "e" + strconv.Itoa(exp), 64)
}

func isExpTail(b byte) bool {
	return (b >= '0' && b <= '9') || b == '+' || b == '-'
}
