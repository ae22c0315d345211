package grid

import "fmt"

// Triple is a per-axis parameter value. Callers with a single scalar use
// Uniform; callers with explicit per-axis values use PerAxis or TripleFrom.
type Triple [3]float64

// Uniform expands one scalar to all three axes.
func Uniform(v float64) Triple { return Triple{v, v, v} }

// PerAxis builds a triple from explicit per-axis values.
func PerAxis(x, y, z float64) Triple { return Triple{x, y, z} }

// TripleFrom converts a caller-supplied slice: one value is expanded to all
// axes, three values are taken per axis, anything else is rejected.
func TripleFrom(vals []float64) (Triple, error) {
	switch len(vals) {
	case 1:
		return Uniform(vals[0]), nil
	case 3:
		return PerAxis(vals[0], vals[1], vals[2]), nil
	default:
		return Triple{}, &InvalidParameterError{
			Param:  "triple",
			Reason: fmt.Sprintf("expected 1 or 3 values, got %d", len(vals)),
		}
	}
}

// VOI is a volume of interest: inclusive, zero-offset index bounds
// (imin, imax, jmin, jmax, kmin, kmax) into a grid's lattice.
type VOI [6]int

// VOIFrom converts a caller-supplied slice of exactly six bounds.
func VOIFrom(vals []int) (VOI, error) {
	if len(vals) != 6 {
		return VOI{}, &InvalidParameterError{
			Param:  "voi",
			Reason: fmt.Sprintf("expected 6 values, got %d", len(vals)),
		}
	}
	var v VOI
	copy(v[:], vals)
	return v, nil
}

// Validate checks the bounds against a lattice: each min must not exceed its
// max, and all indices must stay within [0, dim-1].
func (v VOI) Validate(dims [3]int) error {
	for axis := 0; axis < 3; axis++ {
		lo, hi := v[2*axis], v[2*axis+1]
		if lo > hi {
			return &InvalidParameterError{
				Param:  "voi",
				Reason: fmt.Sprintf("axis %d bounds inverted (%d > %d)", axis, lo, hi),
			}
		}
		if lo < 0 || hi > dims[axis]-1 {
			return &InvalidParameterError{
				Param:  "voi",
				Reason: fmt.Sprintf("axis %d bounds [%d, %d] outside lattice [0, %d]", axis, lo, hi, dims[axis]-1),
			}
		}
	}
	return nil
}

// WholeGrid returns the VOI covering an entire lattice.
func WholeGrid(dims [3]int) VOI {
	return VOI{0, dims[0] - 1, 0, dims[1] - 1, 0, dims[2] - 1}
}

// Rate is a per-axis subsampling stride. All entries must be positive.
type Rate [3]int

// RateFrom converts a caller-supplied slice: one value applies to all axes,
// three values apply per axis.
func RateFrom(vals []int) (Rate, error) {
	switch len(vals) {
	case 1:
		return Rate{vals[0], vals[0], vals[0]}, nil
	case 3:
		return Rate{vals[0], vals[1], vals[2]}, nil
	default:
		return Rate{}, &InvalidParameterError{
			Param:  "rate",
			Reason: fmt.Sprintf("expected 1 or 3 values, got %d", len(vals)),
		}
	}
}

// Validate rejects non-positive strides.
func (r Rate) Validate() error {
	for axis, v := range r {
		if v < 1 {
			return &InvalidParameterError{
				Param:  "rate",
				Reason: fmt.Sprintf("axis %d stride %d, want >= 1", axis, v),
			}
		}
	}
	return nil
}

func (r Rate) isZero() bool { return r == Rate{} }
