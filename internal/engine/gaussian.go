package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ProgressFunc receives advisory progress events during algorithm execution.
// The label describes the running operation; fraction is in [0, 1]. Calls are
// synchronous on the executing goroutine and must not block for long.
type ProgressFunc func(label string, fraction float64)

// GaussianSmooth convolves one scalar array of an image with a separable
// Gaussian kernel. The kernel on each axis is truncated at
// RadiusFactors[axis] * StdDevs[axis] samples and renormalised where it
// overhangs the dataset boundary, so constant fields pass through unchanged.
// An axis with a non-positive standard deviation or a truncation radius below
// one sample is skipped.
type GaussianSmooth struct {
	RadiusFactors [3]float64
	StdDevs       [3]float64

	// ArrayName and Association select the array to convolve. Only point and
	// cell associations are meaningful; field arrays have no lattice shape.
	ArrayName   string
	Association Association

	// Progress, when set, is invoked after each axis pass.
	Progress ProgressFunc

	input  *Image
	output *Image
}

// SetInput configures the source image. The input is never modified.
func (a *GaussianSmooth) SetInput(im *Image) { a.input = im }

// Output returns the result image, or nil before a successful Execute.
func (a *GaussianSmooth) Output() *Image { return a.output }

// Execute runs the smoothing pipeline to completion.
func (a *GaussianSmooth) Execute() error {
	if a.input == nil {
		return fmt.Errorf("gaussian smooth: no input image")
	}
	if a.Association != PointAssociation && a.Association != CellAssociation {
		return fmt.Errorf("gaussian smooth: cannot convolve %s data", a.Association)
	}
	for axis := 0; axis < 3; axis++ {
		if a.RadiusFactors[axis] < 0 {
			return fmt.Errorf("gaussian smooth: negative radius factor %v on axis %d", a.RadiusFactors[axis], axis)
		}
		if a.StdDevs[axis] < 0 {
			return fmt.Errorf("gaussian smooth: negative standard deviation %v on axis %d", a.StdDevs[axis], axis)
		}
	}

	out := a.input.clone()
	arr := out.FindArray(a.Association, a.ArrayName)
	if arr == nil {
		return fmt.Errorf("gaussian smooth: no array %q in %s data", a.ArrayName, a.Association)
	}

	dims := out.Dims
	if a.Association == CellAssociation {
		dims = out.CellDims()
	}
	if len(arr.Data) != dims[0]*dims[1]*dims[2] {
		return fmt.Errorf("gaussian smooth: array %q has %d values, lattice implies %d",
			a.ArrayName, len(arr.Data), dims[0]*dims[1]*dims[2])
	}

	for axis := 0; axis < 3; axis++ {
		kernel := gaussianKernel(a.RadiusFactors[axis], a.StdDevs[axis])
		if kernel != nil {
			convolveAxis(arr.Data, dims, axis, kernel)
		}
		if a.Progress != nil {
			a.Progress("Performing Gaussian Smoothing", float64(axis+1)/3.0)
		}
	}

	a.output = out
	return nil
}

// gaussianKernel builds the symmetric half-kernel weights w[0..r] with
// w[i] = exp(-i²/(2σ²)), normalised so the full kernel sums to one. Returns
// nil when the axis should be passed through untouched.
func gaussianKernel(radiusFactor, stdDev float64) []float64 {
	if stdDev <= 0 || radiusFactor <= 0 {
		return nil
	}
	r := int(math.Floor(radiusFactor*stdDev + 0.5))
	if r < 1 {
		return nil
	}
	w := make([]float64, r+1)
	for i := 0; i <= r; i++ {
		x := float64(i)
		w[i] = math.Exp(-x * x / (2 * stdDev * stdDev))
	}
	// Full kernel sum counts every tap except the centre twice.
	total := 2*floats.Sum(w) - w[0]
	floats.Scale(1/total, w)
	return w
}

// convolveAxis applies the half-kernel along one axis of a flat x-fastest
// array, in place. Taps falling outside the lattice are dropped and the
// remaining weights renormalised, which keeps the filter mean-preserving at
// the boundary.
func convolveAxis(data []float64, dims [3]int, axis int, half []float64) {
	n := dims[axis]
	if n < 2 {
		return
	}
	r := len(half) - 1

	strides := [3]int{1, dims[0], dims[0] * dims[1]}
	stride := strides[axis]

	// Iterate every line parallel to the axis.
	var outerDims [2]int
	var outerStrides [2]int
	oi := 0
	for a := 0; a < 3; a++ {
		if a == axis {
			continue
		}
		outerDims[oi] = dims[a]
		outerStrides[oi] = strides[a]
		oi++
	}

	line := make([]float64, n)
	for u := 0; u < outerDims[0]; u++ {
		for v := 0; v < outerDims[1]; v++ {
			base := u*outerStrides[0] + v*outerStrides[1]
			for i := 0; i < n; i++ {
				line[i] = data[base+i*stride]
			}
			for i := 0; i < n; i++ {
				sum := half[0] * line[i]
				weight := half[0]
				for k := 1; k <= r; k++ {
					if i-k >= 0 {
						sum += half[k] * line[i-k]
						weight += half[k]
					}
					if i+k < n {
						sum += half[k] * line[i+k]
						weight += half[k]
					}
				}
				// Interior samples see the full kernel (weight == 1 after
				// normalisation); truncated boundary samples divide by the
				// surviving weight so the result stays a weighted mean.
				data[base+i*stride] = sum / weight
			}
		}
	}
}
