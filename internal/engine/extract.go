package engine

import "fmt"

// ExtractVOI extracts a rectangular volume of interest from an image,
// optionally subsampling it with a per-axis stride. VOI bounds are inclusive,
// zero-offset indices into the input lattice.
//
// The raw output deliberately mirrors the extent bookkeeping of the native
// imaging pipelines this engine replaces: Origin is reported as the input's
// origin even when the VOI does not start at index zero, while Extent and
// Bounds carry the true index range and physical box of the retained samples.
// Callers that want a self-consistent grid must rebuild the origin from
// Bounds (see the filter layer's reconciliation step).
type ExtractVOI struct {
	VOI        [6]int
	SampleRate [3]int

	// IncludeBoundary forces the VOI's upper bound sample into the output on
	// axes where the stride does not land on it exactly. Only observable when
	// a sample rate differs from one.
	IncludeBoundary bool

	input  *Image
	output *Image
}

// SetInput configures the source image. The input is never modified.
func (a *ExtractVOI) SetInput(im *Image) { a.input = im }

// Output returns the result image, or nil before a successful Execute.
func (a *ExtractVOI) Output() *Image { return a.output }

// Execute runs the extraction to completion.
func (a *ExtractVOI) Execute() error {
	if a.input == nil {
		return fmt.Errorf("extract voi: no input image")
	}
	in := a.input

	for axis := 0; axis < 3; axis++ {
		lo, hi := a.VOI[2*axis], a.VOI[2*axis+1]
		if lo > hi {
			return fmt.Errorf("extract voi: axis %d bounds inverted (%d > %d)", axis, lo, hi)
		}
		if lo < 0 || hi > in.Dims[axis]-1 {
			return fmt.Errorf("extract voi: axis %d bounds [%d, %d] outside lattice [0, %d]",
				axis, lo, hi, in.Dims[axis]-1)
		}
		if a.SampleRate[axis] < 1 {
			return fmt.Errorf("extract voi: axis %d sample rate %d, want >= 1", axis, a.SampleRate[axis])
		}
	}

	// Retained point indices per axis, in input index space.
	var taken [3][]int
	for axis := 0; axis < 3; axis++ {
		lo, hi := a.VOI[2*axis], a.VOI[2*axis+1]
		rate := a.SampleRate[axis]
		var idx []int
		for i := lo; i <= hi; i += rate {
			idx = append(idx, i)
		}
		if a.IncludeBoundary && rate != 1 && idx[len(idx)-1] != hi {
			idx = append(idx, hi)
		}
		taken[axis] = idx
	}

	out := &Image{
		Origin:            in.Origin, // reported wrong on purpose; Bounds is authoritative
		ActiveScalars:     in.ActiveScalars,
		ActiveAssociation: in.ActiveAssociation,
	}
	for axis := 0; axis < 3; axis++ {
		idx := taken[axis]
		out.Dims[axis] = len(idx)
		out.Spacing[axis] = in.Spacing[axis] * float64(a.SampleRate[axis])
		out.Extent[2*axis] = in.Extent[2*axis] + idx[0]
		out.Extent[2*axis+1] = in.Extent[2*axis] + idx[len(idx)-1]
		out.Bounds[2*axis] = in.Origin[axis] + float64(idx[0])*in.Spacing[axis]
		out.Bounds[2*axis+1] = in.Origin[axis] + float64(idx[len(idx)-1])*in.Spacing[axis]
	}
	if in.Meta != nil {
		out.Meta = make(map[string]string, len(in.Meta))
		for k, v := range in.Meta {
			out.Meta[k] = v
		}
	}

	out.PointArrays = subsampleArrays(in.PointArrays, in.Dims, taken)
	out.CellArrays = subsampleCellArrays(in, out, taken)
	out.FieldArrays = cloneArrays(in.FieldArrays)

	a.output = out
	return nil
}

// subsampleArrays gathers the retained lattice points out of each array.
// Arrays whose length does not match the lattice are dropped rather than
// read out of bounds.
func subsampleArrays(src []NamedArray, dims [3]int, taken [3][]int) []NamedArray {
	if src == nil {
		return nil
	}
	want := dims[0] * dims[1] * dims[2]
	out := make([]NamedArray, 0, len(src))
	for _, arr := range src {
		if len(arr.Data) != want {
			continue
		}
		data := make([]float64, 0, len(taken[0])*len(taken[1])*len(taken[2]))
		for _, k := range taken[2] {
			for _, j := range taken[1] {
				row := dims[0] * (j + dims[1]*k)
				for _, i := range taken[0] {
					data = append(data, arr.Data[row+i])
				}
			}
		}
		out = append(out, NamedArray{Name: arr.Name, Data: data})
	}
	return out
}

// subsampleCellArrays maps each output cell to the input cell anchored at the
// corresponding retained point, clamped to the input cell lattice.
func subsampleCellArrays(in, out *Image, taken [3][]int) []NamedArray {
	if in.CellArrays == nil {
		return nil
	}
	inCells := in.CellDims()
	outCells := out.CellDims()

	var cellTaken [3][]int
	for axis := 0; axis < 3; axis++ {
		idx := make([]int, outCells[axis])
		for c := 0; c < outCells[axis]; c++ {
			src := taken[axis][c]
			if src > inCells[axis]-1 {
				src = inCells[axis] - 1
			}
			idx[c] = src
		}
		cellTaken[axis] = idx
	}
	return subsampleArrays(in.CellArrays, inCells, cellTaken)
}
