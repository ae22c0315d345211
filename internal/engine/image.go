// Package engine implements the volumetric processing algorithms behind the
// grid filter surface. Algorithms follow a three-step contract: construct and
// configure, SetInput, Execute, then retrieve the result with Output. Each
// algorithm instance is single-use; Execute never mutates its input image.
package engine

import "fmt"

// Association identifies which attribute collection an array belongs to.
type Association int

const (
	// PointAssociation marks arrays with one value per lattice point.
	PointAssociation Association = iota
	// CellAssociation marks arrays with one value per lattice cell.
	CellAssociation
	// FieldAssociation marks whole-dataset arrays with no implied length.
	FieldAssociation
)

func (a Association) String() string {
	switch a {
	case PointAssociation:
		return "point"
	case CellAssociation:
		return "cell"
	case FieldAssociation:
		return "field"
	default:
		return fmt.Sprintf("association(%d)", int(a))
	}
}

// NamedArray is a named scalar array attached to an image.
type NamedArray struct {
	Name string
	Data []float64
}

// Image is the engine's working representation of a uniform lattice. Extent
// records which index range of the upstream source the samples cover; for an
// image built directly from a grid it starts at zero on every axis. Bounds is
// the physical axis-aligned box of the retained samples and is always derived
// from the source geometry, so it stays correct even when Origin does not
// (see ExtractVOI).
type Image struct {
	Origin  [3]float64
	Spacing [3]float64
	Dims    [3]int
	Extent  [6]int
	Bounds  [6]float64

	PointArrays []NamedArray
	CellArrays  []NamedArray
	FieldArrays []NamedArray

	Meta              map[string]string
	ActiveScalars     string
	ActiveAssociation Association
}

// NumPoints returns the number of lattice points.
func (im *Image) NumPoints() int {
	return im.Dims[0] * im.Dims[1] * im.Dims[2]
}

// CellDims returns the per-axis cell counts. A collapsed axis (one point)
// still contributes a single cell layer so attribute lengths stay positive.
func (im *Image) CellDims() [3]int {
	var cd [3]int
	for i, d := range im.Dims {
		cd[i] = d - 1
		if cd[i] < 1 {
			cd[i] = 1
		}
	}
	return cd
}

// NumCells returns the number of lattice cells.
func (im *Image) NumCells() int {
	cd := im.CellDims()
	return cd[0] * cd[1] * cd[2]
}

// ComputeBounds fills Bounds from Origin, Spacing and Dims, assuming the
// image's own index space (no source offset).
func (im *Image) ComputeBounds() {
	for a := 0; a < 3; a++ {
		im.Bounds[2*a] = im.Origin[a]
		im.Bounds[2*a+1] = im.Origin[a] + float64(im.Dims[a]-1)*im.Spacing[a]
	}
}

// FindArray returns the array with the given name in the collection for the
// association, or nil if absent. FieldAssociation searches field arrays.
func (im *Image) FindArray(assoc Association, name string) *NamedArray {
	var set []NamedArray
	switch assoc {
	case PointAssociation:
		set = im.PointArrays
	case CellAssociation:
		set = im.CellArrays
	default:
		set = im.FieldArrays
	}
	for i := range set {
		if set[i].Name == name {
			return &set[i]
		}
	}
	return nil
}

// clone returns a deep copy of the image with freshly allocated arrays.
func (im *Image) clone() *Image {
	out := &Image{
		Origin:            im.Origin,
		Spacing:           im.Spacing,
		Dims:              im.Dims,
		Extent:            im.Extent,
		Bounds:            im.Bounds,
		ActiveScalars:     im.ActiveScalars,
		ActiveAssociation: im.ActiveAssociation,
	}
	out.PointArrays = cloneArrays(im.PointArrays)
	out.CellArrays = cloneArrays(im.CellArrays)
	out.FieldArrays = cloneArrays(im.FieldArrays)
	if im.Meta != nil {
		out.Meta = make(map[string]string, len(im.Meta))
		for k, v := range im.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

func cloneArrays(src []NamedArray) []NamedArray {
	if src == nil {
		return nil
	}
	out := make([]NamedArray, len(src))
	for i, arr := range src {
		data := make([]float64, len(arr.Data))
		copy(data, arr.Data)
		out[i] = NamedArray{Name: arr.Name, Data: data}
	}
	return out
}
