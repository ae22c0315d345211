// Package grid provides the uniform-grid dataset container and the filter
// surface over it. A UniformGrid is a regular rectilinear 3D lattice: origin,
// per-axis spacing and per-axis point counts fully determine every sample's
// physical position. Named scalar arrays attach to the grid at point, cell or
// whole-dataset (field) granularity.
package grid

import "fmt"

// Location identifies which attribute collection an array lives in.
type Location int

const (
	// PointLocation addresses per-point arrays. It is the zero value, so it
	// doubles as the default search preference.
	PointLocation Location = iota
	// CellLocation addresses per-cell arrays.
	CellLocation
	// FieldLocation addresses whole-dataset arrays.
	FieldLocation
)

func (l Location) String() string {
	switch l {
	case PointLocation:
		return "points"
	case CellLocation:
		return "cells"
	case FieldLocation:
		return "field"
	default:
		return fmt.Sprintf("location(%d)", int(l))
	}
}

// UniformGrid is a regular 3D lattice dataset. Dims counts points per axis.
type UniformGrid struct {
	Origin  [3]float64
	Spacing [3]float64
	Dims    [3]int

	PointData *AttributeSet
	CellData  *AttributeSet
	FieldData *AttributeSet

	// Meta carries auxiliary dataset metadata such as coordinate frame or
	// texture references. Copied wholesale by CopyMetaFrom.
	Meta map[string]string

	activeScalars  string
	activeLocation Location
}

// NewUniformGrid builds an empty grid with the given point counts, unit
// spacing and a zero origin.
func NewUniformGrid(dims [3]int) *UniformGrid {
	return &UniformGrid{
		Spacing:   [3]float64{1, 1, 1},
		Dims:      dims,
		PointData: NewAttributeSet(),
		CellData:  NewAttributeSet(),
		FieldData: NewAttributeSet(),
	}
}

// NumPoints returns the number of lattice points.
func (g *UniformGrid) NumPoints() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// CellDims returns per-axis cell counts; collapsed axes count one cell layer.
func (g *UniformGrid) CellDims() [3]int {
	var cd [3]int
	for i, d := range g.Dims {
		cd[i] = d - 1
		if cd[i] < 1 {
			cd[i] = 1
		}
	}
	return cd
}

// NumCells returns the number of lattice cells.
func (g *UniformGrid) NumCells() int {
	cd := g.CellDims()
	return cd[0] * cd[1] * cd[2]
}

// Bounds returns the physical axis-aligned box of the lattice as
// (xmin, xmax, ymin, ymax, zmin, zmax).
func (g *UniformGrid) Bounds() [6]float64 {
	var b [6]float64
	for a := 0; a < 3; a++ {
		b[2*a] = g.Origin[a]
		b[2*a+1] = g.Origin[a] + float64(g.Dims[a]-1)*g.Spacing[a]
	}
	return b
}

// AddPointArray attaches a per-point array. The length must match NumPoints.
func (g *UniformGrid) AddPointArray(name string, data []float64) error {
	if len(data) != g.NumPoints() {
		return &InvalidParameterError{
			Param:  name,
			Reason: fmt.Sprintf("point array has %d values, lattice has %d points", len(data), g.NumPoints()),
		}
	}
	g.PointData.Set(name, data)
	return nil
}

// AddCellArray attaches a per-cell array. The length must match NumCells.
func (g *UniformGrid) AddCellArray(name string, data []float64) error {
	if len(data) != g.NumCells() {
		return &InvalidParameterError{
			Param:  name,
			Reason: fmt.Sprintf("cell array has %d values, lattice has %d cells", len(data), g.NumCells()),
		}
	}
	g.CellData.Set(name, data)
	return nil
}

// AddFieldArray attaches a whole-dataset array. No length constraint applies.
func (g *UniformGrid) AddFieldArray(name string, data []float64) {
	g.FieldData.Set(name, data)
}

// SetActiveScalars designates the named array as the dataset's default for
// scalar operations. The array must exist at the given location.
func (g *UniformGrid) SetActiveScalars(name string, loc Location) error {
	set := g.attributeSet(loc)
	if set == nil || !set.Has(name) {
		return &FieldNotFoundError{Name: name}
	}
	g.activeScalars = name
	g.activeLocation = loc
	return nil
}

// ActiveScalars reports the active scalar designation. ok is false when no
// active scalars have been set.
func (g *UniformGrid) ActiveScalars() (name string, loc Location, ok bool) {
	if g.activeScalars == "" {
		return "", PointLocation, false
	}
	return g.activeScalars, g.activeLocation, true
}

// FindArray looks up a named array, searching the preferred location first
// and then the other point/cell collection. Field arrays are not searched;
// they have no lattice shape to filter over.
func (g *UniformGrid) FindArray(name string, preference Location) (Location, []float64, error) {
	first, second := preference, CellLocation
	if preference == CellLocation {
		second = PointLocation
	}
	for _, loc := range []Location{first, second} {
		if set := g.attributeSet(loc); set != nil {
			if data, ok := set.Get(name); ok {
				return loc, data, nil
			}
		}
	}
	return PointLocation, nil, &FieldNotFoundError{Name: name}
}

// CopyMetaFrom copies auxiliary metadata and the active scalar designation
// from another grid. Attribute arrays are not copied.
func (g *UniformGrid) CopyMetaFrom(other *UniformGrid) {
	if other == nil {
		return
	}
	if other.Meta != nil {
		g.Meta = make(map[string]string, len(other.Meta))
		for k, v := range other.Meta {
			g.Meta[k] = v
		}
	}
	g.activeScalars = other.activeScalars
	g.activeLocation = other.activeLocation
}

func (g *UniformGrid) attributeSet(loc Location) *AttributeSet {
	switch loc {
	case PointLocation:
		return g.PointData
	case CellLocation:
		return g.CellData
	case FieldLocation:
		return g.FieldData
	default:
		return nil
	}
}
