package store

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"

	"github.com/voxelkit/voxelkit/internal/grid"
)

// gridSnapshot is the gob wire form of a grid. Arrays are stored as parallel
// name/data slices so the attribute sets' insertion order survives the trip.
type gridSnapshot struct {
	Origin  [3]float64
	Spacing [3]float64
	Dims    [3]int

	PointNames []string
	PointData  [][]float64
	CellNames  []string
	CellData   [][]float64
	FieldNames []string
	FieldData  [][]float64

	Meta           map[string]string
	ActiveScalars  string
	ActiveLocation int
}

// encodeGrid compresses the grid using gob encoding and gzip compression.
func encodeGrid(g *grid.UniformGrid) ([]byte, error) {
	snap := gridSnapshot{
		Origin:  g.Origin,
		Spacing: g.Spacing,
		Dims:    g.Dims,
		Meta:    g.Meta,
	}
	snap.PointNames, snap.PointData = flatten(g.PointData)
	snap.CellNames, snap.CellData = flatten(g.CellData)
	snap.FieldNames, snap.FieldData = flatten(g.FieldData)
	if name, loc, ok := g.ActiveScalars(); ok {
		snap.ActiveScalars = name
		snap.ActiveLocation = int(loc)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(snap); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGrid rebuilds a grid from its gob+gzip blob.
func decodeGrid(blob []byte) (*grid.UniformGrid, error) {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var snap gridSnapshot
	if err := gob.NewDecoder(gz).Decode(&snap); err != nil {
		return nil, err
	}

	g := grid.NewUniformGrid(snap.Dims)
	g.Origin = snap.Origin
	g.Spacing = snap.Spacing
	g.Meta = snap.Meta
	for i, name := range snap.PointNames {
		g.PointData.Set(name, snap.PointData[i])
	}
	for i, name := range snap.CellNames {
		g.CellData.Set(name, snap.CellData[i])
	}
	for i, name := range snap.FieldNames {
		g.FieldData.Set(name, snap.FieldData[i])
	}
	if snap.ActiveScalars != "" {
		if err := g.SetActiveScalars(snap.ActiveScalars, grid.Location(snap.ActiveLocation)); err != nil {
			return nil, fmt.Errorf("restoring active scalars: %w", err)
		}
	}
	return g, nil
}

func flatten(set *grid.AttributeSet) ([]string, [][]float64) {
	names := set.Names()
	data := make([][]float64, len(names))
	for i, name := range names {
		arr, _ := set.Get(name)
		data[i] = arr
	}
	return names, data
}
