// Command slice-plot renders one z-slice of a stored dataset's scalar field
// as a PNG heat map. Useful for eyeballing smoothing and extraction results
// without a full visualisation stack.
package main

import (
	"flag"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/voxelkit/voxelkit/internal/grid"
	"github.com/voxelkit/voxelkit/internal/store"
)

func main() {
	dbPath := flag.String("db", "voxel.db", "path to dataset database")
	name := flag.String("name", "", "dataset name (required)")
	scalars := flag.String("scalars", "", "point array to plot (default: active scalars)")
	zIndex := flag.Int("z", 0, "slice index along the z axis")
	out := flag.String("out", "slice.png", "output PNG path")
	flag.Parse()

	if *name == "" {
		log.Fatal("usage: slice-plot -db <path> -name <dataset> [-scalars f] [-z k] [-out slice.png]")
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("opening store %s: %v", *dbPath, err)
	}
	defer s.Close()

	g, err := s.LoadGridByName(*name)
	if err != nil {
		log.Fatalf("loading %s: %v", *name, err)
	}

	field := *scalars
	if field == "" {
		active, loc, ok := g.ActiveScalars()
		if !ok || loc != grid.PointLocation {
			log.Fatal("no point-data active scalars; pass -scalars explicitly")
		}
		field = active
	}
	data, ok := g.PointData.Get(field)
	if !ok {
		log.Fatalf("point array %q not found in %s", field, *name)
	}
	if *zIndex < 0 || *zIndex >= g.Dims[2] {
		log.Fatalf("slice index %d outside [0, %d]", *zIndex, g.Dims[2]-1)
	}

	slice := &sliceXYZ{grid: g, data: data, z: *zIndex}
	p := plot.New()
	p.Title.Text = *name + " / " + field
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(slice, palette.Heat(64, 1))
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, *out); err != nil {
		log.Fatalf("saving %s: %v", *out, err)
	}
	log.Printf("wrote %s (slice z=%d of %s)", *out, *zIndex, *name)
}

// sliceXYZ adapts one z-slab of a grid's point array to plotter.GridXYZ.
type sliceXYZ struct {
	grid *grid.UniformGrid
	data []float64
	z    int
}

func (s *sliceXYZ) Dims() (c, r int) { return s.grid.Dims[0], s.grid.Dims[1] }

func (s *sliceXYZ) Z(c, r int) float64 {
	d := s.grid.Dims
	return s.data[c+d[0]*(r+d[1]*s.z)]
}

func (s *sliceXYZ) X(c int) float64 {
	return s.grid.Origin[0] + float64(c)*s.grid.Spacing[0]
}

func (s *sliceXYZ) Y(r int) float64 {
	return s.grid.Origin[1] + float64(r)*s.grid.Spacing[1]
}
