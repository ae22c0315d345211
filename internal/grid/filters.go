package grid

import (
	"github.com/voxelkit/voxelkit/internal/engine"
)

// ProgressFunc receives advisory progress events while a filter runs. The
// label describes the operation; fraction is in [0, 1]. Purely observational:
// it cannot alter control flow or cancel execution.
type ProgressFunc = engine.ProgressFunc

// SmoothOptions configures Smooth. RadiusFactor and StdDev take one value
// (applied to all axes) or three per-axis values; nil falls back to the
// defaults (radius factor 1.5, standard deviation 2.0). An explicit zero
// standard deviation passes that axis through unsmoothed. An empty Scalars
// selects the dataset's active scalar field.
type SmoothOptions struct {
	// RadiusFactor is the unitless factor limiting the kernel extent, in
	// multiples of the standard deviation.
	RadiusFactor []float64
	// StdDev is the kernel standard deviation in sample units.
	StdDev []float64
	// Scalars names the field to smooth. Empty means the active scalars.
	Scalars string
	// Preference picks which collection to search first when Scalars is
	// set. Must be PointLocation or CellLocation.
	Preference Location
	// Progress, when set, receives smoothing progress events.
	Progress ProgressFunc
}

// ExtractOptions configures ExtractSubset. A zero-value Rate means no
// subsampling, i.e. (1, 1, 1).
type ExtractOptions struct {
	Rate Rate
	// Boundary forces the VOI's outer boundary samples into the output when
	// a stride does not evenly divide the VOI extent.
	Boundary bool
}

// Smooth convolves a scalar field of the grid with a separable Gaussian
// kernel and returns a new grid of identical topology carrying the smoothed
// values. The receiver is not modified.
func (g *UniformGrid) Smooth(opts SmoothOptions) (*UniformGrid, error) {
	radiusFactor, err := tripleOrDefault(opts.RadiusFactor, 1.5)
	if err != nil {
		return nil, err
	}
	stdDev, err := tripleOrDefault(opts.StdDev, 2.0)
	if err != nil {
		return nil, err
	}
	if opts.Preference != PointLocation && opts.Preference != CellLocation {
		return nil, &InvalidParameterError{
			Param:  "preference",
			Reason: "must be points or cells, got " + opts.Preference.String(),
		}
	}

	loc, name, err := g.resolveScalars(opts.Scalars, opts.Preference)
	if err != nil {
		return nil, err
	}

	alg := &engine.GaussianSmooth{
		RadiusFactors: [3]float64(radiusFactor),
		StdDevs:       [3]float64(stdDev),
		ArrayName:     name,
		Association:   association(loc),
		Progress:      opts.Progress,
	}
	alg.SetInput(g.toImage())
	if err := alg.Execute(); err != nil {
		return nil, &EngineExecutionError{Op: "gaussian smooth", Err: err}
	}
	return fromImage(alg.Output()), nil
}

// ExtractSubset extracts a volume of interest, optionally subsampled, and
// returns it as a new, correctly placed grid. The raw engine result reports
// its origin with the VOI's local offset folded away, so the output is
// rebuilt with the origin taken from the result's physical bounds — the true
// location of the first retained sample. The receiver is not modified.
func (g *UniformGrid) ExtractSubset(voi VOI, opts ExtractOptions) (*UniformGrid, error) {
	if opts.Rate.isZero() {
		opts.Rate = Rate{1, 1, 1}
	}
	if err := voi.Validate(g.Dims); err != nil {
		return nil, err
	}
	if err := opts.Rate.Validate(); err != nil {
		return nil, err
	}

	alg := &engine.ExtractVOI{
		VOI:             [6]int(voi),
		SampleRate:      [3]int(opts.Rate),
		IncludeBoundary: opts.Boundary,
	}
	alg.SetInput(g.toImage())
	if err := alg.Execute(); err != nil {
		return nil, &EngineExecutionError{Op: "extract subset", Err: err}
	}
	return reconcile(alg.Output()), nil
}

// tripleOrDefault normalises a caller-supplied scalar-or-sequence parameter:
// nil (or empty) means unset and yields the default on every axis, so an
// explicit zero stays distinguishable from "use the default".
func tripleOrDefault(vals []float64, def float64) (Triple, error) {
	if len(vals) == 0 {
		return Uniform(def), nil
	}
	return TripleFrom(vals)
}

// resolveScalars picks the field a filter operates on: the named field
// (searching the preferred location first) or, with an empty name, the
// dataset's active scalars.
func (g *UniformGrid) resolveScalars(name string, preference Location) (Location, string, error) {
	if name == "" {
		active, loc, ok := g.ActiveScalars()
		if !ok {
			return PointLocation, "", &InvalidParameterError{
				Param:  "scalars",
				Reason: "no field named and no active scalars set",
			}
		}
		return loc, active, nil
	}
	loc, _, err := g.FindArray(name, preference)
	if err != nil {
		return PointLocation, "", err
	}
	return loc, name, nil
}

// reconcile rebuilds a raw extraction result into a self-consistent grid:
// origin from the physical bounds' minimum corner, spacing and dims copied
// through, every attribute array and all metadata transplanted.
func reconcile(raw *engine.Image) *UniformGrid {
	fixed := NewUniformGrid(raw.Dims)
	fixed.Origin = [3]float64{raw.Bounds[0], raw.Bounds[2], raw.Bounds[4]}
	fixed.Spacing = raw.Spacing
	for _, arr := range raw.PointArrays {
		fixed.PointData.Set(arr.Name, arr.Data)
	}
	for _, arr := range raw.CellArrays {
		fixed.CellData.Set(arr.Name, arr.Data)
	}
	for _, arr := range raw.FieldArrays {
		fixed.FieldData.Set(arr.Name, arr.Data)
	}
	copyImageMeta(fixed, raw)
	return fixed
}

// toImage converts the grid into the engine's working representation. Array
// data is shared, not copied: algorithms treat their input as read-only.
func (g *UniformGrid) toImage() *engine.Image {
	im := &engine.Image{
		Origin:  g.Origin,
		Spacing: g.Spacing,
		Dims:    g.Dims,
		Extent:  [6]int{0, g.Dims[0] - 1, 0, g.Dims[1] - 1, 0, g.Dims[2] - 1},
		Meta:    g.Meta,
	}
	im.ComputeBounds()
	for _, name := range g.PointData.Names() {
		data, _ := g.PointData.Get(name)
		im.PointArrays = append(im.PointArrays, engine.NamedArray{Name: name, Data: data})
	}
	for _, name := range g.CellData.Names() {
		data, _ := g.CellData.Get(name)
		im.CellArrays = append(im.CellArrays, engine.NamedArray{Name: name, Data: data})
	}
	for _, name := range g.FieldData.Names() {
		data, _ := g.FieldData.Get(name)
		im.FieldArrays = append(im.FieldArrays, engine.NamedArray{Name: name, Data: data})
	}
	if name, loc, ok := g.ActiveScalars(); ok {
		im.ActiveScalars = name
		im.ActiveAssociation = association(loc)
	}
	return im
}

// fromImage converts an engine result back into a grid, trusting the image's
// reported geometry. Used on the smoothing path, where the engine's
// bookkeeping is sound.
func fromImage(im *engine.Image) *UniformGrid {
	g := NewUniformGrid(im.Dims)
	g.Origin = im.Origin
	g.Spacing = im.Spacing
	for _, arr := range im.PointArrays {
		g.PointData.Set(arr.Name, arr.Data)
	}
	for _, arr := range im.CellArrays {
		g.CellData.Set(arr.Name, arr.Data)
	}
	for _, arr := range im.FieldArrays {
		g.FieldData.Set(arr.Name, arr.Data)
	}
	copyImageMeta(g, im)
	return g
}

func copyImageMeta(g *UniformGrid, im *engine.Image) {
	if im.Meta != nil {
		g.Meta = make(map[string]string, len(im.Meta))
		for k, v := range im.Meta {
			g.Meta[k] = v
		}
	}
	if im.ActiveScalars != "" {
		g.activeScalars = im.ActiveScalars
		g.activeLocation = location(im.ActiveAssociation)
	}
}

func association(loc Location) engine.Association {
	switch loc {
	case CellLocation:
		return engine.CellAssociation
	case FieldLocation:
		return engine.FieldAssociation
	default:
		return engine.PointAssociation
	}
}

func location(assoc engine.Association) Location {
	switch assoc {
	case engine.CellAssociation:
		return CellLocation
	case engine.FieldAssociation:
		return FieldLocation
	default:
		return PointLocation
	}
}
