package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniformGrid(t *testing.T) {
	t.Parallel()
	g := NewUniformGrid([3]int{4, 3, 2})

	assert.Equal(t, [3]float64{0, 0, 0}, g.Origin)
	assert.Equal(t, [3]float64{1, 1, 1}, g.Spacing)
	assert.Equal(t, 24, g.NumPoints())
	assert.Equal(t, [3]int{3, 2, 1}, g.CellDims())
	assert.Equal(t, 6, g.NumCells())

	_, _, ok := g.ActiveScalars()
	assert.False(t, ok)
}

func TestUniformGrid_Bounds(t *testing.T) {
	t.Parallel()
	g := NewUniformGrid([3]int{5, 3, 1})
	g.Origin = [3]float64{1, -2, 4}
	g.Spacing = [3]float64{0.5, 2, 3}

	assert.Equal(t, [6]float64{1, 3, -2, 2, 4, 4}, g.Bounds())
}

func TestUniformGrid_AddArrays(t *testing.T) {
	t.Parallel()
	g := NewUniformGrid([3]int{2, 2, 2})

	require.NoError(t, g.AddPointArray("p", make([]float64, 8)))
	require.NoError(t, g.AddCellArray("c", make([]float64, 1)))
	g.AddFieldArray("f", []float64{1, 2, 3})

	t.Run("wrong point length", func(t *testing.T) {
		err := g.AddPointArray("bad", make([]float64, 7))
		var iperr *InvalidParameterError
		require.ErrorAs(t, err, &iperr)
		assert.False(t, g.PointData.Has("bad"))
	})

	t.Run("wrong cell length", func(t *testing.T) {
		err := g.AddCellArray("bad", make([]float64, 8))
		var iperr *InvalidParameterError
		require.ErrorAs(t, err, &iperr)
	})
}

func TestUniformGrid_ActiveScalars(t *testing.T) {
	t.Parallel()
	g := NewUniformGrid([3]int{2, 2, 2})
	require.NoError(t, g.AddPointArray("temp", make([]float64, 8)))
	require.NoError(t, g.AddCellArray("density", make([]float64, 1)))

	require.NoError(t, g.SetActiveScalars("density", CellLocation))
	name, loc, ok := g.ActiveScalars()
	assert.True(t, ok)
	assert.Equal(t, "density", name)
	assert.Equal(t, CellLocation, loc)

	err := g.SetActiveScalars("missing", PointLocation)
	var nferr *FieldNotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "missing", nferr.Name)
}

func TestUniformGrid_FindArray(t *testing.T) {
	t.Parallel()
	g := NewUniformGrid([3]int{3, 2, 2})
	require.NoError(t, g.AddPointArray("shared", make([]float64, 12)))
	require.NoError(t, g.AddCellArray("shared", make([]float64, 2)))
	require.NoError(t, g.AddCellArray("cellonly", make([]float64, 2)))

	t.Run("preference honoured", func(t *testing.T) {
		loc, data, err := g.FindArray("shared", CellLocation)
		require.NoError(t, err)
		assert.Equal(t, CellLocation, loc)
		assert.Len(t, data, 2)

		loc, data, err = g.FindArray("shared", PointLocation)
		require.NoError(t, err)
		assert.Equal(t, PointLocation, loc)
		assert.Len(t, data, 12)
	})

	t.Run("falls back to other location", func(t *testing.T) {
		loc, _, err := g.FindArray("cellonly", PointLocation)
		require.NoError(t, err)
		assert.Equal(t, CellLocation, loc)
	})

	t.Run("not found", func(t *testing.T) {
		_, _, err := g.FindArray("nope", PointLocation)
		var nferr *FieldNotFoundError
		require.ErrorAs(t, err, &nferr)
	})
}

func TestUniformGrid_CopyMetaFrom(t *testing.T) {
	t.Parallel()
	src := NewUniformGrid([3]int{2, 2, 2})
	require.NoError(t, src.AddPointArray("v", make([]float64, 8)))
	require.NoError(t, src.SetActiveScalars("v", PointLocation))
	src.Meta = map[string]string{"frame": "scanner", "texture": "bone"}

	dst := NewUniformGrid([3]int{2, 2, 2})
	dst.CopyMetaFrom(src)

	assert.Equal(t, src.Meta, dst.Meta)
	// The copy is detached from the source map.
	src.Meta["frame"] = "other"
	assert.Equal(t, "scanner", dst.Meta["frame"])

	name, loc, ok := dst.ActiveScalars()
	assert.True(t, ok)
	assert.Equal(t, "v", name)
	assert.Equal(t, PointLocation, loc)

	dst.CopyMetaFrom(nil) // no-op
	assert.Equal(t, "scanner", dst.Meta["frame"])
}

func TestAttributeSet(t *testing.T) {
	t.Parallel()
	s := NewAttributeSet()
	s.Set("b", []float64{1})
	s.Set("a", []float64{2})
	s.Set("c", []float64{3})

	assert.Equal(t, []string{"b", "a", "c"}, s.Names())
	assert.Equal(t, 3, s.Len())

	// Replacement keeps position and swaps data.
	s.Set("a", []float64{9, 9})
	assert.Equal(t, []string{"b", "a", "c"}, s.Names())
	data, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, []float64{9, 9}, data)

	s.Delete("b")
	assert.Equal(t, []string{"a", "c"}, s.Names())
	assert.False(t, s.Has("b"))
	s.Delete("b") // deleting twice is fine
}

func TestErrors(t *testing.T) {
	t.Parallel()

	nf := &FieldNotFoundError{Name: "speed"}
	assert.Contains(t, nf.Error(), `"speed"`)

	ip := &InvalidParameterError{Param: "voi", Reason: "too short"}
	assert.Contains(t, ip.Error(), "voi")
	assert.Contains(t, ip.Error(), "too short")

	inner := errors.New("kernel exploded")
	ee := &EngineExecutionError{Op: "gaussian smooth", Err: inner}
	assert.Contains(t, ee.Error(), "gaussian smooth")
	assert.ErrorIs(t, ee, inner)
}
