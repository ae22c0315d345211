package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(dims [3]int, values []float64) *Image {
	im := &Image{
		Spacing: [3]float64{1, 1, 1},
		Dims:    dims,
		Extent:  [6]int{0, dims[0] - 1, 0, dims[1] - 1, 0, dims[2] - 1},
		PointArrays: []NamedArray{
			{Name: "values", Data: values},
		},
	}
	im.ComputeBounds()
	return im
}

func constants(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestGaussianSmooth_ConstantFieldUnchanged(t *testing.T) {
	t.Parallel()
	im := testImage([3]int{5, 4, 3}, constants(60, 8.25))

	alg := &GaussianSmooth{
		RadiusFactors: [3]float64{1.5, 1.5, 1.5},
		StdDevs:       [3]float64{2, 2, 2},
		ArrayName:     "values",
		Association:   PointAssociation,
	}
	alg.SetInput(im)
	require.NoError(t, alg.Execute())

	out := alg.Output()
	require.NotNil(t, out)
	got := out.FindArray(PointAssociation, "values")
	require.NotNil(t, got)
	for i, v := range got.Data {
		assert.InDelta(t, 8.25, v, 1e-12, "index %d", i)
	}
}

func TestGaussianSmooth_InputNotMutated(t *testing.T) {
	t.Parallel()
	values := ramp(7)
	im := testImage([3]int{7, 1, 1}, values)

	alg := &GaussianSmooth{
		RadiusFactors: [3]float64{1.5, 1.5, 1.5},
		StdDevs:       [3]float64{2, 2, 2},
		ArrayName:     "values",
		Association:   PointAssociation,
	}
	alg.SetInput(im)
	require.NoError(t, alg.Execute())

	for i, v := range values {
		assert.Equal(t, float64(i), v, "input index %d changed", i)
	}
}

func TestGaussianSmooth_InteriorOfRampUnchanged(t *testing.T) {
	t.Parallel()
	// radius = round(1.5 * 2) = 3, so index 3 of a 7-point line sees the full
	// symmetric kernel over a linear ramp and must keep its value exactly.
	im := testImage([3]int{7, 1, 1}, ramp(7))

	alg := &GaussianSmooth{
		RadiusFactors: [3]float64{1.5, 0, 0},
		StdDevs:       [3]float64{2, 0, 0},
		ArrayName:     "values",
		Association:   PointAssociation,
	}
	alg.SetInput(im)
	require.NoError(t, alg.Execute())

	out := alg.Output().FindArray(PointAssociation, "values")
	require.NotNil(t, out)
	assert.InDelta(t, 3.0, out.Data[3], 1e-12)
	// Boundary samples are pulled toward the interior by truncation.
	assert.Greater(t, out.Data[0], 0.0)
	assert.Less(t, out.Data[6], 6.0)
}

func TestGaussianSmooth_ZeroStdDevPassesThrough(t *testing.T) {
	t.Parallel()
	values := ramp(24)
	im := testImage([3]int{4, 3, 2}, values)

	alg := &GaussianSmooth{
		RadiusFactors: [3]float64{1.5, 1.5, 1.5},
		StdDevs:       [3]float64{0, 0, 0},
		ArrayName:     "values",
		Association:   PointAssociation,
	}
	alg.SetInput(im)
	require.NoError(t, alg.Execute())

	out := alg.Output().FindArray(PointAssociation, "values")
	require.NotNil(t, out)
	assert.Equal(t, values, out.Data)
}

func TestGaussianSmooth_ProgressEvents(t *testing.T) {
	t.Parallel()
	im := testImage([3]int{3, 3, 3}, constants(27, 1))

	var labels []string
	var fractions []float64
	alg := &GaussianSmooth{
		RadiusFactors: [3]float64{1.5, 1.5, 1.5},
		StdDevs:       [3]float64{2, 2, 2},
		ArrayName:     "values",
		Association:   PointAssociation,
		Progress: func(label string, fraction float64) {
			labels = append(labels, label)
			fractions = append(fractions, fraction)
		},
	}
	alg.SetInput(im)
	require.NoError(t, alg.Execute())

	require.Len(t, labels, 3)
	for _, l := range labels {
		assert.Equal(t, "Performing Gaussian Smoothing", l)
	}
	assert.InDelta(t, 1.0/3.0, fractions[0], 1e-12)
	assert.InDelta(t, 2.0/3.0, fractions[1], 1e-12)
	assert.InDelta(t, 1.0, fractions[2], 1e-12)
}

func TestGaussianSmooth_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no input", func(t *testing.T) {
		t.Parallel()
		alg := &GaussianSmooth{ArrayName: "values"}
		assert.Error(t, alg.Execute())
	})

	t.Run("missing array", func(t *testing.T) {
		t.Parallel()
		alg := &GaussianSmooth{ArrayName: "absent", Association: PointAssociation}
		alg.SetInput(testImage([3]int{2, 2, 2}, constants(8, 0)))
		err := alg.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absent")
	})

	t.Run("field association rejected", func(t *testing.T) {
		t.Parallel()
		alg := &GaussianSmooth{ArrayName: "values", Association: FieldAssociation}
		alg.SetInput(testImage([3]int{2, 2, 2}, constants(8, 0)))
		assert.Error(t, alg.Execute())
	})

	t.Run("negative std dev", func(t *testing.T) {
		t.Parallel()
		alg := &GaussianSmooth{
			StdDevs:     [3]float64{-1, 0, 0},
			ArrayName:   "values",
			Association: PointAssociation,
		}
		alg.SetInput(testImage([3]int{2, 2, 2}, constants(8, 0)))
		assert.Error(t, alg.Execute())
	})

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()
		im := testImage([3]int{2, 2, 2}, constants(8, 0))
		im.PointArrays[0].Data = im.PointArrays[0].Data[:5]
		alg := &GaussianSmooth{
			RadiusFactors: [3]float64{1.5, 1.5, 1.5},
			StdDevs:       [3]float64{2, 2, 2},
			ArrayName:     "values",
			Association:   PointAssociation,
		}
		alg.SetInput(im)
		assert.Error(t, alg.Execute())
	})
}

func TestGaussianSmooth_CellAssociation(t *testing.T) {
	t.Parallel()
	im := &Image{
		Spacing: [3]float64{1, 1, 1},
		Dims:    [3]int{4, 4, 2},
		Extent:  [6]int{0, 3, 0, 3, 0, 1},
		CellArrays: []NamedArray{
			{Name: "density", Data: constants(9, 3.5)}, // 3*3*1 cells
		},
	}
	im.ComputeBounds()

	alg := &GaussianSmooth{
		RadiusFactors: [3]float64{1.5, 1.5, 1.5},
		StdDevs:       [3]float64{2, 2, 2},
		ArrayName:     "density",
		Association:   CellAssociation,
	}
	alg.SetInput(im)
	require.NoError(t, alg.Execute())

	out := alg.Output().FindArray(CellAssociation, "density")
	require.NotNil(t, out)
	for _, v := range out.Data {
		assert.InDelta(t, 3.5, v, 1e-12)
	}
}

func TestGaussianKernel(t *testing.T) {
	t.Parallel()

	t.Run("normalised", func(t *testing.T) {
		t.Parallel()
		half := gaussianKernel(1.5, 2)
		require.Len(t, half, 4) // radius 3 plus centre
		sum := half[0]
		for _, w := range half[1:] {
			sum += 2 * w
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
		// Weights decay monotonically.
		for i := 1; i < len(half); i++ {
			assert.Less(t, half[i], half[i-1])
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, gaussianKernel(0, 2))
		assert.Nil(t, gaussianKernel(1.5, 0))
		assert.Nil(t, gaussianKernel(0.1, 0.1))
	})
}
