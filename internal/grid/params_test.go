package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriple(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Triple{1.5, 1.5, 1.5}, Uniform(1.5))
	assert.Equal(t, Triple{1, 2, 3}, PerAxis(1, 2, 3))

	got, err := TripleFrom([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, Uniform(2), got)

	got, err = TripleFrom([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, PerAxis(1, 2, 3), got)

	_, err = TripleFrom([]float64{1, 2})
	var iperr *InvalidParameterError
	require.ErrorAs(t, err, &iperr)
}

func TestVOI(t *testing.T) {
	t.Parallel()
	dims := [3]int{10, 5, 3}

	t.Run("from slice", func(t *testing.T) {
		t.Parallel()
		v, err := VOIFrom([]int{0, 9, 0, 4, 0, 2})
		require.NoError(t, err)
		assert.Equal(t, WholeGrid(dims), v)

		_, err = VOIFrom([]int{0, 9, 0, 4})
		var iperr *InvalidParameterError
		require.ErrorAs(t, err, &iperr)
	})

	t.Run("validate", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, VOI{2, 5, 0, 3, 0, 0}.Validate(dims))
		assert.Error(t, VOI{5, 2, 0, 3, 0, 0}.Validate(dims))  // inverted
		assert.Error(t, VOI{0, 10, 0, 3, 0, 0}.Validate(dims)) // past edge
		assert.Error(t, VOI{-1, 2, 0, 3, 0, 0}.Validate(dims)) // negative
	})
}

func TestRate(t *testing.T) {
	t.Parallel()

	r, err := RateFrom([]int{2})
	require.NoError(t, err)
	assert.Equal(t, Rate{2, 2, 2}, r)

	r, err = RateFrom([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Rate{1, 2, 3}, r)

	_, err = RateFrom([]int{1, 2})
	var iperr *InvalidParameterError
	require.ErrorAs(t, err, &iperr)

	assert.NoError(t, Rate{1, 1, 1}.Validate())
	assert.Error(t, Rate{1, 0, 1}.Validate())
	assert.Error(t, Rate{1, 1, -2}.Validate())
}
