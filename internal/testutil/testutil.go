// Package testutil provides shared test fixtures for grid and filter tests.
//
// This package centralises dataset builders so individual test files don't
// each grow their own slightly different lattice constructors.
package testutil

import (
	"testing"

	"github.com/voxelkit/voxelkit/internal/grid"
)

// RampGrid builds a dims-sized grid with unit spacing, zero origin and a
// point array "values" holding each point's flat index. The array is set as
// the active scalars.
func RampGrid(t *testing.T, dims [3]int) *grid.UniformGrid {
	t.Helper()
	g := grid.NewUniformGrid(dims)
	data := make([]float64, g.NumPoints())
	for i := range data {
		data[i] = float64(i)
	}
	if err := g.AddPointArray("values", data); err != nil {
		t.Fatalf("adding ramp point array: %v", err)
	}
	if err := g.SetActiveScalars("values", grid.PointLocation); err != nil {
		t.Fatalf("setting active scalars: %v", err)
	}
	return g
}

// ConstantGrid builds a dims-sized grid whose "values" point array holds v
// everywhere, set as the active scalars.
func ConstantGrid(t *testing.T, dims [3]int, v float64) *grid.UniformGrid {
	t.Helper()
	g := grid.NewUniformGrid(dims)
	data := make([]float64, g.NumPoints())
	for i := range data {
		data[i] = v
	}
	if err := g.AddPointArray("values", data); err != nil {
		t.Fatalf("adding constant point array: %v", err)
	}
	if err := g.SetActiveScalars("values", grid.PointLocation); err != nil {
		t.Fatalf("setting active scalars: %v", err)
	}
	return g
}

// CellRampGrid adds a cell array "cells" holding each cell's flat index to a
// fresh dims-sized grid.
func CellRampGrid(t *testing.T, dims [3]int) *grid.UniformGrid {
	t.Helper()
	g := grid.NewUniformGrid(dims)
	data := make([]float64, g.NumCells())
	for i := range data {
		data[i] = float64(i)
	}
	if err := g.AddCellArray("cells", data); err != nil {
		t.Fatalf("adding ramp cell array: %v", err)
	}
	return g
}

// PointValues returns the named point array, failing the test if absent.
func PointValues(t *testing.T, g *grid.UniformGrid, name string) []float64 {
	t.Helper()
	data, ok := g.PointData.Get(name)
	if !ok {
		t.Fatalf("point array %q not found", name)
	}
	return data
}
