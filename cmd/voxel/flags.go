package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voxelkit/voxelkit/internal/grid"
)

// parseTriple accepts "v" or "x,y,z", validating the shape up front so a bad
// flag fails before any dataset is loaded.
func parseTriple(s string) ([]float64, error) {
	vals, err := splitFloats(s)
	if err != nil {
		return nil, err
	}
	if _, err := grid.TripleFrom(vals); err != nil {
		return nil, err
	}
	return vals, nil
}

// parseRate accepts "r" or "x,y,z".
func parseRate(s string) (grid.Rate, error) {
	vals, err := splitInts(s)
	if err != nil {
		return grid.Rate{}, err
	}
	return grid.RateFrom(vals)
}

// parseVOI accepts exactly six comma-separated bounds.
func parseVOI(s string) (grid.VOI, error) {
	vals, err := splitInts(s)
	if err != nil {
		return grid.VOI{}, err
	}
	return grid.VOIFrom(vals)
}

func parsePreference(s string) (grid.Location, error) {
	switch s {
	case "points":
		return grid.PointLocation, nil
	case "cells":
		return grid.CellLocation, nil
	default:
		return grid.PointLocation, fmt.Errorf("want points or cells, got %q", s)
	}
}

func splitFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func splitInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
