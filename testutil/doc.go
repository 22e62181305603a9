// Package testutil provides testing utilities for bikestats.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator for points and synthetic
// bike-rental tables in the day.csv / hour.csv layout.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(100, core.Point{}, core.Point{X: 1, Y: 1})
//	blobs, labels := rng.GaussianBlobs(centers, 50, 0.1)
//
// # Synthetic Tables
//
//	csv := rng.DayCSV(365)   // one row per day starting 2011-01-01
//	csv := rng.HourCSV(48)   // 24 rows per day
package testutil
