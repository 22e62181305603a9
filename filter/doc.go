// Package filter selects table rows by date range, season and numeric bounds.
//
// An Index is built once per table. Season membership is held as one
// Roaring bitmap per season and numeric columns as sorted (value, row)
// pairs, so every constraint resolves to a bitmap and a Filter is their
// intersection.
package filter
