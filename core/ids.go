package core

// RowID is a dense, zero-based identifier for a row within a single table.
// It is strictly 32-bit so row sets fit in a 32-bit Roaring bitmap.
type RowID uint32

// MaxRowID is the maximum possible value for a RowID.
const MaxRowID = ^RowID(0)
