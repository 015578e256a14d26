// Package record contains the record-store client and the resolver that
// normalizes loosely-named sheet columns into IntakeRecord values.
package record

import "context"

// CellUpdate is one (A1 range, value) pair for a batch write.
type CellUpdate struct {
	Range string
	Value any
}

// Grid is a full read of the record collection: the resolved tab title, the
// trimmed header row and the data rows below it.
type Grid struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Store reads and writes the tabular system of record. Implementations must
// be safe for concurrent use; every fulfillment run performs its own reads.
type Store interface {
	// ReadGrid fetches the header row and all data rows of the collection.
	ReadGrid(ctx context.Context) (*Grid, error)
	// BatchUpdate writes a batch of cell updates in one call.
	BatchUpdate(ctx context.Context, updates []CellUpdate) error
}
