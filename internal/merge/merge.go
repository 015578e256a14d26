// Package merge concatenates rendered label documents into one PDF, either
// through the external merge microservice or in-process via pdfcpu.
package merge

import (
	"context"
	"errors"
)

// ErrNoInputs is returned when a merge is requested with zero documents.
// A merged document is never produced from nothing.
var ErrNoInputs = errors.New("no documents provided for merge")

// Input is one document to merge, carried either as raw bytes or as a
// fetchable URL. Both transport forms are valid; Data wins when both are set.
type Input struct {
	Name string
	Data []byte
	URL  string
}

// Merger combines documents, in input order, into a single PDF. The merge is
// atomic from the caller's point of view: one combined document or an error,
// never partial output.
type Merger interface {
	Merge(ctx context.Context, inputs []Input) ([]byte, error)
}
