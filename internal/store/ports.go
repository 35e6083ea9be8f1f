// Package store defines the ports for the tabular ledger stores. The remote
// spreadsheet, the local SQLite mirror, and the in-memory dev store all speak
// the same raw-row protocol; normalization into typed transactions happens in
// the service layer.
package store

import "context"

// Row is one raw data row, keyed by column header name. Values are the raw
// cell contents as strings, untyped on purpose.
type Row map[string]string

type (
	// Reader fetches every data row of the resource. An empty resource
	// yields an empty slice, not an error.
	Reader interface {
		ReadAll(ctx context.Context) ([]Row, error)
	}

	// Writer replaces the entire resource with a header row followed by the
	// given data rows. The call is atomic only from the caller's point of
	// view: a mid-write failure may leave the resource cleared or partially
	// written, and no recovery is attempted.
	Writer interface {
		OverwriteAll(ctx context.Context, header []string, rows [][]string) error
	}

	// Store is the full tabular port.
	Store interface {
		Reader
		Writer
	}
)
