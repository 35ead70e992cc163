// Package storage persists portfolio snapshots. The store is modeled as a
// set of named tables (one per portfolio) of versioned rows; the Postgres
// implementation keeps them in a single physical table keyed by portfolio
// name, and an in-memory implementation backs the service tests.
package storage

import "github.com/JoaoVF25/dashboard/internal/domain/models"

// TableStore defines the contract for the portfolio store backend.
//
// Tables are created implicitly on first append and cease to exist when
// their last row is deleted. Rows are append-only: versioning is the
// caller's concern, the store just persists whatever versions it is given.
type TableStore interface {
	// ListTables returns the names of all portfolios with at least one
	// stored row, sorted ascending.
	ListTables() ([]string, error)

	// AppendRows appends rows to the named table.
	AppendRows(table string, rows []models.VersionedRow) error

	// ReadAllRows returns every stored row of the named table, all
	// versions included, in insertion order. A missing table yields an
	// empty slice, not an error.
	ReadAllRows(table string) ([]models.VersionedRow, error)

	// DeleteTable removes the named table and all its rows.
	DeleteTable(table string) error
}
