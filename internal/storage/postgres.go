package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/JoaoVF25/dashboard/internal/domain/models"
)

// postgresStore implements TableStore on a single portfolio_rows table,
// with the portfolio name as a discriminator column.
type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore builds a TableStore backed by an open Postgres handle.
func NewPostgresStore(db *sql.DB) TableStore {
	return &postgresStore{db: db}
}

// ListTables returns the distinct portfolio names present in the store.
func (s *postgresStore) ListTables() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT portfolio FROM portfolio_rows ORDER BY portfolio`)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AppendRows bulk-inserts rows for one portfolio in a single transaction.
func (s *postgresStore) AppendRows(table string, in []models.VersionedRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"portfolio_rows",
		"portfolio",
		"asset",
		"quantity",
		"version",
		"uploaded_at",
		"meta",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range in {
		uploadedAt := rec.UploadedAt
		if uploadedAt.IsZero() {
			uploadedAt = time.Now().UTC()
		}
		meta, err := encodeMeta(rec.Meta)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(
			table,
			rec.Asset,
			rec.Quantity,
			rec.Version,
			uploadedAt,
			meta,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ReadAllRows returns every stored row of one portfolio in insertion order.
func (s *postgresStore) ReadAllRows(table string) ([]models.VersionedRow, error) {
	rows, err := s.db.Query(`
		SELECT asset, quantity, version, uploaded_at, meta
		FROM portfolio_rows
		WHERE portfolio = $1
		ORDER BY id
	`, table)
	if err != nil {
		return nil, fmt.Errorf("read portfolio %q: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.VersionedRow
	for rows.Next() {
		var (
			row  models.VersionedRow
			meta []byte
		)
		if err := rows.Scan(&row.Asset, &row.Quantity, &row.Version, &row.UploadedAt, &meta); err != nil {
			return nil, err
		}
		if row.Meta, err = decodeMeta(meta); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteTable removes all rows of one portfolio.
func (s *postgresStore) DeleteTable(table string) error {
	_, err := s.db.Exec(`DELETE FROM portfolio_rows WHERE portfolio = $1`, table)
	return err
}

// encodeMeta maps an empty metadata set to NULL so the jsonb column stays
// clean; decodeMeta is its inverse.
func encodeMeta(meta map[string]string) (interface{}, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode row metadata: %w", err)
	}
	return string(b), nil
}

func decodeMeta(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var meta map[string]string
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode row metadata: %w", err)
	}
	return meta, nil
}
