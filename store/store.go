package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"mangatan.com/yomitan/types"
)

// TermStore reads the imported dictionary bundle. The bundle is a single
// SQLite file produced by the import tooling; this process only ever reads it,
// so one handle is shared by every concurrent search.
type TermStore struct {
	db *sql.DB
}

func Open(path string) (*TermStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open term store %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not open term store %s: %w", path, err)
	}
	return &TermStore{db: db}, nil
}

// LookupExact returns every row filed under term, across all dictionaries.
// Enablement filtering happens in the search layer, not here.
func (s *TermStore) LookupExact(ctx context.Context, term string) ([]types.TermRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dictionary_id, json FROM terms WHERE term = ?`, term)
	if err != nil {
		return nil, fmt.Errorf("term query failed: %w", err)
	}
	defer rows.Close()

	var result []types.TermRow
	for rows.Next() {
		var row types.TermRow
		if err := rows.Scan(&row.DictionaryID, &row.Blob); err != nil {
			return nil, fmt.Errorf("term row scan failed: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("term query failed: %w", err)
	}
	return result, nil
}

func (s *TermStore) Close() error {
	return s.db.Close()
}
