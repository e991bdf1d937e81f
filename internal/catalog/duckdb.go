// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/strainspotter/internal/models"
)

// DuckDBSource reads the catalog from a DuckDB table with the columns
//
//	slug VARCHAR, name VARCHAR, type VARCHAR,
//	effects VARCHAR[], flavors VARCHAR[], lineage VARCHAR[],
//	thc DOUBLE, cbd DOUBLE
//
// Rows are returned in table insertion order.
type DuckDBSource struct {
	conn  *sql.DB
	table string
	owned bool
}

// OpenDuckDBSource opens the database at dsn (empty for in-memory) read-only
// when a path is given.
func OpenDuckDBSource(dsn, table string) (*DuckDBSource, error) {
	connStr := ":memory:"
	if dsn != "" {
		connStr = readOnlyDSN(dsn)
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	return &DuckDBSource{conn: conn, table: table, owned: true}, nil
}

// readOnlyDSN adds access_mode=read_only to dsn unless an access mode is
// already set.
func readOnlyDSN(dsn string) string {
	if strings.Contains(dsn, "access_mode=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "access_mode=read_only"
}

// NewDuckDBSource wraps an existing connection. The caller keeps ownership.
func NewDuckDBSource(conn *sql.DB, table string) *DuckDBSource {
	return &DuckDBSource{conn: conn, table: table}
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	return "duckdb"
}

// Load implements Source. The table name is validated by config and
// interpolated as a quoted identifier.
func (s *DuckDBSource) Load(ctx context.Context) ([]models.Strain, error) {
	query := fmt.Sprintf(
		`SELECT slug, name, type, effects, flavors, lineage, thc, cbd FROM "%s"`, s.table)

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog table: %w", err)
	}
	defer rows.Close()

	var strains []models.Strain
	for rows.Next() {
		var (
			slug, name, typ           sql.NullString
			effects, flavors, lineage any
			thc, cbd                  sql.NullFloat64
		)
		if err := rows.Scan(&slug, &name, &typ, &effects, &flavors, &lineage, &thc, &cbd); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}

		strains = append(strains, models.Strain{
			Slug:    slug.String,
			Name:    name.String,
			Type:    typ.String,
			Effects: stringList(effects),
			Flavors: stringList(flavors),
			Lineage: stringList(lineage),
			THC:     nullableFloat(thc),
			CBD:     nullableFloat(cbd),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return strains, nil
}

// Close releases the connection if this source opened it.
func (s *DuckDBSource) Close() error {
	if !s.owned {
		return nil
	}
	return s.conn.Close()
}

// stringList converts a scanned LIST column. NULL lists and NULL elements
// are dropped.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return models.Float64(v.Float64)
}
