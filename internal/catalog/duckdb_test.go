// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestDuckDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	stmts := []string{
		`CREATE TABLE strains (
			slug VARCHAR, name VARCHAR, type VARCHAR,
			effects VARCHAR[], flavors VARCHAR[], lineage VARCHAR[],
			thc DOUBLE, cbd DOUBLE
		)`,
		`INSERT INTO strains VALUES
			('blue-dream', 'Blue Dream', 'Hybrid', ['Happy', 'Relaxed'], ['Berry'], ['Blueberry', 'Haze'], 21.0, 0.1),
			('og-kush', 'OG Kush', 'Hybrid', ['Relaxed'], [], NULL, 0.0, NULL),
			('mystery', NULL, NULL, NULL, NULL, NULL, NULL, NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return conn
}

func TestDuckDBSource_Load(t *testing.T) {
	t.Parallel()

	src := NewDuckDBSource(newTestDuckDB(t), "strains")
	strains, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(strains) != 3 {
		t.Fatalf("len(strains) = %d, want 3", len(strains))
	}

	bd := strains[0]
	if bd.Slug != "blue-dream" || bd.Type != "Hybrid" {
		t.Errorf("strains[0] = %+v", bd)
	}
	if len(bd.Effects) != 2 || bd.Effects[0] != "Happy" || bd.Effects[1] != "Relaxed" {
		t.Errorf("Effects = %v, want [Happy Relaxed]", bd.Effects)
	}
	if len(bd.Lineage) != 2 {
		t.Errorf("Lineage = %v, want 2 entries", bd.Lineage)
	}

	og := strains[1]
	if og.THC == nil || *og.THC != 0 {
		t.Errorf("og-kush THC = %v, want present 0", og.THC)
	}
	if og.CBD != nil {
		t.Errorf("og-kush CBD = %v, want nil", *og.CBD)
	}
	if len(og.Flavors) != 0 || og.Lineage != nil {
		t.Errorf("og-kush Flavors = %v, Lineage = %v, want empty", og.Flavors, og.Lineage)
	}

	if strains[2].Name != "" || strains[2].Effects != nil {
		t.Errorf("mystery = %+v, want empty fields", strains[2])
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() on borrowed connection = %v", err)
	}
}

func TestDuckDBSource_MissingTable(t *testing.T) {
	t.Parallel()

	src := NewDuckDBSource(newTestDuckDB(t), "nope")
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Load() error = nil for missing table")
	}
}

func TestOpenDuckDBSource_InMemory(t *testing.T) {
	t.Parallel()

	src, err := OpenDuckDBSource("", "strains")
	if err != nil {
		t.Fatalf("OpenDuckDBSource() error = %v", err)
	}
	defer src.Close()

	if src.Name() != "duckdb" {
		t.Errorf("Name() = %q, want duckdb", src.Name())
	}
}

func TestReadOnlyDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dsn  string
		want string
	}{
		{"/data/strains.db", "/data/strains.db?access_mode=read_only"},
		{"/data/strains.db?threads=4", "/data/strains.db?threads=4&access_mode=read_only"},
		{"/data/strains.db?access_mode=read_write", "/data/strains.db?access_mode=read_write"},
	}
	for _, tt := range tests {
		if got := readOnlyDSN(tt.dsn); got != tt.want {
			t.Errorf("readOnlyDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestOpenDuckDBSource_DSNWithOptions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "strains.db")
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE strains (
			slug VARCHAR, name VARCHAR, type VARCHAR,
			effects VARCHAR[], flavors VARCHAR[], lineage VARCHAR[],
			thc DOUBLE, cbd DOUBLE
		)`,
		`INSERT INTO strains VALUES ('blue-dream', 'Blue Dream', 'Hybrid', ['Happy'], [], [], 21.0, 0.1)`,
	} {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	src, err := OpenDuckDBSource(path+"?threads=1", "strains")
	if err != nil {
		t.Fatalf("OpenDuckDBSource() error = %v", err)
	}
	defer src.Close()

	strains, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(strains) != 1 || strains[0].Slug != "blue-dream" {
		t.Errorf("strains = %+v", strains)
	}
}

func TestStringList(t *testing.T) {
	t.Parallel()

	if got := stringList([]any{"a", nil, "b"}); len(got) != 2 || got[1] != "b" {
		t.Errorf("stringList([]any) = %v, want [a b]", got)
	}
	if got := stringList([]string{"x"}); len(got) != 1 {
		t.Errorf("stringList([]string) = %v", got)
	}
	if got := stringList(nil); got != nil {
		t.Errorf("stringList(nil) = %v, want nil", got)
	}
}
