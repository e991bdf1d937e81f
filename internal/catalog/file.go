// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/strainspotter/internal/models"
)

// FileSource reads the catalog from a JSON or YAML file.
//
// JSON files hold either a bare array of strains or {"strains": [...]}.
// YAML files hold a top-level "strains" list.
type FileSource struct {
	path string
}

// NewFileSource creates a source for path. The format is chosen by extension.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file"
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) ([]models.Strain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".json":
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		return decodeJSON(data)
	case ".yaml", ".yml":
		return s.loadYAML()
	default:
		return nil, fmt.Errorf("%w: file extension %q", ErrUnsupportedSource, filepath.Ext(s.path))
	}
}

func (s *FileSource) loadYAML() ([]models.Strain, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(s.path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var strains []models.Strain
	if err := k.UnmarshalWithConf("strains", &strains, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}
	return strains, nil
}

// catalogDocument is the object form of a JSON catalog.
type catalogDocument struct {
	Strains []models.Strain `json:"strains"`
}

// decodeJSON accepts a bare array or an object with a "strains" field.
func decodeJSON(data []byte) ([]models.Strain, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyCatalog
	}

	if trimmed[0] == '{' {
		var doc catalogDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return doc.Strains, nil
	}

	var strains []models.Strain
	if err := json.Unmarshal(trimmed, &strains); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return strains, nil
}
