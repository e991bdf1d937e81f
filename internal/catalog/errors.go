// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

package catalog

import "errors"

var (
	// ErrEmptyCatalog is returned when a load yields no usable strains.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrNotFound is returned when no persisted snapshot exists.
	ErrNotFound = errors.New("catalog snapshot not found")

	// ErrCatalogTooLarge is returned when a remote catalog exceeds its size cap.
	ErrCatalogTooLarge = errors.New("catalog response too large")

	// ErrUnsupportedSource is returned for unknown source kinds or file formats.
	ErrUnsupportedSource = errors.New("unsupported catalog source")
)
