// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package validation wraps go-playground/validator for catalog records and
configuration.

# Custom Tags

  - label: the value must be non-empty with no leading or trailing
    whitespace. Used for effect, flavor and lineage entries.

# Usage

Catalog loaders validate each record and drop (or, in strict mode, reject)
the ones that fail:

	for i := range strains {
	    if err := validation.ValidateStruct(&strains[i]); err != nil {
	        // handle
	    }
	}

Returned errors are *validation.Error. Use errors.As to reach the individual
FieldError values.
*/
package validation
