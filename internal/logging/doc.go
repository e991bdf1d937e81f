// StrainSpotter - Strain Similarity and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/strainspotter

/*
Package logging provides the process-wide zerolog logger.

# Initialization

Init configures level, format (json or console), caller and timestamps.
Until Init is called a default JSON logger at info level writes to stderr,
so packages can log during configuration loading.

	logging.Init(logging.Config{Level: "debug", Format: "console"})
	logging.Info().Str("source", "file").Msg("Catalog loaded")

# Request Context

Request and correlation IDs travel in the request context. Ctx returns a
logger that carries both:

	ctx = logging.ContextWithRequestID(ctx, id)
	logging.Ctx(ctx).Warn().Err(err).Msg("Strain lookup failed")

# slog Bridge

SlogHandler implements slog.Handler on top of zerolog. It backs the
supervisor's sutureslog hook and watermill's slog adapter, so their events
land in the same JSON stream:

	tree, _ := supervisor.NewSupervisorTree(logging.NewComponentSlogLogger("supervisor"), cfg)

# Testing

NewTestLogger writes JSON to a buffer. Install it with
SetLogger and restore the default with Init(DefaultConfig()).
*/
package logging
