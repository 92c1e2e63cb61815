// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the targets that turn a loaded XCB protocol
// into binding sources.
//
// A target registers itself with [Register] and is selected by name with
// [Lookup]. Targets receive the whole protocol; narrowing it to the
// requested extensions is their job, usually through [ResolveDeps].
package generator

import (
	"context"

	"github.com/albertocavalcante/gxgen/model"
)

// Generator is implemented by every binding target.
type Generator interface {
	// Metadata returns information about this target.
	Metadata() Metadata

	// Generate produces output files from a loaded protocol.
	Generate(ctx context.Context, p *model.Protocol, cfg Config) (*Output, error)
}

// Metadata describes a target.
type Metadata struct {
	// Name selects the target on the command line (e.g., "gobject").
	Name string

	Version     string
	Description string

	// FileExtensions lists the extensions of generated files (e.g., [".h", ".c"]).
	FileExtensions []string
}
