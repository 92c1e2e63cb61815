// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"

	"github.com/albertocavalcante/gxgen/model"
)

// ResolveDeps expands an extension filter to include every extension the
// filtered ones import, transitively. The result follows the protocol's
// load order, so imports come before their importers. Returns nil if
// filter is empty (meaning "generate all extensions").
//
// Naming an extension that is not loaded is an error. Imports that were
// never loaded are skipped; their types only need to be known, not
// generated.
func ResolveDeps(p *model.Protocol, filter []string) ([]string, error) {
	if len(filter) == 0 {
		return nil, nil
	}

	visited := make(map[string]bool)
	for _, name := range filter {
		if p.Extension(name) == nil {
			return nil, fmt.Errorf("extension %q not loaded", name)
		}
		collectImports(p, name, visited)
	}

	var out []string
	for _, ext := range p.Extensions {
		if visited[ext.Header] {
			out = append(out, ext.Header)
		}
	}
	return out, nil
}

// collectImports marks header and everything it imports.
func collectImports(p *model.Protocol, header string, visited map[string]bool) {
	if visited[header] {
		return // Already processed or cycle
	}
	ext := p.Extension(header)
	if ext == nil {
		return
	}
	visited[header] = true
	for _, imp := range ext.Imports {
		collectImports(p, imp, visited)
	}
}
