// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package gobject generates GObject-style C bindings for XCB.
package gobject

import (
	"context"
	"fmt"
	"strconv"

	"github.com/albertocavalcante/gxgen/generator"
	"github.com/albertocavalcante/gxgen/internal/codegen"
	"github.com/albertocavalcante/gxgen/model"
)

// Generator implements [generator.Generator] for GObject C bindings.
type Generator struct{}

// NewGenerator creates a new GObject generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "gobject",
		Version:        "1.0.0",
		Description:    "Generate GObject-style C bindings from XCB protocol descriptions",
		FileExtensions: []string{".h", ".c"},
	}
}

// Generate produces C headers and sources for the loaded protocol.
//
// Recognised options: "header" ("true" or "false", default "true") adds
// the generated-code banner to every file.
func (g *Generator) Generate(ctx context.Context, p *model.Protocol, cfg generator.Config) (*generator.Output, error) {
	header, err := strconv.ParseBool(cfg.Option("header", "true"))
	if err != nil {
		return nil, fmt.Errorf("option header: %w", err)
	}

	extensions := cfg.Extensions
	if cfg.ResolveDeps {
		extensions, err = generator.ResolveDeps(p, cfg.Extensions)
		if err != nil {
			return nil, err
		}
	}

	// Convert generator.Config to internal Config
	internalCfg := codegen.Config{
		Header:     header,
		Extensions: extensions,
		Logger:     cfg.Logger,
		Source:     cfg.Source,
		Ref:        cfg.Ref,
		CommitHash: cfg.CommitHash,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := codegen.New(p, internalCfg).Generate()
	if err != nil {
		return nil, err
	}

	result := generator.NewOutput()
	for _, name := range out.Names() {
		result.Add(name, out.Files[name])
	}
	return result, nil
}
