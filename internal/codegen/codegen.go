// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package codegen generates GObject-style C bindings from an XCB protocol
// model.
//
// Every extension gets one header and one source file per receiver object
// (connection, drawable, pixmap, window and graphics context). A handful of
// process-wide files collect the cookie tags, protocol error codes and
// descriptors, the xcb headers to include, and layout smoke tests.
package codegen

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/albertocavalcante/gxgen/internal/xbase"
	"github.com/albertocavalcante/gxgen/model"
)

// Config controls code generation behavior.
type Config struct {
	// Header adds a "generated code" banner to every file. Default: true.
	Header bool

	// Extensions limits generation to the named extension headers, e.g.
	// "xproto" or "randr". If empty, every loaded extension is generated.
	// Types of other loaded extensions are still named correctly when
	// referenced.
	Extensions []string

	// Namer derives names. If nil, xbase.DefaultNamer is used.
	Namer *xbase.Namer

	// Logger receives progress and skip messages. If nil, nothing is logged.
	Logger *log.Logger

	// Source describes where the protocol descriptions came from (for the
	// banner).
	Source string

	// Ref is the git reference used (for the banner).
	Ref string

	// CommitHash is the git commit (for the banner).
	CommitHash string
}

// DefaultConfig returns sensible defaults for code generation.
func DefaultConfig() Config {
	return Config{
		Header: true,
	}
}

// Output contains the generated files, keyed by file name.
type Output struct {
	Files map[string][]byte
}

// Names returns the file names in sorted order.
func (o *Output) Names() []string {
	names := make([]string, 0, len(o.Files))
	for name := range o.Files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Generator produces C bindings from a protocol model.
type Generator struct {
	proto  *model.Protocol
	config Config
	namer  *xbase.Namer

	parts *parts

	// exts are the extensions files are emitted for, in load order.
	exts []*model.Extension

	// notes holds the annotations of definitions first annotated under a
	// different namer.
	notes map[model.Definition]*annotation

	// enumNames holds the type name of every enum, which differs from its
	// namespace when another type already uses that name.
	enumNames map[*model.Enum]string

	// eventDetails collects the event descriptor entries of the extension
	// being emitted.
	eventDetails []string
}

// New creates a new Generator.
func New(p *model.Protocol, cfg Config) *Generator {
	g := &Generator{
		proto:     p,
		config:    cfg,
		namer:     cfg.Namer,
		parts:     newParts(),
		notes:     make(map[model.Definition]*annotation),
		enumNames: make(map[*model.Enum]string),
	}
	if g.namer == nil {
		g.namer = xbase.DefaultNamer
	}
	return g
}

// Generate produces all output files.
//
// Generation runs in three phases: every definition is annotated with its
// names and receiver, then each selected extension is emitted into the part
// buffer, and finally the parts are assembled into files.
func (g *Generator) Generate() (*Output, error) {
	exts, err := g.selectExtensions()
	if err != nil {
		return nil, err
	}
	g.exts = exts
	g.parts = newParts()

	g.annotateAll()

	g.beginGlobal()
	for _, ext := range g.exts {
		g.logf("generating %s", ext.Header)
		g.beginExtension(ext)
		g.emitExtension(ext)
		g.endExtension(ext)
	}
	g.endGlobal()

	return g.assemble(), nil
}

func (g *Generator) selectExtensions() ([]*model.Extension, error) {
	if len(g.config.Extensions) == 0 {
		return g.proto.Extensions, nil
	}
	want := make(map[string]bool, len(g.config.Extensions))
	for _, name := range g.config.Extensions {
		if g.proto.Extension(name) == nil {
			return nil, fmt.Errorf("extension %q not loaded", name)
		}
		want[name] = true
	}
	var exts []*model.Extension
	for _, ext := range g.proto.Extensions {
		if want[ext.Header] {
			exts = append(exts, ext)
		}
	}
	return exts, nil
}

// emitExtension emits every definition of ext in document order.
func (g *Generator) emitExtension(ext *model.Extension) {
	if ext.IsBase() {
		g.emitBaseAliases()
	}
	for _, def := range ext.Definitions {
		switch def := def.(type) {
		case *model.Enum:
			g.emitEnum(def)
		case *model.XID, *model.XIDUnion:
			g.emitXIDAlias(def)
		case *model.Typedef:
			g.emitTypedef(def)
		case *model.Struct:
			g.emitStruct(def, def.Fields, "struct")
		case *model.Union:
			g.emitStruct(def, def.Fields, "union")
		case *model.Request:
			g.emitRequest(def)
		case *model.Event:
			g.emitEvent(def)
		case *model.Error:
			g.emitError(def)
		}
	}
}

func (g *Generator) logf(format string, args ...any) {
	if g.config.Logger != nil {
		g.config.Logger.Printf(format, args...)
	}
}

// fileHeader returns the banner placed at the top of every file.
func (g *Generator) fileHeader() string {
	if !g.config.Header {
		return ""
	}
	var lines []string
	lines = append(lines, "/* Code generated by gxgen. DO NOT EDIT. */")
	if g.config.Source != "" {
		lines = append(lines, fmt.Sprintf("/* Source: %s */", g.config.Source))
	}
	if g.config.Ref != "" {
		lines = append(lines, fmt.Sprintf("/* Ref: %s */", g.config.Ref))
	}
	if g.config.CommitHash != "" {
		lines = append(lines, fmt.Sprintf("/* Commit: %s */", g.config.CommitHash))
	}
	lines = append(lines, "", "")
	return strings.Join(lines, "\n")
}
