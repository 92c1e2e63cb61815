// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package xcbxml loads XCB protocol descriptions (the xcb-proto XML files)
// into a model.Protocol.
//
// Imports are loaded from the importing file's directory. The loader adds
// the fixed wire header fields that the XML leaves implicit (opcodes,
// response type, sequence number and length) so that aggregate layouts
// match the C structs xcb generates.
package xcbxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/albertocavalcante/gxgen/internal/xbase"
	"github.com/albertocavalcante/gxgen/model"
)

// ErrUnknownType is returned when a field names a type that is not
// defined by the extension or anything it imports.
var ErrUnknownType = errors.New("unknown type")

// ErrImportCycle is returned when extensions import each other.
var ErrImportCycle = errors.New("import cycle")

// Error reports a failure to load one protocol file.
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %v", e.File, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Loader loads protocol files and their imports into one Protocol.
type Loader struct {
	// ReadFile reads a protocol file. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	proto    *model.Protocol
	byHeader map[string]*model.Extension
	loading  map[string]bool
}

// NewLoader returns a Loader with the builtin base types registered.
func NewLoader() *Loader {
	return &Loader{
		ReadFile: os.ReadFile,
		proto:    &model.Protocol{BaseTypes: xbase.NewBaseTypes()},
		byHeader: make(map[string]*model.Extension),
		loading:  make(map[string]bool),
	}
}

// LoadFiles loads every file in paths, plus imports, into one Protocol.
func LoadFiles(paths ...string) (*model.Protocol, error) {
	l := NewLoader()
	for _, p := range paths {
		if _, err := l.Load(p); err != nil {
			return nil, err
		}
	}
	return l.Protocol(), nil
}

// Protocol returns everything loaded so far. Extensions are ordered with
// imports ahead of the extensions that import them.
func (l *Loader) Protocol() *model.Protocol {
	return l.proto
}

// Load loads the protocol file at path and, first, everything it imports.
// Loading a header twice returns the extension loaded the first time.
func (l *Loader) Load(path string) (*model.Extension, error) {
	data, err := l.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Err: err}
	}

	var p xmlProto
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, &Error{File: path, Err: err}
	}
	if p.Header == "" {
		p.Header = strings.TrimSuffix(filepath.Base(path), ".xml")
	}
	if ext, ok := l.byHeader[p.Header]; ok {
		return ext, nil
	}
	if l.loading[p.Header] {
		return nil, &Error{File: path, Err: fmt.Errorf("%w: %s", ErrImportCycle, p.Header)}
	}
	l.loading[p.Header] = true
	defer delete(l.loading, p.Header)

	ext := &model.Extension{
		Header:       p.Header,
		Name:         p.ExtensionName,
		XName:        p.ExtensionXName,
		MajorVersion: p.MajorVersion,
		MinorVersion: p.MinorVersion,
	}
	for _, el := range p.Elements {
		if el.XMLName.Local != "import" {
			continue
		}
		header := strings.TrimSpace(el.Data)
		ext.Imports = append(ext.Imports, header)
		if _, ok := l.byHeader[header]; ok {
			continue
		}
		if _, err := l.Load(filepath.Join(filepath.Dir(path), header+".xml")); err != nil {
			return nil, err
		}
	}

	c := &converter{loader: l, ext: ext}
	if err := c.convert(p.Elements); err != nil {
		return nil, &Error{File: path, Err: err}
	}

	l.byHeader[ext.Header] = ext
	l.proto.Extensions = append(l.proto.Extensions, ext)
	return ext, nil
}
