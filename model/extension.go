// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

// Extension is one protocol module: the core protocol or an add-on.
type Extension struct {
	// Header is the file stem, e.g. "xproto" or "randr".
	Header string

	// Name is the extension-name attribute, e.g. "RandR". Empty for the
	// core protocol.
	Name string

	// XName is the name the server advertises, e.g. "RANDR".
	XName string

	MajorVersion string
	MinorVersion string

	// Imports lists the headers this extension imports.
	Imports []string

	// Definitions holds every definition in document order.
	Definitions []Definition
}

// IsBase reports whether e is the core protocol.
func (e *Extension) IsBase() bool {
	return e.Header == BaseExtension
}

// Add appends d to the extension and sets its owner.
func (e *Extension) Add(d Definition) {
	d.Common().Ext = e
	e.Definitions = append(e.Definitions, d)
}

// Lookup returns the definition named name, or nil.
func (e *Extension) Lookup(name string) Definition {
	for _, d := range e.Definitions {
		if d.Common().Name == name {
			return d
		}
	}
	return nil
}

func collect[T Definition](e *Extension) []T {
	var out []T
	for _, d := range e.Definitions {
		if t, ok := d.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Enums returns the extension's enums in document order.
func (e *Extension) Enums() []*Enum { return collect[*Enum](e) }

// Typedefs returns the extension's typedefs in document order.
func (e *Extension) Typedefs() []*Typedef { return collect[*Typedef](e) }

// Requests returns the extension's requests in document order.
func (e *Extension) Requests() []*Request { return collect[*Request](e) }

// Errors returns the extension's errors in document order.
func (e *Extension) Errors() []*Error { return collect[*Error](e) }

// Events returns the extension's events in document order.
func (e *Extension) Events() []*Event { return collect[*Event](e) }

// Protocol is a complete, loaded protocol description.
type Protocol struct {
	// BaseTypes are the builtin scalar types shared by all extensions.
	BaseTypes []*BaseType

	// Extensions are ordered with imports before importers.
	Extensions []*Extension
}

// Extension returns the extension with the given header, or nil.
func (p *Protocol) Extension(header string) *Extension {
	for _, e := range p.Extensions {
		if e.Header == header {
			return e
		}
	}
	return nil
}

// BaseType returns the builtin type named name, or nil.
func (p *Protocol) BaseType(name string) *BaseType {
	for _, b := range p.BaseTypes {
		if b.Name == name {
			return b
		}
	}
	return nil
}
