// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xbase

import (
	"slices"

	"github.com/albertocavalcante/gxgen/model"
)

// Namespace is the derived name of a definition, as words.
//
// Gen holds the words of the generated (GX) name and is never empty.
// Wire holds the words of the matching xcb name; when empty, Gen is used.
type Namespace struct {
	Gen  []string
	Wire []string
}

// Lower returns the generated name in lower_snake_case.
func (n Namespace) Lower() string { return Lower(n.Gen) }

// Upper returns the generated name in UPPER_SNAKE_CASE.
func (n Namespace) Upper() string { return Upper(n.Gen) }

// Camel returns the generated name in CamelCase.
func (n Namespace) Camel() string { return Camel(n.Gen) }

// WireLower returns the xcb name in lower_snake_case.
func (n Namespace) WireLower() string {
	if len(n.Wire) == 0 {
		return Lower(n.Gen)
	}
	return Lower(n.Wire)
}

// Append returns a namespace with words appended to both vocabularies.
func (n Namespace) Append(words ...string) Namespace {
	return Namespace{
		Gen:  append(slices.Clone(n.Gen), words...),
		Wire: append(slices.Clone(n.wire()), words...),
	}
}

func (n Namespace) wire() []string {
	if len(n.Wire) == 0 {
		return n.Gen
	}
	return n.Wire
}

// renames avoid clashes with GObject property accessors.
var renames = map[string]string{
	"GetProperty": "GetXProperty",
	"SetProperty": "SetXProperty",
}

// Namer derives namespaces using a dictionary.
type Namer struct {
	Dict *Dictionary
}

// DefaultNamer uses DefaultDictionary.
var DefaultNamer = &Namer{Dict: DefaultDictionary}

// Namespace derives the namespace for def.
//
// object, if non-empty, is the receiver object's name and becomes the first
// generated word. def supplies the owning extension, whose words are added
// to both vocabularies unless it is the core protocol. template is the
// name being derived, normally def's own name.
func (n *Namer) Namespace(object string, def model.Definition, template string) Namespace {
	var ns Namespace
	if object != "" {
		ns.Gen = append(ns.Gen, object)
	}

	gen := template
	if def != nil {
		c := def.Common()
		ext := ExtWords(c.Ext)
		ns.Gen = append(ns.Gen, ext...)
		ns.Wire = append(ns.Wire, ext...)
		if _, ok := def.(*model.Request); ok && c.InBase() {
			if to, ok := renames[template]; ok {
				gen = to
			}
		}
	}

	ns.Gen = append(ns.Gen, Split(n.Dict.Apply(gen))...)
	ns.Wire = append(ns.Wire, Split(template)...)
	if len(ns.Gen) == 0 {
		// Identifiers with no word characters still need a name.
		ns.Gen = []string{"_"}
	}
	return ns
}

// ExtWords returns the words ext adds to the names of its definitions.
// The core protocol adds none.
func ExtWords(ext *model.Extension) []string {
	if ext == nil || ext.IsBase() {
		return nil
	}
	if ext.Name != "" {
		return ExtensionWords(ext.Name)
	}
	return ExtensionWords(ext.Header)
}
