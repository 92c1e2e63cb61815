// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the in-memory form of an XCB protocol description.
//
// A Protocol is a list of extensions (the core protocol is the extension
// whose header is "xproto"), each holding its definitions in document
// order. Definitions form a closed set of kinds: base types, enums,
// typedefs, structs, unions, XID types, XID unions, requests, errors and
// events. Generators switch exhaustively over the concrete types.
//
// The model is built once by a loader and is read-only afterwards, except
// for a single annotation slot per definition that a generator may fill
// exactly once.
package model

import "fmt"

// BaseExtension is the header name of the core X11 protocol.
const BaseExtension = "xproto"

// Kind identifies the concrete type of a Definition.
type Kind int

const (
	KindBaseType Kind = iota
	KindEnum
	KindTypedef
	KindStruct
	KindUnion
	KindXID
	KindXIDUnion
	KindRequest
	KindError
	KindEvent
)

var kindNames = [...]string{
	KindBaseType: "base type",
	KindEnum:     "enum",
	KindTypedef:  "typedef",
	KindStruct:   "struct",
	KindUnion:    "union",
	KindXID:      "xid",
	KindXIDUnion: "xid union",
	KindRequest:  "request",
	KindError:    "error",
	KindEvent:    "event",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Definition is one named protocol entity.
//
// The set of implementations is closed: *BaseType, *Enum, *Typedef,
// *Struct, *Union, *XID, *XIDUnion, *Request, *Error and *Event.
type Definition interface {
	// Common returns the fields shared by every definition.
	Common() *Def
	// Kind returns the kind tag of the definition.
	Kind() Kind

	definition()
}

// Def holds the attributes every definition carries.
type Def struct {
	// Name is the protocol name, e.g. "QueryTree" or "WINDOW".
	Name string

	// Ext is the owning extension. Base types have a nil Ext.
	Ext *Extension

	note   any
	noted  bool
	noting bool
}

// Common implements Definition.
func (d *Def) Common() *Def { return d }

func (d *Def) definition() {}

// Annotate returns the definition's annotation, computing it with compute
// on first use. Later calls return the cached value and never call compute.
// Re-entrant annotation of the same definition panics.
func (d *Def) Annotate(compute func() any) any {
	if d.noted {
		return d.note
	}
	if d.noting {
		panic(fmt.Sprintf("model: recursive annotation of %q", d.Name))
	}
	d.noting = true
	d.note = compute()
	d.noting = false
	d.noted = true
	return d.note
}

// Annotation returns the cached annotation, if one has been set.
func (d *Def) Annotation() (any, bool) {
	return d.note, d.noted
}

// InBase reports whether the definition belongs to the core protocol.
// Base types count as core.
func (d *Def) InBase() bool {
	return d.Ext == nil || d.Ext.IsBase()
}

// BaseClass classifies the builtin scalar types.
type BaseClass int

const (
	ClassVoid BaseClass = iota
	ClassChar
	ClassFloat
	ClassBoolean
	ClassSigned
	ClassUnsigned
)

// BaseType is a builtin scalar such as CARD32 or BOOL.
type BaseType struct {
	Def
	Class BaseClass
	Size  int
}

// Kind implements Definition.
func (*BaseType) Kind() Kind { return KindBaseType }

// EnumItem is one member of an Enum.
type EnumItem struct {
	Name string
	// Value is the item's value. For bit items it is 1<<Bit.
	Value uint32
	// Bit is the bit position when IsBit is set.
	Bit   uint
	IsBit bool
}

// Enum is a named set of constant values.
type Enum struct {
	Def
	Items []EnumItem
}

// Kind implements Definition.
func (*Enum) Kind() Kind { return KindEnum }

// Typedef introduces a new name for an existing type.
type Typedef struct {
	Def
	Ref Definition
}

// Kind implements Definition.
func (*Typedef) Kind() Kind { return KindTypedef }

// Struct is a fixed layout aggregate.
type Struct struct {
	Def
	Fields []*Field
}

// Kind implements Definition.
func (*Struct) Kind() Kind { return KindStruct }

// Union is an aggregate whose members overlap.
type Union struct {
	Def
	Fields []*Field
}

// Kind implements Definition.
func (*Union) Kind() Kind { return KindUnion }

// XID is a 32-bit resource identifier type such as WINDOW.
type XID struct {
	Def
}

// Kind implements Definition.
func (*XID) Kind() Kind { return KindXID }

// XIDUnion is an identifier that may name any of several XID types.
type XIDUnion struct {
	Def
	Members []Definition
}

// Kind implements Definition.
func (*XIDUnion) Kind() Kind { return KindXIDUnion }

// Reply is the body of a request's reply.
type Reply struct {
	Fields []*Field
}

// Request is a protocol request, optionally with a reply.
type Request struct {
	Def
	Opcode int
	Fields []*Field
	Reply  *Reply
}

// Kind implements Definition.
func (*Request) Kind() Kind { return KindRequest }

// Error is a protocol error.
type Error struct {
	Def
	Number int
	Fields []*Field
}

// Kind implements Definition.
func (*Error) Kind() Kind { return KindError }

// Event is a protocol event.
type Event struct {
	Def
	Number     int
	NoSequence bool
	Fields     []*Field
}

// Kind implements Definition.
func (*Event) Kind() Kind { return KindEvent }

// Fields returns the field list of an aggregate definition, or nil for
// kinds without fields.
func Fields(d Definition) []*Field {
	switch d := d.(type) {
	case *Struct:
		return d.Fields
	case *Union:
		return d.Fields
	case *Request:
		return d.Fields
	case *Error:
		return d.Fields
	case *Event:
		return d.Fields
	}
	return nil
}
