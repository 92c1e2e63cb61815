// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

// LengthKind says how the element count of a list field is known.
type LengthKind int

const (
	// LengthLiteral is a fixed count known from the description.
	LengthLiteral LengthKind = iota
	// LengthFieldRef is the value of a sibling field.
	LengthFieldRef
	// LengthExpr is a computed expression over sibling fields.
	LengthExpr
	// LengthImplicit is a request list whose count follows from the
	// request length.
	LengthImplicit
)

// Length describes the element count of a list field.
type Length struct {
	Kind LengthKind
	// Value is the count for LengthLiteral.
	Value int
	// Ref names the sibling field for LengthFieldRef.
	Ref string
	// Expr is a printable rendering of a LengthExpr.
	Expr string
}

// Variable reports whether the count is only known at run time.
func (l *Length) Variable() bool {
	return l != nil && l.Kind != LengthLiteral
}

// ValueParam is a sparse attribute list: a bitmask followed by one value
// per set bit.
type ValueParam struct {
	MaskType Definition
	MaskName string
	ListName string
}

// Field is one member of a struct, union, request, reply, error or event.
type Field struct {
	Name string
	// Type is the referenced definition. It is nil for value params.
	Type Definition
	// Length is non-nil for list fields.
	Length *Length
	// ValueParam is non-nil for mask/value fields.
	ValueParam *ValueParam
}

// IsPad reports whether the field is padding.
func (f *Field) IsPad() bool { return f.Name == "pad" }

// IsList reports whether the field is a list.
func (f *Field) IsList() bool { return f.Length != nil }

// IsValueParam reports whether the field is a mask/value parameter.
func (f *Field) IsValueParam() bool { return f.ValueParam != nil }

// LastField returns the final field of fields, or nil.
func LastField(fields []*Field) *Field {
	if len(fields) == 0 {
		return nil
	}
	return fields[len(fields)-1]
}
