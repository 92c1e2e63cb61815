// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package xbase provides the X11 base type table and the naming rules
// shared by the loader and the code generators.
package xbase

import "github.com/albertocavalcante/gxgen/model"

// BaseType describes one builtin protocol scalar.
type BaseType struct {
	Name  string
	Class model.BaseClass
	Size  int
	// CType is the GLib type used for it in generated code.
	CType string
}

// BaseTypes lists the builtin scalars in table order.
var BaseTypes = []BaseType{
	{"void", model.ClassVoid, 0, "void"},
	{"char", model.ClassChar, 1, "gchar"},
	{"float", model.ClassFloat, 4, "gfloat"},
	{"double", model.ClassFloat, 8, "gdouble"},
	{"BOOL", model.ClassBoolean, 1, "guint8"},
	{"BYTE", model.ClassUnsigned, 1, "guint8"},
	{"CARD8", model.ClassUnsigned, 1, "guint8"},
	{"CARD16", model.ClassUnsigned, 2, "guint16"},
	{"CARD32", model.ClassUnsigned, 4, "guint32"},
	{"CARD64", model.ClassUnsigned, 8, "guint64"},
	{"INT8", model.ClassSigned, 1, "gint8"},
	{"INT16", model.ClassSigned, 2, "gint16"},
	{"INT32", model.ClassSigned, 4, "gint32"},
	{"INT64", model.ClassSigned, 8, "gint64"},
	{"fd", model.ClassSigned, 4, "gint32"},
}

var ctypes = func() map[string]string {
	m := make(map[string]string, len(BaseTypes))
	for _, b := range BaseTypes {
		m[b.Name] = b.CType
	}
	return m
}()

// CType returns the GLib type for a builtin scalar.
func CType(name string) (string, bool) {
	t, ok := ctypes[name]
	return t, ok
}

// NewBaseTypes returns fresh model definitions for the builtin scalars.
func NewBaseTypes() []*model.BaseType {
	out := make([]*model.BaseType, len(BaseTypes))
	for i, b := range BaseTypes {
		out[i] = &model.BaseType{Def: model.Def{Name: b.Name}, Class: b.Class, Size: b.Size}
	}
	return out
}
