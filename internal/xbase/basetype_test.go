// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xbase

import "testing"

func TestCType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"void", "void"},
		{"char", "gchar"},
		{"float", "gfloat"},
		{"double", "gdouble"},
		{"BOOL", "guint8"},
		{"BYTE", "guint8"},
		{"CARD8", "guint8"},
		{"CARD16", "guint16"},
		{"CARD32", "guint32"},
		{"INT8", "gint8"},
		{"INT16", "gint16"},
		{"INT32", "gint32"},
	}
	for _, tt := range tests {
		got, ok := CType(tt.name)
		if !ok || got != tt.want {
			t.Errorf("CType(%q) = %q, %v; want %q, true", tt.name, got, ok, tt.want)
		}
	}
	if _, ok := CType("WINDOW"); ok {
		t.Error("CType(WINDOW) should not be a base type")
	}
}

func TestNewBaseTypes(t *testing.T) {
	bts := NewBaseTypes()
	if len(bts) != len(BaseTypes) {
		t.Fatalf("got %d base types, want %d", len(bts), len(BaseTypes))
	}
	for i, b := range bts {
		if b.Name != BaseTypes[i].Name || b.Size != BaseTypes[i].Size {
			t.Errorf("base type %d = %s/%d, want %s/%d", i, b.Name, b.Size, BaseTypes[i].Name, BaseTypes[i].Size)
		}
		if _, ok := CType(b.Name); !ok {
			t.Errorf("CType(%q) not found", b.Name)
		}
	}
}
