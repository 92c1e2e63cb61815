// SPDX-License-Identifier: MIT

package xbase

import (
	"errors"
	"strings"
	"testing"
)

func TestDictionary_Apply(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"CHARINFO", "CharInfo"},
		{"COLORITEM", "Coloritem"},
		{"POINT", "Point"},
		{"GCONTEXT", "GContext"},
		{"FONTPROP", "FontProp"},
		{"KEYSYM", "KeySym"},
		{"PICTFORMINFO", "PictFormInfo"},
		{"TIMECOORD", "TIMECOORD"},
		{"QueryTree", "QueryTree"},
		{"window", "Window"},
	}
	for _, tc := range tests {
		if got := DefaultDictionary.Apply(tc.input); got != tc.expected {
			t.Errorf("Apply(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDefaultDictionary(t *testing.T) {
	if got := DefaultDictionary.Len(); got != 44 {
		t.Errorf("DefaultDictionary.Len() = %d, want 44", got)
	}
	// Re-validate the table so an edit that breaks it fails here too.
	if _, err := NewDictionary(DefaultDictionary.entries...); err != nil {
		t.Errorf("default dictionary invalid: %v", err)
	}
}

func TestNewDictionary_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []Replacement
		reason  string
	}{
		{"length", []Replacement{{"COLORMAP", "ColorMaps"}}, "length"},
		{"spelling", []Replacement{{"ATOM", "Atam"}}, "beyond case"},
		{"identical", []Replacement{{"ATOM", "ATOM"}}, "identical"},
		{"empty", []Replacement{{"", ""}}, "empty"},
		{"lower token", []Replacement{{"Atom", "ATOM"}}, "not upper"},
		{"shadowed", []Replacement{{"INT", "Int"}, {"POINT", "Point"}}, "shadowed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDictionary(tc.entries...)
			var de *DictionaryError
			if !errors.As(err, &de) {
				t.Fatalf("NewDictionary() error = %v, want *DictionaryError", err)
			}
			if !strings.Contains(de.Reason, tc.reason) {
				t.Errorf("reason = %q, want it to mention %q", de.Reason, tc.reason)
			}
		})
	}
}

func TestMustDictionary_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid dictionary")
		}
	}()
	MustDictionary(Replacement{"AB", "Abc"})
}

func TestNilDictionary(t *testing.T) {
	var d *Dictionary
	if got := d.Apply("xid"); got != "Xid" {
		t.Errorf("nil Apply(xid) = %q, want %q", got, "Xid")
	}
}
