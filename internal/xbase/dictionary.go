// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xbase

import (
	"fmt"
	"strings"
)

// Replacement rewrites one all-caps protocol token into mixed case.
type Replacement struct {
	Upper string
	Camel string
}

// Dictionary is an ordered list of replacements applied to type names
// before splitting, so that "CHARINFO" becomes "CharInfo" and then
// [Char Info].
//
// Replacements overwrite text in place, so each Camel spelling must be the
// same length as its Upper token and differ from it only in case.
// Entries apply in order; an entry must not contain an earlier entry,
// otherwise the earlier one would rewrite part of it first and the later
// entry could never match.
type Dictionary struct {
	entries []Replacement
}

// DictionaryError reports an invalid dictionary entry.
type DictionaryError struct {
	Index  int
	Entry  Replacement
	Reason string
}

func (e *DictionaryError) Error() string {
	return fmt.Sprintf("dictionary entry %d (%q -> %q): %s", e.Index, e.Entry.Upper, e.Entry.Camel, e.Reason)
}

// NewDictionary validates entries and returns a Dictionary.
func NewDictionary(entries ...Replacement) (*Dictionary, error) {
	for i, r := range entries {
		fail := func(reason string) error {
			return &DictionaryError{Index: i, Entry: r, Reason: reason}
		}
		switch {
		case r.Upper == "":
			return nil, fail("empty token")
		case len(r.Upper) != len(r.Camel):
			return nil, fail(fmt.Sprintf("length %d != %d", len(r.Upper), len(r.Camel)))
		case !strings.EqualFold(r.Upper, r.Camel):
			return nil, fail("spellings differ beyond case")
		case r.Upper == r.Camel:
			return nil, fail("replacement is identical to token")
		case r.Upper != strings.ToUpper(r.Upper):
			return nil, fail("token is not upper case")
		}
		for j, prev := range entries[:i] {
			if strings.Contains(r.Upper, prev.Upper) {
				return nil, fail(fmt.Sprintf("shadowed by earlier entry %d %q", j, prev.Upper))
			}
		}
	}
	return &Dictionary{entries: entries}, nil
}

// MustDictionary is like NewDictionary but panics on error.
func MustDictionary(entries ...Replacement) *Dictionary {
	d, err := NewDictionary(entries...)
	if err != nil {
		panic(err)
	}
	return d
}

// Apply rewrites every dictionary token in name and uppercases a leading
// lowercase letter.
func (d *Dictionary) Apply(name string) string {
	if d != nil {
		for _, r := range d.entries {
			name = strings.ReplaceAll(name, r.Upper, r.Camel)
		}
	}
	return Capitalize(name)
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// DefaultDictionary holds the X11 type name tokens, longest first.
var DefaultDictionary = MustDictionary(
	Replacement{"RECTANGLE", "Rectangle"},
	Replacement{"TIMESTAMP", "Timestamp"},
	Replacement{"COLORMAP", "Colormap"},
	Replacement{"COLORITEM", "Coloritem"},
	Replacement{"FONTABLE", "Fontable"},
	Replacement{"CONTEXT", "Context"},
	Replacement{"COUNTER", "Counter"},
	Replacement{"PICTURE", "Picture"},
	Replacement{"SEGMENT", "Segment"},
	Replacement{"TRIGGER", "Trigger"},
	Replacement{"BUTTON", "Button"},
	Replacement{"CURSOR", "Cursor"},
	Replacement{"DIRECT", "Direct"},
	Replacement{"FORMAT", "Format"},
	Replacement{"REGION", "Region"},
	Replacement{"SCREEN", "Screen"},
	Replacement{"SYSTEM", "System"},
	Replacement{"VISUAL", "Visual"},
	Replacement{"DEPTH", "Depth"},
	Replacement{"FIXED", "Fixed"},
	Replacement{"GLYPH", "Glyph"},
	Replacement{"POINT", "Point"},
	Replacement{"VALUE", "Value"},
	Replacement{"ATOM", "Atom"},
	Replacement{"CHAR", "Char"},
	Replacement{"CODE", "Code"},
	Replacement{"FONT", "Font"},
	Replacement{"FORM", "Form"},
	Replacement{"HOST", "Host"},
	Replacement{"KIND", "Kind"},
	Replacement{"INFO", "Info"},
	Replacement{"LINE", "Line"},
	Replacement{"PICT", "Pict"},
	Replacement{"PROP", "Prop"},
	Replacement{"SPAN", "Span"},
	Replacement{"TEST", "Test"},
	Replacement{"TYPE", "Type"},
	Replacement{"ARC", "Arc"},
	Replacement{"FIX", "Fix"},
	Replacement{"INT", "Int"},
	Replacement{"KEY", "Key"},
	Replacement{"MAP", "Map"},
	Replacement{"SET", "Set"},
	Replacement{"SYM", "Sym"},
)
