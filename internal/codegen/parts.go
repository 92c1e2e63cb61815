// SPDX-License-Identifier: MIT

package codegen

import (
	"bytes"
	"fmt"
	"slices"
)

// Section names one region of a generated file.
type Section int

const (
	// Per extension and object header sections.
	HeaderGuardOpen Section = iota
	HeaderIncludes
	HeaderTypedefs
	HeaderProtos
	HeaderGuardClose

	// Per extension and object source sections.
	SourceIncludes
	SourceFuncs

	// Process-wide sections.
	CookieTypes
	ErrorCodes
	ErrorDetails
	Dependencies
	Tests
)

var sectionNames = [...]string{
	HeaderGuardOpen:  "header-guard-open",
	HeaderIncludes:   "header-includes",
	HeaderTypedefs:   "header-typedefs",
	HeaderProtos:     "header-protos",
	HeaderGuardClose: "header-guard-close",
	SourceIncludes:   "source-includes",
	SourceFuncs:      "source-funcs",
	CookieTypes:      "cookie-types",
	ErrorCodes:       "error-codes",
	ErrorDetails:     "error-details",
	Dependencies:     "dependencies",
	Tests:            "tests",
}

func (s Section) String() string {
	if s >= 0 && int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return fmt.Sprintf("Section(%d)", s)
}

// PartKey addresses one part. Process-wide parts have an empty Ext and
// NoObject.
type PartKey struct {
	Ext     string
	Object  ObjectID
	Section Section
}

func globalKey(s Section) PartKey {
	return PartKey{Object: NoObject, Section: s}
}

// parts is an append-only store of text fragments. Text is only ever added
// to the end of a part, so a part's content follows emission order.
type parts struct {
	m     map[PartKey]*bytes.Buffer
	order []PartKey
}

func newParts() *parts {
	return &parts{m: make(map[PartKey]*bytes.Buffer)}
}

// buf returns the buffer for key, creating it on first use.
func (p *parts) buf(key PartKey) *bytes.Buffer {
	b, ok := p.m[key]
	if !ok {
		b = new(bytes.Buffer)
		p.m[key] = b
		p.order = append(p.order, key)
	}
	return b
}

// printf appends formatted text to the part at key.
func (p *parts) printf(key PartKey, format string, args ...any) {
	fmt.Fprintf(p.buf(key), format, args...)
}

// bytes returns the content of the part at key; nil if nothing was written.
func (p *parts) bytes(key PartKey) []byte {
	if b, ok := p.m[key]; ok {
		return b.Bytes()
	}
	return nil
}

// keys returns the keys of all parts in creation order.
func (p *parts) keys() []PartKey {
	return slices.Clone(p.order)
}
