// SPDX-License-Identifier: MIT

package codegen

import (
	"fmt"

	"github.com/albertocavalcante/gxgen/internal/xbase"
	"github.com/albertocavalcante/gxgen/model"
)

// annotation is what the generator derives once per definition.
type annotation struct {
	// namer produced ns.
	namer *xbase.Namer
	ns    xbase.Namespace

	// Request only.
	owner *Object
	bound *model.Field
	// local is the request's own name without object or extension words,
	// e.g. "query_tree".
	local string
}

// note returns the annotation of def, computing it on first use.
//
// The annotation stored on def belongs to the first namer that saw it.
// Generators using another namer keep their own copy.
func (g *Generator) note(def model.Definition) *annotation {
	v := def.Common().Annotate(func() any { return g.annotate(def) })
	a, ok := v.(*annotation)
	if !ok {
		panic(fmt.Sprintf("codegen: %q carries a foreign annotation %T", def.Common().Name, v))
	}
	if a.namer == g.namer {
		return a
	}
	if own, ok := g.notes[def]; ok {
		return own
	}
	own := g.annotate(def)
	g.notes[def] = own
	return own
}

func (g *Generator) annotate(def model.Definition) *annotation {
	c := def.Common()
	req, ok := def.(*model.Request)
	if !ok {
		return &annotation{namer: g.namer, ns: g.namer.Namespace("", def, c.Name)}
	}
	owner, bound := classify(req)
	ns := g.namer.Namespace(owner.Name, def, c.Name)
	skip := 1 + len(xbase.ExtWords(c.Ext))
	return &annotation{
		namer: g.namer,
		ns:    ns,
		owner: owner,
		bound: bound,
		local: xbase.Lower(ns.Gen[skip:]),
	}
}

// annotateAll annotates every loaded definition, including those of
// extensions that are not emitted, and settles enum type names.
func (g *Generator) annotateAll() {
	taken := make(map[string]bool)
	var enums []*model.Enum
	for _, ext := range g.proto.Extensions {
		for _, def := range ext.Definitions {
			a := g.note(def)
			switch def := def.(type) {
			case *model.Enum:
				enums = append(enums, def)
			case *model.Request, *model.Event, *model.Error:
			default:
				taken[a.ns.Camel()] = true
			}
		}
	}
	for _, e := range enums {
		name := "GX" + g.note(e).ns.Camel()
		if taken[g.note(e).ns.Camel()] {
			// The Atom and Cursor enums share their names with XID types.
			name += "Enum"
		}
		g.enumNames[e] = name
	}
}
