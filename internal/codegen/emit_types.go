// SPDX-License-Identifier: MIT

package codegen

import (
	"bytes"
	"fmt"

	"github.com/albertocavalcante/gxgen/internal/xbase"
	"github.com/albertocavalcante/gxgen/model"
)

// objectStructs are core structs with a dedicated wrapper object.
var objectStructs = map[string]bool{
	"SCREEN": true,
}

// typedefs returns the connection header's typedef part for ext. Types
// live there so that every object header of ext can use them.
func (g *Generator) typedefs(ext *model.Extension) *bytes.Buffer {
	return g.parts.buf(PartKey{Ext: ext.Header, Object: Connection, Section: HeaderTypedefs})
}

// emitBaseAliases emits a GX alias for every integer and boolean base type.
func (g *Generator) emitBaseAliases() {
	base := g.proto.Extension(model.BaseExtension)
	if base == nil {
		return
	}
	buf := g.typedefs(base)
	n := 0
	for _, bt := range g.proto.BaseTypes {
		switch bt.Class {
		case model.ClassBoolean, model.ClassSigned, model.ClassUnsigned:
		default:
			continue
		}
		fmt.Fprintf(buf, "typedef %s GX%s;\n", g.cType(bt, false), g.note(bt).ns.Camel())
		n++
	}
	if n > 0 {
		buf.WriteString("\n")
	}
}

func (g *Generator) emitEnum(e *model.Enum) {
	if len(e.Items) == 0 {
		return
	}
	buf := g.typedefs(e.Ext)
	ns := g.note(e).ns
	buf.WriteString("typedef enum\n{\n")
	for _, item := range e.Items {
		name := "GX_" + ns.Append(xbase.Split(item.Name)...).Upper()
		if item.IsBit {
			fmt.Fprintf(buf, "\t%s = (1 << %d),\n", name, item.Bit)
		} else {
			fmt.Fprintf(buf, "\t%s = %d,\n", name, item.Value)
		}
	}
	fmt.Fprintf(buf, "} %s;\n\n", g.enumNames[e])
}

// emitXIDAlias emits XID types as 32-bit integers. The wrapped core XID
// types are objects and get no alias.
func (g *Generator) emitXIDAlias(def model.Definition) {
	if objectOf(def) != nil {
		return
	}
	fmt.Fprintf(g.typedefs(def.Common().Ext), "typedef guint32 %s;\n\n", g.cType(def, false))
}

func (g *Generator) emitTypedef(t *model.Typedef) {
	fmt.Fprintf(g.typedefs(t.Ext), "typedef %s %s;\n\n", g.cType(t.Ref, false), g.cType(t, false))
}

// emitStruct emits a struct or union and a size check against xcb's.
func (g *Generator) emitStruct(def model.Definition, fields []*model.Field, kind string) {
	if def.Common().InBase() && objectStructs[def.Common().Name] {
		g.logf("skipping struct %s: wrapped by an object", def.Common().Name)
		return
	}
	name := g.cType(def, false)
	buf := g.typedefs(def.Common().Ext)
	fmt.Fprintf(buf, "typedef %s {\n", kind)
	n := g.writeMembers(buf, fields)
	fmt.Fprintf(buf, "} %s;\n\n", name)
	if n > 0 {
		g.sizeCheck(name, g.wireType(def))
	}
}

func (g *Generator) sizeCheck(name, wire string) {
	g.parts.printf(globalKey(Tests), "\tg_assert (sizeof (%s) == sizeof (%s));\n", name, wire)
}

// writeMembers writes the fixed-size leading members of fields, one per
// line, and returns how many it wrote. Members stop at the first field
// whose size is only known at run time; xcb reaches those through
// accessors too.
func (g *Generator) writeMembers(buf *bytes.Buffer, fields []*model.Field) int {
	pads := 0
	n := 0
	for _, f := range members(fields) {
		switch {
		case f.IsPad():
			if f.Length.Value == 1 {
				fmt.Fprintf(buf, "\tguint8 pad%d;\n", pads)
			} else {
				fmt.Fprintf(buf, "\tguint8 pad%d[%d];\n", pads, f.Length.Value)
			}
			pads++
		case f.IsList():
			fmt.Fprintf(buf, "\t%s %s[%d];\n", g.cType(f.Type, false), f.Name, f.Length.Value)
		default:
			fmt.Fprintf(buf, "\t%s %s;\n", g.cType(f.Type, false), f.Name)
		}
		n++
	}
	return n
}

// members returns the leading fields of an aggregate that have a fixed
// size.
func members(fields []*model.Field) []*model.Field {
	for i, f := range fields {
		if f.IsValueParam() || f.Length.Variable() {
			return fields[:i]
		}
	}
	return fields
}

// hasMember reports whether the fixed part of fields has a member called
// name.
func hasMember(fields []*model.Field, name string) bool {
	for _, f := range members(fields) {
		if f.Name == name && !f.IsPad() {
			return true
		}
	}
	return false
}

func (g *Generator) emitEvent(ev *model.Event) {
	name := "GX" + g.note(ev).ns.Camel() + "Event"
	buf := g.typedefs(ev.Ext)
	buf.WriteString("typedef struct {\n")
	g.writeMembers(buf, ev.Fields)
	fmt.Fprintf(buf, "} %s;\n\n", name)

	offset := "0"
	if hasMember(ev.Fields, "window") {
		offset = fmt.Sprintf("offsetof (%s, window)", name)
	}
	g.eventDetails = append(g.eventDetails, fmt.Sprintf("{%d, %q, %s}", ev.Number, ev.Name, offset))
}

func (g *Generator) emitError(e *model.Error) {
	code := "GX_PROTOCOL_ERROR_" + g.note(e).ns.Upper()
	g.parts.printf(globalKey(ErrorCodes), "\t%s,\n", code)
	name := xbase.Upper(xbase.Split(e.Name))
	g.parts.printf(globalKey(ErrorDetails), "\t{%d, %s, %q},\n", e.Number, code, name)
}
