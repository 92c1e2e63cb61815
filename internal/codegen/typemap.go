// SPDX-License-Identifier: MIT

package codegen

import (
	"strings"

	"github.com/albertocavalcante/gxgen/internal/xbase"
	"github.com/albertocavalcante/gxgen/model"
)

// objectXIDs maps the core XID types that have a wrapper object.
var objectXIDs = map[string]ObjectID{
	"WINDOW":   Window,
	"PIXMAP":   Pixmap,
	"DRAWABLE": Drawable,
	"GCONTEXT": GContext,
}

// objectOf returns the wrapper object of d, or nil if d is not one of the
// wrapped core XID types.
func objectOf(d model.Definition) *Object {
	if d == nil || !d.Common().InBase() {
		return nil
	}
	switch d.(type) {
	case *model.XID, *model.XIDUnion:
	default:
		return nil
	}
	if id, ok := objectXIDs[d.Common().Name]; ok {
		return object(id)
	}
	return nil
}

// cType returns the C type for d.
//
// With objects set, the wrapped XID types map to their object pointer
// types; otherwise they map to the 32-bit wire integer.
func (g *Generator) cType(d model.Definition, objects bool) string {
	if bt, ok := d.(*model.BaseType); ok {
		if ct, ok := xbase.CType(bt.Name); ok {
			return ct
		}
	}
	if obj := objectOf(d); obj != nil {
		if objects {
			return obj.Type
		}
		return "guint32"
	}
	if e, ok := d.(*model.Enum); ok {
		return g.enumNames[e]
	}
	return "GX" + g.note(d).ns.Camel()
}

// wireType returns the xcb type name for an aggregate d.
func (g *Generator) wireType(d model.Definition) string {
	return "xcb_" + g.note(d).ns.WireLower() + "_t"
}

// isAggregate reports whether d is passed by reference.
func isAggregate(d model.Definition) bool {
	switch d.(type) {
	case *model.Struct, *model.Union:
		return true
	}
	return false
}

// decl joins a C type and a name, keeping pointer stars against the name.
func decl(typ, name string) string {
	if strings.HasSuffix(typ, "*") {
		return typ + name
	}
	return typ + " " + name
}
