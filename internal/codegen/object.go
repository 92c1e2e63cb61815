// SPDX-License-Identifier: MIT

package codegen

import (
	"fmt"

	"github.com/albertocavalcante/gxgen/model"
)

// ObjectID identifies a receiver object.
type ObjectID int

const (
	Connection ObjectID = iota
	Drawable
	Pixmap
	Window
	GContext

	// NoObject keys the process-wide parts, which belong to no receiver.
	NoObject ObjectID = -1
)

// Object describes a receiver: the handle a generated request function is
// called on.
type Object struct {
	ID ObjectID

	// Name is the object's word in generated names, e.g. "Window".
	Name string

	// Lower is the object's part of file and function names.
	Lower string

	// Type is the C pointer type of the receiver, e.g. "GXWindow *".
	Type string

	// Var is the receiver parameter name.
	Var string

	// Field is the request field the receiver is bound to. It is empty
	// for the connection, which binds no field.
	Field string

	// XID formats the expression passing a variable of this object's type
	// to xcb.
	XID string
}

// Objects lists every receiver in emission order.
var Objects = []*Object{
	{ID: Connection, Name: "Connection", Lower: "connection", Type: "GXConnection *", Var: "connection"},
	{ID: Drawable, Name: "Drawable", Lower: "drawable", Type: "GXDrawable *", Var: "drawable", Field: "drawable",
		XID: "gx_drawable_get_xid (%s)"},
	{ID: Pixmap, Name: "Pixmap", Lower: "pixmap", Type: "GXPixmap *", Var: "pixmap", Field: "pixmap",
		XID: "gx_drawable_get_xid (GX_DRAWABLE (%s))"},
	{ID: Window, Name: "Window", Lower: "window", Type: "GXWindow *", Var: "window", Field: "window",
		XID: "gx_drawable_get_xid (GX_DRAWABLE (%s))"},
	{ID: GContext, Name: "GContext", Lower: "gcontext", Type: "GXGContext *", Var: "gc", Field: "gc",
		XID: "gx_gcontext_get_xcb_gcontext (%s)"},
}

// xid returns the expression passing the variable name to xcb.
func (o *Object) xid(name string) string {
	return fmt.Sprintf(o.XID, name)
}

// object returns the receiver with the given id.
func object(id ObjectID) *Object {
	if id < 0 || int(id) >= len(Objects) {
		panic(fmt.Sprintf("codegen: no object %d", id))
	}
	return Objects[id]
}

// classify picks the receiver of req and the field bound to it.
//
// Requests with fewer than two fields belong to the connection. Otherwise
// fields are scanned in order, skipping the opcode, padding and length, and
// the first one named after a receiver's field wins.
func classify(req *model.Request) (*Object, *model.Field) {
	if len(req.Fields) >= 2 {
		for _, f := range req.Fields {
			if isHeaderField(f) {
				continue
			}
			for _, obj := range Objects[1:] {
				if f.Name == obj.Field {
					return obj, f
				}
			}
		}
	}
	return object(Connection), nil
}

// isHeaderField reports whether f is filled in by xcb rather than the
// caller.
func isHeaderField(f *model.Field) bool {
	switch f.Name {
	case "opcode", "length":
		return true
	}
	return f.IsPad()
}
