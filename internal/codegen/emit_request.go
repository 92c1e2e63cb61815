// SPDX-License-Identifier: MIT

package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/albertocavalcante/gxgen/model"
)

// constructorRequests are core requests that create a wrapped object. The
// objects' constructors issue them by hand.
var constructorRequests = map[string]bool{
	"CreateWindow": true,
	"CreatePixmap": true,
	"CreateGC":     true,
}

// request gathers the names used while emitting one request.
type request struct {
	*model.Request
	owner *Object
	bound *model.Field

	fn         string // gx_window_query_tree
	wire       string // xcb_query_tree
	local      string // query_tree
	cookieTag  string // GX_COOKIE_WINDOW_QUERY_TREE
	cookieType string // xcb_query_tree_cookie_t
	replyType  string // GXWindowQueryTreeReply
	x11Type    string // GXWindowQueryTreeX11Reply
	fail       string // NULL or FALSE
	ret        string // return type of the reply and sync functions
	hasMask    bool
}

func (g *Generator) newRequest(req *model.Request) *request {
	a := g.note(req)
	r := &request{
		Request:   req,
		owner:     a.owner,
		bound:     a.bound,
		fn:        "gx_" + a.ns.Lower(),
		wire:      "xcb_" + a.ns.WireLower(),
		local:     a.local,
		cookieTag: "GX_COOKIE_" + a.ns.Upper(),
	}
	if req.Reply != nil {
		r.cookieType = r.wire + "_cookie_t"
		r.replyType = "GX" + a.ns.Camel() + "Reply"
		r.x11Type = "GX" + a.ns.Camel() + "X11Reply"
		r.fail = "NULL"
		r.ret = r.replyType + " *"
	} else {
		r.cookieType = "xcb_void_cookie_t"
		r.fail = "FALSE"
		r.ret = "gboolean"
	}
	for _, f := range req.Fields {
		if f.IsValueParam() {
			r.hasMask = true
		}
	}
	return r
}

// issue returns the xcb function that sends the request. Requests without
// a reply use the checked variant so that errors reach the cookie.
func (r *request) issue() string {
	if r.Reply == nil {
		return r.wire + "_checked"
	}
	return r.wire
}

func (g *Generator) emitRequest(req *model.Request) {
	if req.InBase() && constructorRequests[req.Name] {
		g.logf("skipping request %s: issued by a constructor", req.Name)
		return
	}
	r := g.newRequest(req)
	key := func(s Section) PartKey { return PartKey{Ext: req.Ext.Header, Object: r.owner.ID, Section: s} }
	protos := g.parts.buf(key(HeaderProtos))
	funcs := g.parts.buf(key(SourceFuncs))

	g.parts.printf(globalKey(CookieTypes), "\t%s,\n", r.cookieTag)

	if req.Reply != nil {
		g.emitReplyTypes(r, g.parts.buf(key(HeaderTypedefs)))
		g.emitListAccessors(r, protos, funcs)
		g.emitReplyFree(r, protos, funcs)
	}
	g.emitAsync(r, protos, funcs)
	g.emitReplyFunc(r, protos, funcs)
	g.emitSync(r, protos, funcs)
}

// signature formats a function name and parameters, aligning continuation
// lines with the opening parenthesis.
func signature(name string, params []string) string {
	if len(params) == 0 {
		return name + " (void)"
	}
	sep := ",\n" + strings.Repeat(" ", len(name)+2)
	return name + " (" + strings.Join(params, sep) + ")"
}

// function writes a prototype to protos and opens the definition in funcs.
func function(protos, funcs *bytes.Buffer, ret, name string, params []string) {
	sig := signature(name, params)
	fmt.Fprintf(protos, "%s\n%s;\n\n", ret, sig)
	fmt.Fprintf(funcs, "%s\n%s\n{\n", ret, sig)
}

// call writes a multi-line call statement: indent, lhs, then fn applied
// to args, one argument per line.
func call(buf *bytes.Buffer, indent, lhs, fn string, args ...string) {
	fmt.Fprintf(buf, "%s%s%s (\n", indent, lhs, fn)
	for i, arg := range args {
		sep := ",\n"
		if i == len(args)-1 {
			sep = ");\n"
		}
		fmt.Fprintf(buf, "%s\t%s%s", indent, arg, sep)
	}
}

const xcbConnection = "gx_connection_get_xcb_connection (connection)"

// params returns the caller-facing parameters of r: the receiver followed
// by every field the caller supplies.
func (g *Generator) params(r *request) []string {
	params := []string{decl(r.owner.Type, r.owner.Var)}
	for _, f := range r.Fields {
		if isHeaderField(f) || f == r.bound {
			continue
		}
		switch {
		case f.IsValueParam():
			params = append(params, "GXMaskValueItem *mask_value_items")
		case f.IsList():
			if f.Length.Kind == model.LengthImplicit {
				params = append(params, "guint32 "+f.Name+"_len")
			}
			params = append(params, decl("const "+g.cType(f.Type, false)+" *", f.Name))
		case isAggregate(f.Type):
			params = append(params, decl(g.cType(f.Type, false)+" *", f.Name))
		default:
			params = append(params, decl(g.cType(f.Type, true), f.Name))
		}
	}
	return params
}

// wireArgs returns the arguments of the xcb request function.
func (g *Generator) wireArgs(r *request) []string {
	args := []string{xcbConnection}
	for _, f := range r.Fields {
		if isHeaderField(f) {
			continue
		}
		switch {
		case f == r.bound:
			args = append(args, r.owner.xid(r.owner.Var))
		case f.IsValueParam():
			args = append(args, "value_mask", "value_list")
		case f.IsList():
			if f.Length.Kind == model.LengthImplicit {
				args = append(args, f.Name+"_len")
			}
			if isAggregate(f.Type) {
				args = append(args, fmt.Sprintf("(const %s *)%s", g.wireType(f.Type), f.Name))
			} else {
				args = append(args, f.Name)
			}
		case isAggregate(f.Type):
			args = append(args, fmt.Sprintf("*(%s *)%s", g.wireType(f.Type), f.Name))
		default:
			if obj := objectOf(f.Type); obj != nil {
				args = append(args, obj.xid(f.Name))
			} else {
				args = append(args, f.Name)
			}
		}
	}
	return args
}

func (g *Generator) emitReplyTypes(r *request, typedefs *bytes.Buffer) {
	typedefs.WriteString("typedef struct {\n")
	n := g.writeMembers(typedefs, r.Reply.Fields)
	fmt.Fprintf(typedefs, "} %s;\n\n", r.x11Type)
	typedefs.WriteString("typedef struct {\n")
	typedefs.WriteString("\tGXConnection *connection;\n")
	fmt.Fprintf(typedefs, "\t%s *x11_reply;\n", r.x11Type)
	fmt.Fprintf(typedefs, "} %s;\n\n", r.replyType)
	if n > 0 {
		g.sizeCheck(r.x11Type, r.wire+"_reply_t")
	}
}

// emitListAccessors emits a getter and a matching free function for a
// trailing reply list whose length is held by another field.
func (g *Generator) emitListAccessors(r *request, protos, funcs *bytes.Buffer) {
	fields := r.Reply.Fields
	last := model.LastField(fields)
	if last == nil || !last.IsList() || last.Length.Kind != model.LengthFieldRef {
		return
	}
	// The list must directly follow the fixed part of the reply.
	if len(members(fields)) != len(fields)-1 {
		return
	}
	if bt, ok := last.Type.(*model.BaseType); ok && bt.Class == model.ClassVoid {
		return
	}

	reply := r.local + "_reply"
	getter := fmt.Sprintf("%s_get_%s", r.fn, last.Name)
	free := fmt.Sprintf("%s_free_%s", r.fn, last.Name)
	params := []string{decl(r.replyType+" *", reply)}
	count := fmt.Sprintf("%s->x11_reply->%s", reply, last.Length.Ref)

	if obj := objectOf(last.Type); obj != nil {
		function(protos, funcs, "GList *", getter, params)
		fmt.Fprintf(funcs, "\tguint32 *p = (guint32 *)(%s->x11_reply + 1);\n", reply)
		funcs.WriteString("\tGList *tmp = NULL;\n")
		funcs.WriteString("\tint i;\n\n")
		g.writeConnectionCheck(funcs, reply)
		fmt.Fprintf(funcs, "\tfor (i = 0; i < %s; i++) {\n", count)
		fmt.Fprintf(funcs, "\t\t%s = _gx_%s_find_from_xid (%s->connection, p[i]);\n", decl(obj.Type, "item"), obj.Lower, reply)
		funcs.WriteString("\t\tif (!item)\n")
		fmt.Fprintf(funcs, "\t\t\titem = g_object_new (gx_%s_get_type (),\n", obj.Lower)
		fmt.Fprintf(funcs, "\t\t\t                     \"connection\", %s->connection,\n", reply)
		funcs.WriteString("\t\t\t                     \"xid\", p[i],\n")
		funcs.WriteString("\t\t\t                     \"wrap\", TRUE,\n")
		funcs.WriteString("\t\t\t                     NULL);\n")
		funcs.WriteString("\t\ttmp = g_list_prepend (tmp, item);\n")
		funcs.WriteString("\t}\n\n")
		funcs.WriteString("\treturn g_list_reverse (tmp);\n}\n\n")

		function(protos, funcs, "void", free, []string{decl("GList *", last.Name)})
		fmt.Fprintf(funcs, "\tg_list_foreach (%s, (GFunc)g_object_unref, NULL);\n", last.Name)
		fmt.Fprintf(funcs, "\tg_list_free (%s);\n}\n\n", last.Name)
		return
	}

	elem := g.cType(last.Type, false)
	function(protos, funcs, "GArray *", getter, params)
	fmt.Fprintf(funcs, "\t%s = (%s *)(%s->x11_reply + 1);\n", decl(elem+" *", "p"), elem, reply)
	funcs.WriteString("\tGArray *tmp;\n\n")
	g.writeConnectionCheck(funcs, reply)
	fmt.Fprintf(funcs, "\ttmp = g_array_new (TRUE, FALSE, sizeof (%s));\n", elem)
	fmt.Fprintf(funcs, "\ttmp = g_array_append_vals (tmp, p, %s);\n\n", count)
	funcs.WriteString("\treturn tmp;\n}\n\n")

	function(protos, funcs, "void", free, []string{decl("GArray *", last.Name)})
	fmt.Fprintf(funcs, "\tg_array_free (%s, TRUE);\n}\n\n", last.Name)
}

// writeConnectionCheck makes an accessor return NULL once the connection a
// reply came from has been released.
func (g *Generator) writeConnectionCheck(buf *bytes.Buffer, reply string) {
	fmt.Fprintf(buf, "\tif (!%s->connection)\n\t\treturn NULL;\n\n", reply)
}

func (g *Generator) emitReplyFree(r *request, protos, funcs *bytes.Buffer) {
	reply := r.local + "_reply"
	function(protos, funcs, "void", r.fn+"_reply_free", []string{decl(r.replyType+" *", reply)})
	fmt.Fprintf(funcs, "\tif (%s->connection)\n", reply)
	fmt.Fprintf(funcs, "\t\tg_object_remove_weak_pointer (G_OBJECT (%s->connection), (gpointer *)&%s->connection);\n", reply, reply)
	fmt.Fprintf(funcs, "\tfree (%s->x11_reply);\n", reply)
	fmt.Fprintf(funcs, "\tg_slice_free (%s, %s);\n}\n\n", r.replyType, reply)
}

// writeMaskDecls declares the locals a mask/value parameter expands into.
func writeMaskDecls(buf *bytes.Buffer, r *request) {
	if !r.hasMask {
		return
	}
	buf.WriteString("\tguint32 value_list_len;\n")
	buf.WriteString("\tguint32 *value_list;\n")
	buf.WriteString("\tguint32 value_mask;\n")
}

// writeMaskFill expands the mask/value parameter into a bitmask and a
// packed value list.
func writeMaskFill(buf *bytes.Buffer, r *request) {
	if !r.hasMask {
		return
	}
	buf.WriteString("\tvalue_list_len = gx_mask_value_items_get_count (mask_value_items);\n")
	buf.WriteString("\tvalue_list = alloca (value_list_len * 4);\n")
	buf.WriteString("\tgx_mask_value_items_get_list (mask_value_items, &value_mask, value_list);\n\n")
}

// connectionOf returns the expression fetching a new reference to the
// receiver's connection.
func (r *request) connectionOf() string {
	return fmt.Sprintf("gx_%s_get_connection (%s)", r.owner.Lower, r.owner.Var)
}

func (g *Generator) emitAsync(r *request, protos, funcs *bytes.Buffer) {
	function(protos, funcs, "GXCookie *", r.fn+"_async", g.params(r))
	own := r.owner.ID != Connection
	if own {
		fmt.Fprintf(funcs, "\tGXConnection *connection = %s;\n", r.connectionOf())
	}
	fmt.Fprintf(funcs, "\t%s xcb_cookie;\n", r.cookieType)
	funcs.WriteString("\tGXCookie *cookie;\n")
	writeMaskDecls(funcs, r)
	funcs.WriteString("\n")
	writeMaskFill(funcs, r)

	call(funcs, "\t", "xcb_cookie = ", r.issue(), g.wireArgs(r)...)
	funcs.WriteString("\n")
	fmt.Fprintf(funcs, "\tcookie = gx_cookie_new (connection, %s, xcb_cookie.sequence);\n", r.cookieTag)
	funcs.WriteString("\tgx_connection_register_cookie (connection, cookie);\n")
	if own {
		funcs.WriteString("\tg_object_unref (connection);\n")
	}
	funcs.WriteString("\n\treturn cookie;\n}\n\n")
}

// writeFailure reports xcb_error through the GError slot, runs cleanup and
// returns the failure value.
func writeFailure(buf *bytes.Buffer, indent, fail string, cleanup ...string) {
	fmt.Fprintf(buf, "%sg_set_error (error,\n", indent)
	fmt.Fprintf(buf, "%s             GX_PROTOCOL_ERROR,\n", indent)
	fmt.Fprintf(buf, "%s             gx_protocol_error_from_xcb_error (xcb_error),\n", indent)
	fmt.Fprintf(buf, "%s             \"Protocol Error\");\n", indent)
	for _, line := range cleanup {
		fmt.Fprintf(buf, "%s%s\n", indent, line)
	}
	fmt.Fprintf(buf, "%sreturn %s;\n", indent, fail)
}

// writeNoReply returns the failure value when xcb produced neither a reply
// nor an error, which happens once the connection has shut down.
func writeNoReply(buf *bytes.Buffer, indent, fail string, cleanup ...string) {
	fmt.Fprintf(buf, "%sif (!x11_reply) {\n", indent)
	for _, line := range cleanup {
		fmt.Fprintf(buf, "%s\t%s\n", indent, line)
	}
	fmt.Fprintf(buf, "%s\treturn %s;\n", indent, fail)
	fmt.Fprintf(buf, "%s}\n", indent)
}

func writeNewReply(buf *bytes.Buffer, r *request) {
	fmt.Fprintf(buf, "\treply = g_slice_new (%s);\n", r.replyType)
	buf.WriteString("\treply->connection = connection;\n")
	buf.WriteString("\tg_object_add_weak_pointer (G_OBJECT (connection), (gpointer *)&reply->connection);\n")
	buf.WriteString("\treply->x11_reply = x11_reply;\n")
}

const (
	unregister = "gx_connection_unregister_cookie (connection, cookie);"
	freeError  = "free (xcb_error);"
)

// emitReplyFunc emits the function that turns a cookie into a reply. The
// cookie is unregistered exactly once on every path.
func (g *Generator) emitReplyFunc(r *request, protos, funcs *bytes.Buffer) {
	function(protos, funcs, r.ret, r.fn+"_reply", []string{"GXCookie *cookie", "GError **error"})
	funcs.WriteString("\tGXConnection *connection = gx_cookie_get_connection (cookie);\n")
	fmt.Fprintf(funcs, "\t%s xcb_cookie;\n", r.cookieType)
	funcs.WriteString("\txcb_generic_error_t *xcb_error;\n")
	if r.Reply != nil {
		fmt.Fprintf(funcs, "\t%s *x11_reply;\n", r.x11Type)
		fmt.Fprintf(funcs, "\t%s *reply;\n", r.replyType)
	}
	fmt.Fprintf(funcs, "\n\tg_return_val_if_fail (error == NULL || *error == NULL, %s);\n\n", r.fail)

	// Replies can arrive out of order, so the cookie may already hold the
	// reply or error.
	if r.Reply != nil {
		fmt.Fprintf(funcs, "\tx11_reply = (%s *)gx_cookie_get_reply (cookie);\n", r.x11Type)
	}
	funcs.WriteString("\txcb_error = gx_cookie_get_error (cookie);\n")
	funcs.WriteString("\tif (xcb_error) {\n")
	writeFailure(funcs, "\t\t", r.fail, unregister)
	funcs.WriteString("\t}\n\n")

	if r.Reply != nil {
		funcs.WriteString("\tif (!x11_reply) {\n")
		funcs.WriteString("\t\txcb_cookie.sequence = gx_cookie_get_sequence (cookie);\n")
		call(funcs, "\t\t", fmt.Sprintf("x11_reply = (%s *)", r.x11Type), r.wire+"_reply",
			xcbConnection, "xcb_cookie", "&xcb_error")
		funcs.WriteString("\t\tif (xcb_error) {\n")
		writeFailure(funcs, "\t\t\t", r.fail, freeError, unregister)
		funcs.WriteString("\t\t}\n")
		writeNoReply(funcs, "\t\t", r.fail, unregister)
		funcs.WriteString("\t}\n\n")
		funcs.WriteString("\t" + unregister + "\n\n")
		writeNewReply(funcs, r)
		funcs.WriteString("\n\treturn reply;\n}\n\n")
		return
	}

	funcs.WriteString("\txcb_cookie.sequence = gx_cookie_get_sequence (cookie);\n")
	call(funcs, "\t", "xcb_error = ", "xcb_request_check", xcbConnection, "xcb_cookie")
	funcs.WriteString("\tif (xcb_error) {\n")
	writeFailure(funcs, "\t\t", r.fail, freeError, unregister)
	funcs.WriteString("\t}\n\n")
	funcs.WriteString("\t" + unregister + "\n\n")
	funcs.WriteString("\treturn TRUE;\n}\n\n")
}

// emitSync emits the blocking convenience function, which sends the
// request and waits for its outcome without a GXCookie.
func (g *Generator) emitSync(r *request, protos, funcs *bytes.Buffer) {
	function(protos, funcs, r.ret, r.fn, append(g.params(r), "GError **error"))
	own := r.owner.ID != Connection
	if own {
		funcs.WriteString("\tGXConnection *connection;\n")
	}
	fmt.Fprintf(funcs, "\t%s xcb_cookie;\n", r.cookieType)
	funcs.WriteString("\txcb_generic_error_t *xcb_error = NULL;\n")
	if r.Reply != nil {
		fmt.Fprintf(funcs, "\t%s *x11_reply;\n", r.x11Type)
		fmt.Fprintf(funcs, "\t%s *reply;\n", r.replyType)
	}
	writeMaskDecls(funcs, r)
	fmt.Fprintf(funcs, "\n\tg_return_val_if_fail (error == NULL || *error == NULL, %s);\n\n", r.fail)

	var cleanup []string
	if own {
		fmt.Fprintf(funcs, "\tconnection = %s;\n\n", r.connectionOf())
		cleanup = []string{"g_object_unref (connection);"}
	}
	writeMaskFill(funcs, r)

	call(funcs, "\t", "xcb_cookie = ", r.issue(), g.wireArgs(r)...)
	if r.Reply != nil {
		call(funcs, "\t", fmt.Sprintf("x11_reply = (%s *)", r.x11Type), r.wire+"_reply",
			xcbConnection, "xcb_cookie", "&xcb_error")
	} else {
		call(funcs, "\t", "xcb_error = ", "xcb_request_check", xcbConnection, "xcb_cookie")
	}
	funcs.WriteString("\tif (xcb_error) {\n")
	writeFailure(funcs, "\t\t", r.fail, append([]string{freeError}, cleanup...)...)
	funcs.WriteString("\t}\n")
	if r.Reply != nil {
		writeNoReply(funcs, "\t", r.fail, cleanup...)
	}
	funcs.WriteString("\n")

	result := "TRUE"
	if r.Reply != nil {
		writeNewReply(funcs, r)
		result = "reply"
	}
	for _, line := range cleanup {
		funcs.WriteString("\t" + line + "\n")
	}
	if r.Reply != nil || len(cleanup) > 0 {
		funcs.WriteString("\n")
	}
	fmt.Fprintf(funcs, "\treturn %s;\n}\n\n", result)
}
