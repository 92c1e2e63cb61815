// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xcbxml

import "github.com/albertocavalcante/gxgen/model"

func (c *converter) base(name string) model.Definition {
	return c.loader.proto.BaseType(name)
}

func (c *converter) scalar(name, typ string) *model.Field {
	return &model.Field{Name: name, Type: c.base(typ)}
}

func (c *converter) pad(n int) *model.Field {
	return &model.Field{
		Name:   "pad",
		Type:   c.base("CARD8"),
		Length: &model.Length{Kind: model.LengthLiteral, Value: n},
	}
}

// byteTwo returns the field that occupies the otherwise unused second byte
// of a request, reply or event header: the first field when it is one
// byte wide, else a one byte pad.
func (c *converter) byteTwo(fields []*model.Field) (*model.Field, []*model.Field) {
	if len(fields) > 0 && fixedSize(fields[0]) == 1 {
		return fields[0], fields[1:]
	}
	return c.pad(1), fields
}

// requestHeader prepends the opcode and length fields. Extension requests
// carry the major and minor opcode; the core protocol puts the first one
// byte field between opcode and length.
func (c *converter) requestHeader(fields []*model.Field) []*model.Field {
	head := []*model.Field{c.scalar("opcode", "CARD8")}
	if !c.ext.IsBase() {
		head = append(head, c.scalar("opcode", "CARD8"), c.scalar("length", "CARD16"))
		return append(head, fields...)
	}
	second, rest := c.byteTwo(fields)
	head = append(head, second, c.scalar("length", "CARD16"))
	return append(head, rest...)
}

func (c *converter) replyHeader(fields []*model.Field) []*model.Field {
	second, rest := c.byteTwo(fields)
	head := []*model.Field{
		c.scalar("response_type", "CARD8"),
		second,
		c.scalar("sequence", "CARD16"),
		c.scalar("length", "CARD32"),
	}
	return append(head, rest...)
}

func (c *converter) eventHeader(fields []*model.Field, noSequence bool) []*model.Field {
	head := []*model.Field{c.scalar("response_type", "CARD8")}
	if noSequence {
		return append(head, fields...)
	}
	second, rest := c.byteTwo(fields)
	head = append(head, second, c.scalar("sequence", "CARD16"))
	return append(head, rest...)
}

func (c *converter) errorHeader(fields []*model.Field) []*model.Field {
	head := []*model.Field{
		c.scalar("response_type", "CARD8"),
		c.scalar("error_code", "CARD8"),
		c.scalar("sequence", "CARD16"),
	}
	return append(head, fields...)
}

// fixedSize returns the wire size of a field, or 0 when it is not a fixed
// scalar.
func fixedSize(f *model.Field) int {
	if f.IsValueParam() {
		return 0
	}
	if f.Length != nil {
		if f.Length.Kind == model.LengthLiteral {
			return f.Length.Value * typeSize(f.Type)
		}
		return 0
	}
	return typeSize(f.Type)
}

func typeSize(d model.Definition) int {
	switch d := d.(type) {
	case *model.BaseType:
		return d.Size
	case *model.XID, *model.XIDUnion:
		return 4
	case *model.Typedef:
		return typeSize(d.Ref)
	}
	return 0
}
