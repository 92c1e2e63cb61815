// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xcbxml

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/gxgen/model"
)

// converter turns the elements of one protocol file into definitions.
type converter struct {
	loader *Loader
	ext    *model.Extension
}

type pending struct {
	el  *xmlElement
	def model.Definition
}

func (c *converter) convert(elements []xmlElement) error {
	// Declare everything first so that fields may refer to types
	// declared later in the file.
	var todo []pending
	for i := range elements {
		el := &elements[i]
		var def model.Definition
		switch el.XMLName.Local {
		case "enum":
			def = &model.Enum{Def: model.Def{Name: el.Name}}
		case "xidtype":
			def = &model.XID{Def: model.Def{Name: el.Name}}
		case "xidunion":
			def = &model.XIDUnion{Def: model.Def{Name: el.Name}}
		case "typedef":
			def = &model.Typedef{Def: model.Def{Name: el.NewName}}
		case "struct":
			def = &model.Struct{Def: model.Def{Name: el.Name}}
		case "union":
			def = &model.Union{Def: model.Def{Name: el.Name}}
		case "request":
			def = &model.Request{Def: model.Def{Name: el.Name}, Opcode: el.Opcode}
		case "event", "eventcopy":
			def = &model.Event{Def: model.Def{Name: el.Name}, Number: el.Number, NoSequence: el.NoSequence == "true"}
		case "error", "errorcopy":
			def = &model.Error{Def: model.Def{Name: el.Name}, Number: el.Number}
		default:
			continue
		}
		c.ext.Add(def)
		todo = append(todo, pending{el, def})
	}

	var copies []pending
	for _, p := range todo {
		switch p.el.XMLName.Local {
		case "eventcopy", "errorcopy":
			copies = append(copies, p)
			continue
		}
		if err := c.fill(p.el, p.def); err != nil {
			return fmt.Errorf("%s %q: %w", p.def.Kind(), p.def.Common().Name, err)
		}
	}

	for _, p := range copies {
		if err := c.fillCopy(p.el, p.def); err != nil {
			return fmt.Errorf("%s %q: %w", p.el.XMLName.Local, p.def.Common().Name, err)
		}
	}
	return nil
}

func (c *converter) fill(el *xmlElement, def model.Definition) error {
	var err error
	switch d := def.(type) {
	case *model.Enum:
		d.Items, err = enumItems(el.Items)
	case *model.XID:
	case *model.XIDUnion:
		for _, name := range el.Types {
			m, rerr := c.resolve(strings.TrimSpace(name))
			if rerr != nil {
				return rerr
			}
			d.Members = append(d.Members, m)
		}
	case *model.Typedef:
		d.Ref, err = c.resolve(el.OldName)
	case *model.Struct:
		d.Fields, err = c.fields(el.Fields, false)
	case *model.Union:
		d.Fields, err = c.fields(el.Fields, false)
	case *model.Request:
		var fields []*model.Field
		if fields, err = c.fields(el.Fields, true); err != nil {
			return err
		}
		d.Fields = c.requestHeader(fields)
		if el.Reply != nil {
			if fields, err = c.fields(el.Reply.Fields, false); err != nil {
				return fmt.Errorf("reply: %w", err)
			}
			d.Reply = &model.Reply{Fields: c.replyHeader(fields)}
		}
	case *model.Event:
		var fields []*model.Field
		if fields, err = c.fields(el.Fields, false); err != nil {
			return err
		}
		d.Fields = c.eventHeader(fields, d.NoSequence)
	case *model.Error:
		var fields []*model.Field
		if fields, err = c.fields(el.Fields, false); err != nil {
			return err
		}
		d.Fields = c.errorHeader(fields)
	}
	return err
}

func (c *converter) fillCopy(el *xmlElement, def model.Definition) error {
	ref, err := c.lookup(el.Ref, func(d model.Definition) bool {
		return d.Kind() == def.Kind()
	})
	if err != nil {
		return err
	}
	switch d := def.(type) {
	case *model.Event:
		src := ref.(*model.Event)
		d.Fields = src.Fields
		d.NoSequence = src.NoSequence
	case *model.Error:
		d.Fields = ref.(*model.Error).Fields
	}
	return nil
}

func enumItems(items []xmlEnumItem) ([]model.EnumItem, error) {
	out := make([]model.EnumItem, 0, len(items))
	var next uint32
	for _, it := range items {
		item := model.EnumItem{Name: it.Name, Value: next}
		if it.Expr.isExpr() {
			v, err := it.Expr.eval()
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", it.Name, err)
			}
			item.Value = v
			if it.Expr.XMLName.Local == "bit" {
				item.IsBit = true
				item.Bit = uint(bitIndex(v))
			}
		}
		next = item.Value + 1
		out = append(out, item)
	}
	return out, nil
}

func bitIndex(v uint32) int {
	for i := 0; i < 32; i++ {
		if v == 1<<uint(i) {
			return i
		}
	}
	return 0
}

// fields converts structure contents.
func (c *converter) fields(xfs []*xmlField, inRequest bool) ([]*model.Field, error) {
	var out []*model.Field
	for _, xf := range xfs {
		switch xf.XMLName.Local {
		case "pad":
			if xf.Bytes == 0 {
				// Alignment pads have no fixed size.
				continue
			}
			out = append(out, c.pad(xf.Bytes))
		case "field", "fd":
			typ := xf.Type
			if xf.XMLName.Local == "fd" {
				typ = "fd"
			}
			t, err := c.resolve(typ)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", xf.Name, err)
			}
			out = append(out, &model.Field{Name: xf.Name, Type: t})
		case "list":
			t, err := c.resolve(xf.Type)
			if err != nil {
				return nil, fmt.Errorf("list %q: %w", xf.Name, err)
			}
			length, err := listLength(xf.Expr)
			if err != nil {
				return nil, fmt.Errorf("list %q: %w", xf.Name, err)
			}
			out = append(out, &model.Field{Name: xf.Name, Type: t, Length: length})
		case "valueparam":
			mt, err := c.resolve(xf.ValueMaskType)
			if err != nil {
				return nil, fmt.Errorf("valueparam %q: %w", xf.ValueListName, err)
			}
			out = append(out, &model.Field{
				Name: xf.ValueListName,
				ValueParam: &model.ValueParam{
					MaskType: mt,
					MaskName: xf.ValueMaskName,
					ListName: xf.ValueListName,
				},
			})
		case "switch":
			out = c.switchField(out, xf, inRequest)
		}
	}
	return out, nil
}

// switchField turns a request's <switch> over a mask field into a value
// param, absorbing the mask field. Other switches become a variable length
// member.
func (c *converter) switchField(out []*model.Field, xf *xmlField, inRequest bool) []*model.Field {
	if mask := xf.Expr.fieldRef(); inRequest && mask != "" {
		for i, f := range out {
			if f.Name != mask || f.IsList() || f.IsValueParam() {
				continue
			}
			out = append(out[:i:i], out[i+1:]...)
			return append(out, &model.Field{
				Name: xf.Name,
				ValueParam: &model.ValueParam{
					MaskType: f.Type,
					MaskName: mask,
					ListName: xf.Name,
				},
			})
		}
	}
	expr := "switch"
	if xf.Expr.isExpr() {
		expr = fmt.Sprintf("switch(%s)", xf.Expr)
	}
	return append(out, &model.Field{
		Name:   xf.Name,
		Type:   c.base("CARD8"),
		Length: &model.Length{Kind: model.LengthExpr, Expr: expr},
	})
}

func listLength(e *xmlExpression) (*model.Length, error) {
	if !e.isExpr() {
		return &model.Length{Kind: model.LengthImplicit}, nil
	}
	switch e.XMLName.Local {
	case "value":
		v, err := e.eval()
		if err != nil {
			return nil, err
		}
		return &model.Length{Kind: model.LengthLiteral, Value: int(v)}, nil
	case "fieldref":
		return &model.Length{Kind: model.LengthFieldRef, Ref: strings.TrimSpace(e.Data)}, nil
	}
	return &model.Length{Kind: model.LengthExpr, Expr: e.String()}, nil
}

// resolve finds the type named name. A "header:" prefix selects the
// extension to search.
func (c *converter) resolve(name string) (model.Definition, error) {
	return c.lookup(name, isType)
}

func isType(d model.Definition) bool {
	switch d.Kind() {
	case model.KindRequest, model.KindEvent, model.KindError:
		return false
	}
	return true
}

func (c *converter) lookup(name string, want func(model.Definition) bool) (model.Definition, error) {
	if bt := c.loader.proto.BaseType(name); bt != nil && want(bt) {
		return bt, nil
	}

	exts := []*model.Extension{c.ext}
	if header, rest, ok := strings.Cut(name, ":"); ok {
		ext := c.loader.byHeader[header]
		if header == c.ext.Header {
			ext = c.ext
		}
		if ext == nil {
			return nil, fmt.Errorf("%w %q: extension %q not imported", ErrUnknownType, name, header)
		}
		exts, name = []*model.Extension{ext}, rest
	}

	seen := make(map[string]bool)
	for len(exts) > 0 {
		ext := exts[0]
		exts = exts[1:]
		if seen[ext.Header] {
			continue
		}
		seen[ext.Header] = true
		for _, d := range ext.Definitions {
			if d.Common().Name == name && want(d) {
				return d, nil
			}
		}
		for _, imp := range ext.Imports {
			if e := c.loader.byHeader[imp]; e != nil {
				exts = append(exts, e)
			}
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
}
