// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xcbxml

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/gxgen/model"
)

const xprotoXML = `<?xml version="1.0" encoding="utf-8"?>
<xcb header="xproto">
  <xidtype name="WINDOW" />
  <xidtype name="PIXMAP" />
  <xidunion name="DRAWABLE">
    <type>WINDOW</type>
    <type>PIXMAP</type>
  </xidunion>
  <typedef oldname="CARD32" newname="VISUALID" />

  <struct name="POINT">
    <field type="INT16" name="x" />
    <field type="INT16" name="y" />
  </struct>

  <enum name="EventMask">
    <item name="NoEvent"> <value>0</value></item>
    <item name="KeyPress"> <bit>0</bit></item>
    <item name="Exposure"> <bit>15</bit></item>
  </enum>

  <enum name="Family">
    <item name="Internet" />
    <item name="DECnet" />
    <item name="Chaos" />
    <item name="ServerInterpreted"><value>5</value></item>
    <item name="Internet6" />
  </enum>

  <event name="Expose" number="12">
    <pad bytes="1" />
    <field type="WINDOW" name="window" />
    <field type="CARD16" name="x" />
    <pad bytes="2" />
  </event>
  <eventcopy name="GraphicsExposure" number="13" ref="Expose" />

  <event name="KeymapNotify" number="11" no-sequence-number="true">
    <list type="CARD8" name="keys"><value>31</value></list>
  </event>

  <error name="Request" number="1">
    <field type="CARD32" name="bad_value" />
    <field type="CARD16" name="minor_opcode" />
    <field type="CARD8" name="major_opcode" />
    <pad bytes="1" />
  </error>
  <errorcopy name="Value" number="2" ref="Request" />

  <request name="ChangeWindowAttributes" opcode="2">
    <pad bytes="1" />
    <field type="WINDOW" name="window" />
    <field type="CARD32" name="value_mask" mask="CW" />
    <switch name="value_list">
      <fieldref>value_mask</fieldref>
      <bitcase>
        <enumref ref="CW">BackPixmap</enumref>
        <field type="PIXMAP" name="background_pixmap" />
      </bitcase>
    </switch>
  </request>

  <request name="QueryTree" opcode="15">
    <pad bytes="1" />
    <field type="WINDOW" name="window" />
    <reply>
      <pad bytes="1" />
      <field type="WINDOW" name="root" />
      <field type="WINDOW" name="parent" />
      <field type="CARD16" name="children_len" />
      <pad bytes="14" />
      <list type="WINDOW" name="children">
        <fieldref>children_len</fieldref>
      </list>
    </reply>
  </request>

  <request name="SetFontPath" opcode="51">
    <pad bytes="1" />
    <field type="CARD16" name="font_qty" />
    <pad bytes="2" />
    <list type="CARD8" name="font" />
  </request>

  <request name="CreatePixmap" opcode="53">
    <field type="CARD8" name="depth" />
    <field type="PIXMAP" name="pid" />
    <field type="DRAWABLE" name="drawable" />
  </request>
</xcb>
`

const shapeXML = `<?xml version="1.0" encoding="utf-8"?>
<xcb header="shape" extension-xname="SHAPE" extension-name="Shape"
     major-version="1" minor-version="1">
  <import>xproto</import>
  <typedef oldname="CARD8" newname="KIND" />
  <event name="Notify" number="0">
    <field type="KIND" name="shape_kind" />
    <field type="xproto:WINDOW" name="affected_window" />
  </event>
  <request name="QueryVersion" opcode="0">
    <reply>
      <pad bytes="1" />
      <field type="CARD16" name="major_version" />
      <field type="CARD16" name="minor_version" />
    </reply>
  </request>
  <request name="Mask" opcode="2">
    <field type="KIND" name="destination_kind" />
    <pad bytes="2" />
    <field type="WINDOW" name="destination_window" />
  </request>
</xcb>
`

func mapLoader(files map[string]string) *Loader {
	l := NewLoader()
	l.ReadFile = func(name string) ([]byte, error) {
		data, ok := files[filepath.ToSlash(name)]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		return []byte(data), nil
	}
	return l
}

func fieldNames(fields []*model.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func loadXProto(t *testing.T) *model.Extension {
	t.Helper()
	l := mapLoader(map[string]string{"proto/xproto.xml": xprotoXML})
	ext, err := l.Load("proto/xproto.xml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ext
}

func TestLoad_Request(t *testing.T) {
	ext := loadXProto(t)

	req, ok := ext.Lookup("QueryTree").(*model.Request)
	if !ok {
		t.Fatalf("QueryTree is %T, want *model.Request", ext.Lookup("QueryTree"))
	}
	if req.Opcode != 15 {
		t.Errorf("Opcode = %d, want 15", req.Opcode)
	}
	if diff := cmp.Diff([]string{"opcode", "pad", "length", "window"}, fieldNames(req.Fields)); diff != "" {
		t.Errorf("request fields mismatch (-want +got):\n%s", diff)
	}
	if req.Reply == nil {
		t.Fatal("QueryTree has no reply")
	}
	want := []string{"response_type", "pad", "sequence", "length", "root", "parent", "children_len", "pad", "children"}
	if diff := cmp.Diff(want, fieldNames(req.Reply.Fields)); diff != "" {
		t.Errorf("reply fields mismatch (-want +got):\n%s", diff)
	}

	children := model.LastField(req.Reply.Fields)
	if children.Length == nil || children.Length.Kind != model.LengthFieldRef || children.Length.Ref != "children_len" {
		t.Errorf("children length = %+v, want fieldref children_len", children.Length)
	}
	if children.Type.Common().Name != "WINDOW" || children.Type.Kind() != model.KindXID {
		t.Errorf("children type = %s %s, want xid WINDOW", children.Type.Kind(), children.Type.Common().Name)
	}
}

func TestLoad_ByteTwoField(t *testing.T) {
	ext := loadXProto(t)
	req := ext.Lookup("CreatePixmap").(*model.Request)
	if diff := cmp.Diff([]string{"opcode", "depth", "length", "pid", "drawable"}, fieldNames(req.Fields)); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ImplicitList(t *testing.T) {
	ext := loadXProto(t)
	req := ext.Lookup("SetFontPath").(*model.Request)
	font := model.LastField(req.Fields)
	if font.Name != "font" || font.Length == nil || font.Length.Kind != model.LengthImplicit {
		t.Errorf("last field = %s %+v, want implicit list font", font.Name, font.Length)
	}
}

func TestLoad_SwitchBecomesValueParam(t *testing.T) {
	ext := loadXProto(t)
	req := ext.Lookup("ChangeWindowAttributes").(*model.Request)

	if diff := cmp.Diff([]string{"opcode", "pad", "length", "window", "value_list"}, fieldNames(req.Fields)); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	vp := model.LastField(req.Fields).ValueParam
	if vp == nil {
		t.Fatal("value_list is not a value param")
	}
	if vp.MaskName != "value_mask" || vp.ListName != "value_list" || vp.MaskType.Common().Name != "CARD32" {
		t.Errorf("value param = %+v", vp)
	}
}

func TestLoad_Enum(t *testing.T) {
	ext := loadXProto(t)

	mask := ext.Lookup("EventMask").(*model.Enum)
	want := []model.EnumItem{
		{Name: "NoEvent", Value: 0},
		{Name: "KeyPress", Value: 1, Bit: 0, IsBit: true},
		{Name: "Exposure", Value: 1 << 15, Bit: 15, IsBit: true},
	}
	if diff := cmp.Diff(want, mask.Items); diff != "" {
		t.Errorf("EventMask items mismatch (-want +got):\n%s", diff)
	}

	family := ext.Lookup("Family").(*model.Enum)
	var values []uint32
	for _, it := range family.Items {
		values = append(values, it.Value)
	}
	if diff := cmp.Diff([]uint32{0, 1, 2, 5, 6}, values); diff != "" {
		t.Errorf("Family values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EventsAndErrors(t *testing.T) {
	ext := loadXProto(t)

	expose := ext.Lookup("Expose").(*model.Event)
	want := []string{"response_type", "pad", "sequence", "window", "x", "pad"}
	if diff := cmp.Diff(want, fieldNames(expose.Fields)); diff != "" {
		t.Errorf("Expose fields mismatch (-want +got):\n%s", diff)
	}

	gexp := ext.Lookup("GraphicsExposure").(*model.Event)
	if gexp.Number != 13 {
		t.Errorf("GraphicsExposure number = %d, want 13", gexp.Number)
	}
	if diff := cmp.Diff(want, fieldNames(gexp.Fields)); diff != "" {
		t.Errorf("eventcopy fields mismatch (-want +got):\n%s", diff)
	}

	keymap := ext.Lookup("KeymapNotify").(*model.Event)
	if diff := cmp.Diff([]string{"response_type", "keys"}, fieldNames(keymap.Fields)); diff != "" {
		t.Errorf("KeymapNotify fields mismatch (-want +got):\n%s", diff)
	}

	value := ext.Lookup("Value").(*model.Error)
	want = []string{"response_type", "error_code", "sequence", "bad_value", "minor_opcode", "major_opcode", "pad"}
	if diff := cmp.Diff(want, fieldNames(value.Fields)); diff != "" {
		t.Errorf("errorcopy fields mismatch (-want +got):\n%s", diff)
	}
	if len(ext.Errors()) != 2 {
		t.Errorf("got %d errors, want 2", len(ext.Errors()))
	}
}

func TestLoad_Imports(t *testing.T) {
	l := mapLoader(map[string]string{
		"proto/xproto.xml": xprotoXML,
		"proto/shape.xml":  shapeXML,
	})
	ext, err := l.Load("proto/shape.xml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ext.Name != "Shape" || ext.XName != "SHAPE" || ext.IsBase() {
		t.Errorf("extension = %q/%q base=%v", ext.Name, ext.XName, ext.IsBase())
	}

	var headers []string
	for _, e := range l.Protocol().Extensions {
		headers = append(headers, e.Header)
	}
	if diff := cmp.Diff([]string{"xproto", "shape"}, headers); diff != "" {
		t.Errorf("extension order mismatch (-want +got):\n%s", diff)
	}

	notify := ext.Lookup("Notify").(*model.Event)
	win := notify.Fields[len(notify.Fields)-1]
	if win.Type.Common().Ext == nil || win.Type.Common().Ext.Header != "xproto" {
		t.Errorf("affected_window resolved to %v", win.Type)
	}

	// Extension requests carry major and minor opcodes.
	mask := ext.Lookup("Mask").(*model.Request)
	want := []string{"opcode", "opcode", "length", "destination_kind", "pad", "destination_window"}
	if diff := cmp.Diff(want, fieldNames(mask.Fields)); diff != "" {
		t.Errorf("Mask fields mismatch (-want +got):\n%s", diff)
	}

	// Loading again returns the same extension.
	again, err := l.Load("proto/xproto.xml")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again != l.Protocol().Extension("xproto") || len(l.Protocol().Extensions) != 2 {
		t.Error("reloading xproto created a new extension")
	}
}

func TestLoad_UnknownType(t *testing.T) {
	l := mapLoader(map[string]string{"bad.xml": `<xcb header="bad">
  <struct name="S"><field type="NOPE" name="x" /></struct>
</xcb>`})

	_, err := l.Load("bad.xml")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("error = %v, want ErrUnknownType", err)
	}
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.File != "bad.xml" {
		t.Errorf("error = %v, want *Error for bad.xml", err)
	}
}

func TestLoad_MissingImport(t *testing.T) {
	l := mapLoader(map[string]string{"shape.xml": shapeXML})
	_, err := l.Load("shape.xml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoad_ImportCycle(t *testing.T) {
	l := mapLoader(map[string]string{
		"a.xml": `<xcb header="a"><import>b</import></xcb>`,
		"b.xml": `<xcb header="b"><import>a</import></xcb>`,
	})
	_, err := l.Load("a.xml")
	if !errors.Is(err, ErrImportCycle) {
		t.Errorf("error = %v, want ErrImportCycle", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	l := mapLoader(map[string]string{"broken.xml": `<xcb header="broken"><struct`})
	_, err := l.Load("broken.xml")
	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Errorf("error = %v, want *Error", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "xproto.xml"), []byte(xprotoXML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shape.xml"), []byte(shapeXML), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFiles(filepath.Join(dir, "shape.xml"), filepath.Join(dir, "xproto.xml"))
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(p.Extensions) != 2 {
		t.Fatalf("got %d extensions, want 2", len(p.Extensions))
	}
	if p.BaseType("CARD32") == nil {
		t.Error("base types not registered")
	}
}
