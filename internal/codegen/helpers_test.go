// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/albertocavalcante/gxgen/internal/xcbxml"
	"github.com/albertocavalcante/gxgen/model"
)

const testXProto = `<?xml version="1.0" encoding="utf-8"?>
<xcb header="xproto">
  <xidtype name="WINDOW" />
  <xidtype name="PIXMAP" />
  <xidtype name="ATOM" />
  <xidtype name="GCONTEXT" />
  <xidunion name="DRAWABLE">
    <type>WINDOW</type>
    <type>PIXMAP</type>
  </xidunion>
  <typedef oldname="CARD32" newname="VISUALID" />

  <struct name="POINT">
    <field type="INT16" name="x" />
    <field type="INT16" name="y" />
  </struct>

  <struct name="SCREEN">
    <field type="WINDOW" name="root" />
  </struct>

  <enum name="EventMask">
    <item name="NoEvent"><value>0</value></item>
    <item name="KeyPress"><bit>0</bit></item>
    <item name="Exposure"><bit>15</bit></item>
  </enum>

  <enum name="Atom">
    <item name="None"><value>0</value></item>
    <item name="Primary"><value>1</value></item>
  </enum>

  <enum name="GC">
    <item name="Function"><bit>0</bit></item>
    <item name="Foreground"><bit>2</bit></item>
  </enum>

  <event name="Expose" number="12">
    <pad bytes="1" />
    <field type="WINDOW" name="window" />
    <field type="CARD16" name="x" />
    <field type="CARD16" name="y" />
    <pad bytes="2" />
  </event>

  <event name="KeymapNotify" number="11" no-sequence-number="true">
    <list type="CARD8" name="keys"><value>31</value></list>
  </event>

  <error name="Request" number="1">
    <field type="CARD32" name="bad_value" />
  </error>
  <errorcopy name="Value" number="2" ref="Request" />
  <errorcopy name="Window" number="3" ref="Request" />

  <request name="CreateWindow" opcode="1">
    <field type="CARD8" name="depth" />
    <field type="WINDOW" name="wid" />
    <field type="WINDOW" name="parent" />
  </request>

  <request name="MapWindow" opcode="8">
    <pad bytes="1" />
    <field type="WINDOW" name="window" />
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

  <request name="GetProperty" opcode="20">
    <field type="BOOL" name="delete" />
    <field type="WINDOW" name="window" />
    <field type="ATOM" name="property" />
    <field type="ATOM" name="type" />
    <field type="CARD32" name="long_offset" />
    <field type="CARD32" name="long_length" />
    <reply>
      <field type="CARD8" name="format" />
      <field type="ATOM" name="type" />
      <field type="CARD32" name="bytes_after" />
      <field type="CARD32" name="value_len" />
      <pad bytes="12" />
      <list type="void" name="value">
        <op op="/">
          <op op="*">
            <fieldref>value_len</fieldref>
            <fieldref>format</fieldref>
          </op>
          <value>8</value>
        </op>
      </list>
    </reply>
  </request>

  <request name="GetInputFocus" opcode="43">
    <reply>
      <field type="CARD8" name="revert_to" />
      <field type="WINDOW" name="focus" />
    </reply>
  </request>

  <request name="FreePixmap" opcode="54">
    <pad bytes="1" />
    <field type="PIXMAP" name="pixmap" />
  </request>

  <request name="ChangeGC" opcode="56">
    <pad bytes="1" />
    <field type="GCONTEXT" name="gc" />
    <field type="CARD32" name="value_mask" mask="GC" />
    <switch name="value_list">
      <fieldref>value_mask</fieldref>
      <bitcase>
        <enumref ref="GC">Function</enumref>
        <field type="CARD32" name="function" />
      </bitcase>
    </switch>
  </request>

  <request name="PolyPoint" opcode="64">
    <field type="BYTE" name="coordinate_mode" />
    <field type="DRAWABLE" name="drawable" />
    <field type="GCONTEXT" name="gc" />
    <list type="POINT" name="points" />
  </request>

  <request name="GetPointerMapping" opcode="117">
    <reply>
      <field type="CARD8" name="map_len" />
      <pad bytes="24" />
      <list type="CARD8" name="map">
        <fieldref>map_len</fieldref>
      </list>
    </reply>
  </request>
</xcb>
`

const testShape = `<?xml version="1.0" encoding="utf-8"?>
<xcb header="shape" extension-xname="SHAPE" extension-name="Shape"
     major-version="1" minor-version="1">
  <import>xproto</import>
  <typedef oldname="CARD8" newname="KIND" />
  <event name="Notify" number="0">
    <field type="KIND" name="shape_kind" />
    <field type="xproto:WINDOW" name="affected_window" />
  </event>
  <error name="BadShape" number="0">
    <field type="CARD32" name="bad_value" />
  </error>
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

// loadInputs loads protocol descriptions from memory. The first name in
// order is loaded first.
func loadInputs(inputs map[string][]byte, order ...string) (*model.Protocol, error) {
	l := xcbxml.NewLoader()
	l.ReadFile = func(name string) ([]byte, error) {
		data, ok := inputs[path.Base(strings.ReplaceAll(name, "\\", "/"))]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		return data, nil
	}
	for _, name := range order {
		if _, err := l.Load(path.Join("proto", name)); err != nil {
			return nil, err
		}
	}
	return l.Protocol(), nil
}

func testProtocol(t *testing.T) *model.Protocol {
	t.Helper()
	p, err := loadInputs(map[string][]byte{
		"xproto.xml": []byte(testXProto),
		"shape.xml":  []byte(testShape),
	}, "xproto.xml", "shape.xml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
}

// generate runs the generator over the test protocol without banners.
func generate(t *testing.T, cfg Config) *Output {
	t.Helper()
	out, err := New(testProtocol(t), cfg).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return out
}

func file(t *testing.T, out *Output, name string) string {
	t.Helper()
	data, ok := out.Files[name]
	if !ok {
		t.Fatalf("no file %q in output; have %v", name, out.Names())
	}
	return string(data)
}

// between returns the text of s from the first occurrence of start up to
// and including the next occurrence of end.
func between(t *testing.T, s, start, end string) string {
	t.Helper()
	i := strings.Index(s, start)
	if i < 0 {
		t.Fatalf("%q not found", start)
	}
	j := strings.Index(s[i:], end)
	if j < 0 {
		t.Fatalf("%q not found after %q", end, start)
	}
	return s[i : i+j+len(end)]
}

func TestDecl(t *testing.T) {
	tests := []struct {
		typ, name string
		want      string
	}{
		{"guint32", "xid", "guint32 xid"},
		{"GXWindow *", "window", "GXWindow *window"},
		{"const GXPoint *", "points", "const GXPoint *points"},
	}
	for _, tc := range tests {
		if got := decl(tc.typ, tc.name); got != tc.want {
			t.Errorf("decl(%q, %q) = %q, want %q", tc.typ, tc.name, got, tc.want)
		}
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		name   string
		fn     string
		params []string
		want   string
	}{
		{
			name: "no params",
			fn:   "f",
			want: "f (void)",
		},
		{
			name:   "one param",
			fn:     "gx_window_map_window_async",
			params: []string{"GXWindow *window"},
			want:   "gx_window_map_window_async (GXWindow *window)",
		},
		{
			name:   "aligned continuation",
			fn:     "gx_f",
			params: []string{"GXCookie *cookie", "GError **error"},
			want:   "gx_f (GXCookie *cookie,\n      GError **error)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := signature(tc.fn, tc.params); got != tc.want {
				t.Errorf("signature() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGuard(t *testing.T) {
	tests := map[string]string{
		"gx-window-xproto-gen.h":      "_GX_WINDOW_XPROTO_GEN_H_",
		"gx-connection-xc_misc-gen.h": "_GX_CONNECTION_XC_MISC_GEN_H_",
		CookieFile:                    "_GX_COOKIE_GEN_H_",
	}
	for file, want := range tests {
		if got := guard(file); got != want {
			t.Errorf("guard(%q) = %q, want %q", file, got, want)
		}
	}
}
