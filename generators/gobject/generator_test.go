// SPDX-License-Identifier: MIT

package gobject

import (
	"context"
	"strings"
	"testing"

	"github.com/albertocavalcante/gxgen/generator"
	"github.com/albertocavalcante/gxgen/internal/xcbxml"
	"github.com/albertocavalcante/gxgen/model"
)

const (
	xprotoXML = `<xcb header="xproto">
  <xidtype name="WINDOW" />
  <request name="MapWindow" opcode="8">
    <pad bytes="1" />
    <field type="WINDOW" name="window" />
  </request>
</xcb>`
	shapeXML = `<xcb header="shape" extension-xname="SHAPE" extension-name="Shape">
  <import>xproto</import>
  <request name="QueryVersion" opcode="0">
    <reply>
      <pad bytes="1" />
      <field type="CARD16" name="major_version" />
    </reply>
  </request>
</xcb>`
)

func loadProtocol(t *testing.T) *model.Protocol {
	t.Helper()
	files := map[string]string{"xproto.xml": xprotoXML, "shape.xml": shapeXML}
	l := xcbxml.NewLoader()
	l.ReadFile = func(name string) ([]byte, error) {
		return []byte(files[name[strings.LastIndex(name, "/")+1:]]), nil
	}
	if _, err := l.Load("proto/shape.xml"); err != nil {
		t.Fatalf("load: %v", err)
	}
	return l.Protocol()
}

func TestMetadata(t *testing.T) {
	meta := NewGenerator().Metadata()
	if meta.Name != "gobject" {
		t.Errorf("name = %q, want %q", meta.Name, "gobject")
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        generator.Config
		wantFile   string
		unwanted   string
		wantBanner bool
	}{
		{
			name:       "all extensions",
			cfg:        generator.Config{},
			wantFile:   "gx-window-xproto-gen.c",
			wantBanner: true,
		},
		{
			name:       "filter without deps",
			cfg:        generator.Config{Extensions: []string{"shape"}},
			wantFile:   "gx-connection-shape-gen.c",
			unwanted:   "gx-window-xproto-gen.c",
			wantBanner: true,
		},
		{
			name:       "filter with deps",
			cfg:        generator.Config{Extensions: []string{"shape"}, ResolveDeps: true},
			wantFile:   "gx-window-xproto-gen.c",
			wantBanner: true,
		},
		{
			name:     "banner off",
			cfg:      generator.Config{Options: map[string]string{"header": "false"}},
			wantFile: "gx-cookie-gen.h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewGenerator().Generate(context.Background(), loadProtocol(t), tt.cfg)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			data, ok := out.Files[tt.wantFile]
			if !ok {
				t.Fatalf("missing %s", tt.wantFile)
			}
			if tt.unwanted != "" {
				if _, ok := out.Files[tt.unwanted]; ok {
					t.Errorf("unexpected %s", tt.unwanted)
				}
			}
			if got := strings.HasPrefix(string(data), "/* Code generated by gxgen"); got != tt.wantBanner {
				t.Errorf("banner present = %v, want %v", got, tt.wantBanner)
			}
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  generator.Config
	}{
		{"bad header option", generator.Config{Options: map[string]string{"header": "maybe"}}},
		{"unknown extension", generator.Config{Extensions: []string{"randr"}}},
		{"unknown extension with deps", generator.Config{Extensions: []string{"randr"}, ResolveDeps: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGenerator().Generate(context.Background(), loadProtocol(t), tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewGenerator().Generate(ctx, loadProtocol(t), generator.Config{}); err == nil {
		t.Error("expected error for a cancelled context")
	}
}
