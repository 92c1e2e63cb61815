// SPDX-License-Identifier: MIT

package xcbxml

import (
	"encoding/xml"
	"testing"
)

func parseExpr(t *testing.T, s string) *xmlExpression {
	t.Helper()
	var e xmlExpression
	if err := xml.Unmarshal([]byte(s), &e); err != nil {
		t.Fatalf("unmarshal %q: %v", s, err)
	}
	return &e
}

func TestExpression_Eval(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{`<value>7</value>`, 7},
		{`<value>0x10</value>`, 16},
		{`<bit>3</bit>`, 8},
		{`<op op="+"><value>2</value><value>3</value></op>`, 5},
		{`<op op="-"><value>5</value><value>3</value></op>`, 2},
		{`<op op="&lt;&lt;"><value>1</value><value>4</value></op>`, 16},
		{`<op op="&amp;"><value>6</value><value>3</value></op>`, 2},
		{`<popcount><value>7</value></popcount>`, 3},
		{`<unop op="~"><value>0</value></unop>`, 0xffffffff},
	}
	for _, tt := range tests {
		got, err := parseExpr(t, tt.input).eval()
		if err != nil {
			t.Errorf("eval(%s) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("eval(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestExpression_EvalErrors(t *testing.T) {
	inputs := []string{
		`<fieldref>len</fieldref>`,
		`<bit>40</bit>`,
		`<value>x</value>`,
		`<op op="/"><value>1</value><value>0</value></op>`,
		`<op op="%"><value>1</value><value>2</value></op>`,
	}
	for _, in := range inputs {
		if _, err := parseExpr(t, in).eval(); err == nil {
			t.Errorf("eval(%s) succeeded, want error", in)
		}
	}
}

func TestExpression_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`<fieldref>string_len</fieldref>`, "string_len"},
		{`<op op="*"><fieldref>width</fieldref><fieldref>height</fieldref></op>`, "(width * height)"},
		{`<sumof ref="lengths" />`, "sumof(lengths)"},
		{`<enumref ref="CW">BackPixmap</enumref>`, "CW.BackPixmap"},
	}
	for _, tt := range tests {
		if got := parseExpr(t, tt.input).String(); got != tt.want {
			t.Errorf("String(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExpression_FieldRef(t *testing.T) {
	e := parseExpr(t, `<op op="&amp;"><fieldref>value_mask</fieldref><value>3</value></op>`)
	if got := e.fieldRef(); got != "value_mask" {
		t.Errorf("fieldRef() = %q, want %q", got, "value_mask")
	}
	var nilExpr *xmlExpression
	if got := nilExpr.fieldRef(); got != "" {
		t.Errorf("nil fieldRef() = %q", got)
	}
}
