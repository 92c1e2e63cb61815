// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xcbxml

import "encoding/xml"

// xmlProto mirrors the root <xcb> element of a protocol description.
type xmlProto struct {
	XMLName        xml.Name `xml:"xcb"`
	Header         string   `xml:"header,attr"`
	ExtensionXName string   `xml:"extension-xname,attr"`
	ExtensionName  string   `xml:"extension-name,attr"`
	MajorVersion   string   `xml:"major-version,attr"`
	MinorVersion   string   `xml:"minor-version,attr"`

	// Top level elements in document order.
	Elements []xmlElement `xml:",any"`
}

// xmlElement is any top level element. Which attributes are set depends
// on XMLName.Local.
type xmlElement struct {
	XMLName xml.Name

	Name    string `xml:"name,attr"`
	Number  int    `xml:"number,attr"`
	Opcode  int    `xml:"opcode,attr"`
	Ref     string `xml:"ref,attr"`
	OldName string `xml:"oldname,attr"`
	NewName string `xml:"newname,attr"`

	NoSequence string `xml:"no-sequence-number,attr"`

	// <import> content.
	Data string `xml:",chardata"`

	// <enum> items.
	Items []xmlEnumItem `xml:"item"`

	// <xidunion> members.
	Types []string `xml:"type"`

	// <request> reply.
	Reply *xmlReply `xml:"reply"`

	// Structure contents of struct, union, request, event and error.
	Fields []*xmlField `xml:",any"`
}

type xmlEnumItem struct {
	Name string         `xml:"name,attr"`
	Expr *xmlExpression `xml:",any"`
}

type xmlReply struct {
	Fields []*xmlField `xml:",any"`
}

// xmlField is one structure content element: pad, field, list, fd,
// exprfield, valueparam or switch. Elements such as <doc> are ignored.
type xmlField struct {
	XMLName xml.Name

	// <pad>
	Bytes int `xml:"bytes,attr"`
	Align int `xml:"align,attr"`

	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`

	// Length of a <list>, value of an <exprfield>, or mask of a <switch>.
	// Bitcases are captured separately.
	Expr *xmlExpression `xml:",any"`

	// <valueparam>
	ValueMaskType string `xml:"value-mask-type,attr"`
	ValueMaskName string `xml:"value-mask-name,attr"`
	ValueListName string `xml:"value-list-name,attr"`

	// <switch>
	Bitcases []xmlBitcase `xml:"bitcase"`
	Cases    []xmlBitcase `xml:"case"`
}

type xmlBitcase struct {
	Name   string      `xml:"name,attr"`
	Fields []*xmlField `xml:",any"`
}

// xmlExpression is an expression tree node: op, unop, fieldref, value,
// bit, enumref, sumof, popcount, paramref or listelement-ref.
type xmlExpression struct {
	XMLName xml.Name

	Exprs []*xmlExpression `xml:",any"`

	Data string `xml:",chardata"`
	Op   string `xml:"op,attr"`
	Ref  string `xml:"ref,attr"`
	Type string `xml:"type,attr"`
}
