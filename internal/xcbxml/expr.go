// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xcbxml

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

func (e *xmlExpression) isExpr() bool {
	if e == nil {
		return false
	}
	switch e.XMLName.Local {
	case "op", "unop", "fieldref", "value", "bit", "enumref", "sumof", "popcount", "paramref", "listelement-ref":
		return true
	}
	return false
}

// String renders the expression in C-like syntax.
func (e *xmlExpression) String() string {
	data := strings.TrimSpace(e.Data)
	switch e.XMLName.Local {
	case "op":
		if len(e.Exprs) != 2 {
			return "(?)"
		}
		return fmt.Sprintf("(%s %s %s)", e.Exprs[0], e.Op, e.Exprs[1])
	case "unop":
		if len(e.Exprs) != 1 {
			return "(?)"
		}
		return fmt.Sprintf("(%s%s)", e.Op, e.Exprs[0])
	case "popcount":
		if len(e.Exprs) != 1 {
			return "popcount(?)"
		}
		return fmt.Sprintf("popcount(%s)", e.Exprs[0])
	case "sumof":
		return fmt.Sprintf("sumof(%s)", e.Ref)
	case "bit":
		return fmt.Sprintf("(1 << %s)", data)
	case "enumref":
		return e.Ref + "." + data
	case "listelement-ref":
		return "element"
	}
	return data
}

// eval computes a constant expression. Expressions that depend on field
// values cannot be evaluated.
func (e *xmlExpression) eval() (uint32, error) {
	data := strings.TrimSpace(e.Data)
	switch e.XMLName.Local {
	case "value":
		v, err := strconv.ParseInt(data, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q: %w", data, err)
		}
		return uint32(v), nil
	case "bit":
		b, err := strconv.Atoi(data)
		if err != nil {
			return 0, fmt.Errorf("bit %q: %w", data, err)
		}
		if b < 0 || b > 31 {
			return 0, fmt.Errorf("bit %d out of range [0, 31]", b)
		}
		return 1 << uint(b), nil
	case "popcount":
		if len(e.Exprs) != 1 {
			return 0, fmt.Errorf("popcount has %d operands, want 1", len(e.Exprs))
		}
		v, err := e.Exprs[0].eval()
		return uint32(bits.OnesCount32(v)), err
	case "unop":
		if len(e.Exprs) != 1 {
			return 0, fmt.Errorf("unop has %d operands, want 1", len(e.Exprs))
		}
		v, err := e.Exprs[0].eval()
		if err != nil {
			return 0, err
		}
		if e.Op != "~" {
			return 0, fmt.Errorf("unknown unary operator %q", e.Op)
		}
		return ^v, nil
	case "op":
		if len(e.Exprs) != 2 {
			return 0, fmt.Errorf("op has %d operands, want 2", len(e.Exprs))
		}
		a, err := e.Exprs[0].eval()
		if err != nil {
			return 0, err
		}
		b, err := e.Exprs[1].eval()
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case "+":
			return a + b, nil
		case "-":
			return a - b, nil
		case "*":
			return a * b, nil
		case "/":
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return a / b, nil
		case "&":
			return a & b, nil
		case "|":
			return a | b, nil
		case "<<":
			return a << b, nil
		case ">>":
			return a >> b, nil
		}
		return 0, fmt.Errorf("unknown operator %q", e.Op)
	}
	return 0, fmt.Errorf("cannot evaluate %q expression %s", e.XMLName.Local, e)
}

// fieldRef returns the first field referenced by the expression.
func (e *xmlExpression) fieldRef() string {
	if e == nil {
		return ""
	}
	if e.XMLName.Local == "fieldref" {
		return strings.TrimSpace(e.Data)
	}
	for _, sub := range e.Exprs {
		if name := sub.fieldRef(); name != "" {
			return name
		}
	}
	return ""
}
