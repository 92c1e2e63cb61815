// SPDX-License-Identifier: MIT

package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/albertocavalcante/gxgen/model"
)

// Process-wide file names.
const (
	CookieFile       = "gx-cookie-gen.h"
	ErrorCodesFile   = "gx-protocol-error-codes-gen.h"
	ErrorDetailsFile = "gx-protocol-error-details-gen.c"
	DependenciesFile = "gx-xcb-dependencies-gen.h"
	TestsFile        = "gx-tests-gen.c"
)

// HeaderFile returns the header generated for obj and ext.
func HeaderFile(obj *Object, ext *model.Extension) string {
	return fmt.Sprintf("gx-%s-%s-gen.h", obj.Lower, ext.Header)
}

// SourceFile returns the source file generated for obj and ext.
func SourceFile(obj *Object, ext *model.Extension) string {
	return fmt.Sprintf("gx-%s-%s-gen.c", obj.Lower, ext.Header)
}

// guard returns the include guard macro for a header file name.
func guard(file string) string {
	r := strings.NewReplacer("-", "_", ".", "_")
	return "_" + strings.ToUpper(r.Replace(file)) + "_"
}

func (g *Generator) beginGlobal() {
	header := g.fileHeader()

	g.parts.printf(globalKey(CookieTypes), "%s#ifndef %s\n#define %s\n\n", header, guard(CookieFile), guard(CookieFile))
	g.parts.printf(globalKey(CookieTypes), "typedef enum _GXCookieType\n{\n")

	g.parts.printf(globalKey(ErrorCodes), "%s#ifndef %s\n#define %s\n\n", header, guard(ErrorCodesFile), guard(ErrorCodesFile))
	g.parts.printf(globalKey(ErrorCodes), "typedef enum _GXProtocolErrorCode\n{\n")

	g.parts.printf(globalKey(ErrorDetails), "%s#include <gx/gx-protocol-error.h>\n", header)
	g.parts.printf(globalKey(ErrorDetails), "#include <gx/generated-code/%s>\n\n", ErrorCodesFile)

	g.parts.printf(globalKey(Dependencies), "%s#ifndef %s\n#define %s\n\n", header, guard(DependenciesFile), guard(DependenciesFile))
	g.parts.printf(globalKey(Dependencies), "#include <xcb/xcb.h>\n")

	g.parts.printf(globalKey(Tests), "%s#include <gx.h>\n\n", header)
	g.parts.printf(globalKey(Tests), "void\n_gx_run_generated_tests (void)\n{\n")
}

// noErrorCode is the only enumerant of the error codes when no loaded
// extension declares an error.
const noErrorCode = "GX_PROTOCOL_ERROR_CODE_NONE"

func (g *Generator) endGlobal() {
	g.parts.printf(globalKey(CookieTypes), "} GXCookieType;\n\n#endif /* %s */\n", guard(CookieFile))
	// C has no empty enums.
	if bytes.HasSuffix(g.parts.bytes(globalKey(ErrorCodes)), []byte("{\n")) {
		g.parts.printf(globalKey(ErrorCodes), "\t%s\n", noErrorCode)
	}
	g.parts.printf(globalKey(ErrorCodes), "} GXProtocolErrorCode;\n\n#endif /* %s */\n", guard(ErrorCodesFile))
	g.parts.printf(globalKey(Dependencies), "\n#endif /* %s */\n", guard(DependenciesFile))
	g.parts.printf(globalKey(Tests), "}\n")
}

// beginExtension opens the skeleton of every file pair of ext. Every pair
// is emitted even when no request lands on it.
func (g *Generator) beginExtension(ext *model.Extension) {
	header := g.fileHeader()
	for _, obj := range Objects {
		key := func(s Section) PartKey { return PartKey{Ext: ext.Header, Object: obj.ID, Section: s} }
		h := HeaderFile(obj, ext)

		g.parts.printf(key(HeaderGuardOpen), "%s#ifndef %s\n#define %s\n\n", header, guard(h), guard(h))

		inc := g.parts.buf(key(HeaderIncludes))
		inc.WriteString("#include <glib.h>\n\n")
		inc.WriteString("#include <gx/gx-types.h>\n")
		inc.WriteString("#include <gx/gx-event.h>\n")
		inc.WriteString("#include <gx/gx-mask-value-item.h>\n")
		fmt.Fprintf(inc, "#include <gx/generated-code/%s>\n", DependenciesFile)
		for _, imp := range ext.Imports {
			if dep := g.proto.Extension(imp); dep != nil {
				fmt.Fprintf(inc, "#include <gx/generated-code/%s>\n", HeaderFile(object(Connection), dep))
			}
		}
		if obj.ID != Connection {
			fmt.Fprintf(inc, "#include <gx/generated-code/%s>\n", HeaderFile(object(Connection), ext))
		}
		inc.WriteString("\n")

		// Created up front so that the part order matches the file layout.
		g.parts.buf(key(HeaderTypedefs))
		g.parts.buf(key(HeaderProtos))
		g.parts.printf(key(HeaderGuardClose), "#endif /* %s */\n", guard(h))

		src := g.parts.buf(key(SourceIncludes))
		src.WriteString(header)
		for _, o := range Objects {
			fmt.Fprintf(src, "#include <gx/gx-%s.h>\n", o.Lower)
		}
		src.WriteString("#include <gx/gx-cookie.h>\n")
		src.WriteString("#include <gx/gx-protocol-error.h>\n")
		fmt.Fprintf(src, "#include <gx/generated-code/%s>\n\n", h)
		src.WriteString("#include <stddef.h>\n")
		src.WriteString("#include <stdlib.h>\n")
		src.WriteString("#include <alloca.h>\n\n")
		g.parts.buf(key(SourceFuncs))
	}

	g.parts.printf(globalKey(Dependencies), "#include <xcb/%s.h>\n", ext.Header)

	g.parts.printf(globalKey(ErrorDetails), "GXProtocolErrorDetails %s[] = {\n", errorDetailsVar(ext))

	conn := PartKey{Ext: ext.Header, Object: Connection}
	conn.Section = HeaderProtos
	g.parts.printf(conn, "extern GXEventDetails %s[];\n", eventDetailsVar(ext))
	g.parts.printf(conn, "extern GXProtocolErrorDetails %s[];\n\n", errorDetailsVar(ext))

	g.eventDetails = g.eventDetails[:0]
}

// endExtension terminates the error descriptor table of ext and writes its
// event descriptor table after the connection's request functions.
func (g *Generator) endExtension(ext *model.Extension) {
	g.parts.printf(globalKey(ErrorDetails), "\t{0, 0, NULL}\n};\n\n")

	key := PartKey{Ext: ext.Header, Object: Connection, Section: SourceFuncs}
	g.parts.printf(key, "GXEventDetails %s[] = {\n", eventDetailsVar(ext))
	for _, line := range g.eventDetails {
		g.parts.printf(key, "\t%s,\n", line)
	}
	g.parts.printf(key, "\t{0, NULL, 0}\n};\n")
}

func eventDetailsVar(ext *model.Extension) string {
	return fmt.Sprintf("_gx_%s_event_details", ext.Header)
}

func errorDetailsVar(ext *model.Extension) string {
	return fmt.Sprintf("_gx_%s_protocol_error_details", ext.Header)
}

// headerSections and sourceSections give the layout of a file pair.
var (
	headerSections = []Section{HeaderGuardOpen, HeaderIncludes, HeaderTypedefs, HeaderProtos, HeaderGuardClose}
	sourceSections = []Section{SourceIncludes, SourceFuncs}
)

// assemble concatenates the parts into files in a fixed order.
func (g *Generator) assemble() *Output {
	out := &Output{Files: make(map[string][]byte)}
	join := func(key PartKey, sections []Section) []byte {
		var buf bytes.Buffer
		for _, s := range sections {
			key.Section = s
			buf.Write(g.parts.bytes(key))
		}
		return buf.Bytes()
	}
	for _, ext := range g.exts {
		for _, obj := range Objects {
			key := PartKey{Ext: ext.Header, Object: obj.ID}
			out.Files[HeaderFile(obj, ext)] = join(key, headerSections)
			out.Files[SourceFile(obj, ext)] = join(key, sourceSections)
		}
	}
	out.Files[CookieFile] = g.parts.bytes(globalKey(CookieTypes))
	out.Files[ErrorCodesFile] = g.parts.bytes(globalKey(ErrorCodes))
	out.Files[ErrorDetailsFile] = g.parts.bytes(globalKey(ErrorDetails))
	out.Files[DependenciesFile] = g.parts.bytes(globalKey(Dependencies))
	out.Files[TestsFile] = g.parts.bytes(globalKey(Tests))
	return out
}
