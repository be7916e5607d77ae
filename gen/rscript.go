package gen

import (
	"fmt"
	"path/filepath"

	"github.com/rglue/rglue/attr"
)

// RExportsGenerator emits R/RglueExports.R: one R function per exported
// attribute that marshals its arguments into the boundary .Call and back.
// Documentation lines collected by the parser pass through verbatim. Void
// native functions are wrapped in invisible() so the R caller sees the
// invisible-return convention.
type RExportsGenerator struct {
	base
}

func NewRExportsGenerator(pkgDir, pkg string) (*RExportsGenerator, error) {
	b, err := newBase(
		filepath.Join(pkgDir, "R", "RglueExports.R"),
		pkg, "#", tokenRExports)
	if err != nil {
		return nil, err
	}
	return &RExportsGenerator{base: b}, nil
}

func (g *RExportsGenerator) WriteBegin() {}

func (g *RExportsGenerator) WriteFunctions(attributes *attr.SourceFileAttributes, verbose bool) {
	g.noteInterfaces(attributes)

	if !attributes.HasInterface(attr.InterfaceR) {
		return
	}

	for _, a := range attributes.Attributes {
		if !a.IsExportedFunction() {
			continue
		}
		function := a.Function

		for _, line := range a.Roxygen {
			g.buf.WriteString(line)
			g.buf.WriteString("\n")
		}

		// formal parameter list with translated defaults
		args := generateRArgList(function)

		fmt.Fprintf(&g.buf, "%s <- function(%s) {\n", a.ExportedName(), args)
		g.buf.WriteString("    ")
		if function.Type.IsVoid() {
			g.buf.WriteString("invisible(")
		}
		fmt.Fprintf(&g.buf, ".Call('%s_%s', PACKAGE = '%s'", g.pkg, function.Name, g.pkg)
		for _, argument := range function.Arguments {
			g.buf.WriteString(", ")
			g.buf.WriteString(argument.Name)
		}
		g.buf.WriteString(")")
		if function.Type.IsVoid() {
			g.buf.WriteString(")")
		}
		g.buf.WriteString("\n")
		g.buf.WriteString("}\n\n")
	}
}

func (g *RExportsGenerator) WriteEnd() {
	if !g.hasCppInterface {
		return
	}

	// load-time hook: register the C-callable entry points as soon as the
	// package loads so other packages' re-export headers resolve immediately
	g.buf.WriteString("# Register entry points for exported C++ functions\n")
	g.buf.WriteString("methods::setLoadAction(function(ns) {\n")
	fmt.Fprintf(&g.buf, "    .Call('%s', PACKAGE = '%s')\n", registerCCallableName(g.pkg), g.pkg)
	g.buf.WriteString("})\n")
}

func (g *RExportsGenerator) Commit(includes []string) (CommitAction, error) {
	return g.commit("")
}

func (g *RExportsGenerator) Remove() (bool, error) {
	return g.removeTarget()
}
