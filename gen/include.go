package gen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rglue/rglue/attr"
)

// CppExportsIncludeGenerator emits inst/include/<pkg>_RglueExports.h: an
// inline, header-only wrapper per exported function that other C++ packages
// can call with the original declared signature. Each wrapper lazily
// resolves the registered shim symbol — after validating its signature
// against the producing package's registry, so a stale rebuild fails with a
// diagnosable error instead of undefined behavior.
//
// The file's existence signals "this package offers a C++ call-back
// surface": when no scanned file declares the cpp interface, Commit deletes
// any previously generated header instead of writing one.
type CppExportsIncludeGenerator struct {
	base
}

func NewCppExportsIncludeGenerator(pkgDir, pkg string) (*CppExportsIncludeGenerator, error) {
	b, err := newBase(
		filepath.Join(pkgDir, "inst", "include", pkg+exportsHeaderSuffix),
		pkg, "//", tokenCppInclude)
	if err != nil {
		return nil, err
	}
	return &CppExportsIncludeGenerator{base: b}, nil
}

func (g *CppExportsIncludeGenerator) WriteBegin() {
	fmt.Fprintf(&g.buf, "namespace %s {\n\n", g.pkg)

	// Import Rcpp into this namespace so wrapper declarations don't have to
	// fully qualify every boxed type.
	g.buf.WriteString("    using namespace Rcpp;\n\n")

	// The shared validation helper lives in an anonymous namespace:
	// per-translation-unit linkage, invisible to callers. It loads the
	// producing package, resolves the registered validation function once,
	// and rejects any signature the registry doesn't know.
	g.buf.WriteString("    namespace {\n")
	g.buf.WriteString("        void validateSignature(const char* sig) {\n")
	g.buf.WriteString("            Rcpp::Function require = Rcpp::Environment::base_env()[\"require\"];\n")
	fmt.Fprintf(&g.buf, "            require(\"%s\", Rcpp::Named(\"quietly\") = true);\n", g.pkg)
	g.buf.WriteString("            typedef int(*Ptr_validate)(const char*);\n")
	g.buf.WriteString("            static Ptr_validate p_validate = (Ptr_validate)\n")
	fmt.Fprintf(&g.buf, "                %s;\n", g.getCCallable(validateRegisteredName(g.pkg)))
	g.buf.WriteString("            if (!p_validate(sig)) {\n")
	g.buf.WriteString("                throw Rcpp::function_not_exported(\n")
	fmt.Fprintf(&g.buf, "                    \"C++ function with signature '\" + std::string(sig) + \"' not found in %s\");\n", g.pkg)
	g.buf.WriteString("            }\n")
	g.buf.WriteString("        }\n")
	g.buf.WriteString("    }\n\n")
}

func (g *CppExportsIncludeGenerator) WriteFunctions(attributes *attr.SourceFileAttributes, verbose bool) {
	g.noteInterfaces(attributes)

	// only files that opt into the cpp interface get re-export wrappers
	if !attributes.HasInterface(attr.InterfaceCpp) {
		return
	}

	for _, a := range attributes.Attributes {
		if !a.IsExportedFunction() {
			continue
		}

		function := a.Function.RenamedTo(a.ExportedName())

		// hidden functions get no C++ interface
		if function.IsHidden() {
			continue
		}

		fmt.Fprintf(&g.buf, "    inline %s {\n", function.String())

		fnType := "Ptr_" + function.Name
		fmt.Fprintf(&g.buf, "        typedef SEXP(*%s)(", fnType)
		for i := range function.Arguments {
			if i > 0 {
				g.buf.WriteString(",")
			}
			g.buf.WriteString("SEXP")
		}
		g.buf.WriteString(");\n")

		ptrName := "p_" + function.Name
		fmt.Fprintf(&g.buf, "        static %s %s = NULL;\n", fnType, ptrName)
		fmt.Fprintf(&g.buf, "        if (%s == NULL) {\n", ptrName)
		fmt.Fprintf(&g.buf, "            validateSignature(\"%s\");\n", function.Signature(function.Name))
		fmt.Fprintf(&g.buf, "            %s = (%s)%s;\n",
			ptrName, fnType, g.getCCallable(g.pkg+"_"+function.Name))
		g.buf.WriteString("        }\n")

		if function.Type.IsVoid() {
			fmt.Fprintf(&g.buf, "        %s(", ptrName)
		} else {
			fmt.Fprintf(&g.buf, "        SEXP resultSEXP = %s(", ptrName)
		}
		for i, argument := range function.Arguments {
			if i > 0 {
				g.buf.WriteString(", ")
			}
			fmt.Fprintf(&g.buf, "Rcpp::wrap(%s)", argument.Name)
		}
		g.buf.WriteString(");\n")

		if !function.Type.IsVoid() {
			fmt.Fprintf(&g.buf, "        return Rcpp::as<%s >(resultSEXP);\n", function.Type.Name)
		}

		g.buf.WriteString("    }\n\n")
	}
}

func (g *CppExportsIncludeGenerator) WriteEnd() {
	g.buf.WriteString("}\n")
	g.buf.WriteString("\n")
	fmt.Fprintf(&g.buf, "#endif // %s\n", g.headerGuard())
}

func (g *CppExportsIncludeGenerator) Commit(includes []string) (CommitAction, error) {
	if !g.hasCppInterface {
		return g.removeOnCommit()
	}

	var preamble strings.Builder
	guard := g.headerGuard()
	fmt.Fprintf(&preamble, "#ifndef %s\n", guard)
	fmt.Fprintf(&preamble, "#define %s\n\n", guard)
	if len(includes) > 0 {
		for _, include := range includes {
			preamble.WriteString(include)
			preamble.WriteString("\n")
		}
		preamble.WriteString("\n")
	}

	return g.commit(preamble.String())
}

func (g *CppExportsIncludeGenerator) Remove() (bool, error) {
	return g.removeTarget()
}

// getCCallable renders the host runtime lookup of a registered symbol.
func (g *CppExportsIncludeGenerator) getCCallable(function string) string {
	return fmt.Sprintf("R_GetCCallable(\"%s\", \"%s\")", g.pkg, function)
}

func (g *CppExportsIncludeGenerator) headerGuard() string {
	return "__" + g.pkg + "_RglueExports_h__"
}
