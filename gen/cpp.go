package gen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rglue/rglue/attr"
	"github.com/rglue/rglue/logger"
)

// Generator tokens. Each variant embeds its own fixed token in the header
// comment of the file it owns; a future run recognizes the token and knows
// the file is safe to regenerate.
const (
	tokenCppExports = "93d3a8c2f41e6b07"
	tokenCppInclude = "5c07f2b9e6a1d438"
	tokenPkgInclude = "1b9e64d0a7c3f582"
	tokenRExports   = "e2f74c18b05a9d36"
)

// Names of the generated registration/validation entry points. The shim
// file defines them, the re-export header and the R load hook look them up,
// so all three generators must agree on these spellings.
func validateFunctionName() string { return "RglueExport_validate" }

func validateRegisteredName(pkg string) string {
	return pkg + "_" + validateFunctionName()
}

func registerCCallableName(pkg string) string {
	return pkg + "_RglueExport_registerCCallable"
}

// CppExportsGenerator emits src/RglueExports.cpp: one C-callable boundary
// shim per exported function (SEXP in, SEXP out), and at the end of the run
// the signature-validation function and the dynamic-symbol registration
// function that other packages' re-export headers rely on.
type CppExportsGenerator struct {
	base

	// exports is the ordered registry of C++-callable exports seen across
	// all scanned files this run, used at WriteEnd to build the validation
	// set and the registration table.
	exports []attr.Attribute
}

func NewCppExportsGenerator(pkgDir, pkg string) (*CppExportsGenerator, error) {
	b, err := newBase(
		filepath.Join(pkgDir, "src", "RglueExports.cpp"),
		pkg, "//", tokenCppExports)
	if err != nil {
		return nil, err
	}
	return &CppExportsGenerator{base: b}, nil
}

func (g *CppExportsGenerator) WriteBegin() {}

func (g *CppExportsGenerator) WriteFunctions(attributes *attr.SourceFileAttributes, verbose bool) {
	g.noteInterfaces(attributes)

	generateCpp(&g.buf, attributes, true, g.pkg)

	// track exports and signatures for the validation and registration
	// functions emitted at WriteEnd
	if attributes.HasInterface(attr.InterfaceCpp) {
		for _, a := range attributes.Attributes {
			if !a.IsExportedFunction() {
				continue
			}
			fun := a.Function.RenamedTo(a.ExportedName())
			if !fun.IsHidden() {
				g.exports = append(g.exports, a)
			}
		}
	}

	if verbose {
		logger.Infof("Exports from %s:", attributes.SourceFile)
		for _, a := range attributes.Attributes {
			if a.IsExportedFunction() {
				logger.Infof("   %s", a.Function.String())
			}
		}
	}
}

func (g *CppExportsGenerator) WriteEnd() {
	if !g.hasCppInterface {
		return
	}

	// validation function: lazily builds the process-lifetime signature set
	// on first call so consumers can check a signature before resolving the
	// symbol (a mismatched build fails loudly instead of corrupting memory)
	g.buf.WriteString("\n")
	g.buf.WriteString("// validate (ensure exported C++ functions exist before calling them)\n")
	fmt.Fprintf(&g.buf, "static int %s(const char* sig) {\n", validateRegisteredName(g.pkg))
	g.buf.WriteString("    static std::set<std::string> signatures;\n")
	g.buf.WriteString("    if (signatures.empty()) {\n")
	for _, a := range g.exports {
		fmt.Fprintf(&g.buf, "        signatures.insert(\"%s\");\n",
			a.Function.Signature(a.ExportedName()))
	}
	g.buf.WriteString("    }\n")
	g.buf.WriteString("    return signatures.find(sig) != signatures.end();\n")
	g.buf.WriteString("}\n")

	// registration function: publishes every export (plus the validator
	// itself) in the host runtime's dynamic-symbol table
	g.buf.WriteString("\n")
	g.buf.WriteString("// registerCCallable (register entry points for exported C++ functions)\n")
	fmt.Fprintf(&g.buf, "RcppExport SEXP %s() {\n", registerCCallableName(g.pkg))
	for _, a := range g.exports {
		g.buf.WriteString(g.registerCCallable(4, a.ExportedName(), a.Function.Name))
		g.buf.WriteString("\n")
	}
	g.buf.WriteString(g.registerCCallable(4, validateFunctionName(), validateFunctionName()))
	g.buf.WriteString("\n")
	g.buf.WriteString("    return R_NilValue;\n")
	g.buf.WriteString("}\n")
}

// registerCCallable renders one R_RegisterCCallable line mapping the
// qualified exported name to the shim's function pointer.
func (g *CppExportsGenerator) registerCCallable(indent int, exportedName, name string) string {
	pad := strings.Repeat(" ", indent)
	return fmt.Sprintf("%sR_RegisterCCallable(\"%s\", \"%s_%s\", (DL_FUNC)%s_%s);",
		pad, g.pkg, g.pkg, exportedName, g.pkg, name)
}

func (g *CppExportsGenerator) Commit(includes []string) (CommitAction, error) {
	var preamble strings.Builder
	for _, include := range includes {
		preamble.WriteString(include)
		preamble.WriteString("\n")
	}
	preamble.WriteString("#include <string>\n")
	preamble.WriteString("#include <set>\n\n")
	preamble.WriteString("using namespace Rcpp;\n\n")

	return g.commit(preamble.String())
}

func (g *CppExportsGenerator) Remove() (bool, error) {
	return g.removeTarget()
}

// generateCpp emits the C boundary shims that make exported functions
// callable as C symbols with SEXP parameters and return: each shim unboxes
// its arguments to the declared native types, calls the real function, and
// boxes the (possibly void) result.
func generateCpp(buf *strings.Builder, attributes *attr.SourceFileAttributes, includePrototype bool, contextID string) {
	for _, a := range attributes.Attributes {
		if !a.IsExportedFunction() {
			continue
		}
		function := a.Function

		if includePrototype {
			fmt.Fprintf(buf, "// %s\n", function.Name)
			fmt.Fprintf(buf, "%s;", function.String())
		}

		buf.WriteString("\nRcppExport SEXP ")
		if contextID != "" {
			buf.WriteString(contextID)
			buf.WriteString("_")
		}
		buf.WriteString(function.Name)
		buf.WriteString("(")
		for i, argument := range function.Arguments {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "SEXP %sSEXP", argument.Name)
		}
		buf.WriteString(") {\n")
		buf.WriteString("BEGIN_RCPP\n")

		for _, argument := range function.Arguments {
			fmt.Fprintf(buf, "    %s %s = Rcpp::as<%s >(%sSEXP);\n",
				argument.Type.Name, argument.Name, argument.Type.Name, argument.Name)
		}

		buf.WriteString("    ")
		if !function.Type.IsVoid() {
			fmt.Fprintf(buf, "%s result = ", function.Type.Name)
		}
		buf.WriteString(function.Name)
		buf.WriteString("(")
		for i, argument := range function.Arguments {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(argument.Name)
		}
		buf.WriteString(");\n")

		result := "Rcpp::wrap(result)"
		if function.Type.IsVoid() {
			result = "R_NilValue"
		}
		fmt.Fprintf(buf, "    return %s;\n", result)
		buf.WriteString("END_RCPP\n")
		buf.WriteString("}\n")
	}
}
