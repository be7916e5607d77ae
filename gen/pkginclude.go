package gen

import (
	"fmt"
	"path/filepath"

	"github.com/rglue/rglue/attr"
)

// CppPackageIncludeGenerator emits inst/include/<pkg>.h: the umbrella header
// consumers actually include, which just guards and forwards to the
// re-export header. Removed alongside it when no file declares the cpp
// interface.
type CppPackageIncludeGenerator struct {
	base
}

func NewCppPackageIncludeGenerator(pkgDir, pkg string) (*CppPackageIncludeGenerator, error) {
	b, err := newBase(
		filepath.Join(pkgDir, "inst", "include", pkg+".h"),
		pkg, "//", tokenPkgInclude)
	if err != nil {
		return nil, err
	}
	return &CppPackageIncludeGenerator{base: b}, nil
}

func (g *CppPackageIncludeGenerator) WriteBegin() {}

func (g *CppPackageIncludeGenerator) WriteFunctions(attributes *attr.SourceFileAttributes, verbose bool) {
	g.noteInterfaces(attributes)
}

func (g *CppPackageIncludeGenerator) WriteEnd() {
	if !g.hasCppInterface {
		return
	}

	guard := g.headerGuard()
	fmt.Fprintf(&g.buf, "#ifndef %s\n", guard)
	fmt.Fprintf(&g.buf, "#define %s\n\n", guard)
	fmt.Fprintf(&g.buf, "#include \"%s%s\"\n", g.pkg, exportsHeaderSuffix)
	g.buf.WriteString("\n")
	fmt.Fprintf(&g.buf, "#endif // %s\n", guard)
}

func (g *CppPackageIncludeGenerator) Commit(includes []string) (CommitAction, error) {
	if !g.hasCppInterface {
		return g.removeOnCommit()
	}
	return g.commit("")
}

func (g *CppPackageIncludeGenerator) Remove() (bool, error) {
	return g.removeTarget()
}

func (g *CppPackageIncludeGenerator) headerGuard() string {
	return "__" + g.pkg + "_h__"
}
