package gen

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rglue/rglue/errors"
	"github.com/rglue/rglue/logger"
	"github.com/rglue/rglue/parser"
)

// Options configures one generation run over an R-package-shaped directory.
type Options struct {
	// PkgDir is the package root (contains src/, R/, inst/).
	PkgDir string

	// Package is the package name; defaults to the base name of PkgDir.
	Package string

	// Includes are preamble lines for the generated C++ artifacts;
	// defaults to a single #include <Rcpp.h>.
	Includes []string

	// Verbose lists the exports found in each scanned file.
	Verbose bool
}

func (o *Options) applyDefaults() {
	if o.Package == "" {
		o.Package = filepath.Base(o.PkgDir)
	}
	if len(o.Includes) == 0 {
		o.Includes = []string{"#include <Rcpp.h>"}
	}
}

// Result is the change report of one run.
type Result struct {
	// SourceFiles are the scanned inputs, in scan order.
	SourceFiles []string

	// Updated and Removed are the artifact paths the run touched.
	Updated []string
	Removed []string
}

// newSet builds the four generators for a package in their fixed broadcast
// order. Construction snapshots existing targets and performs the
// overwrite-safety check, so this is where an unsafe hand-written file at a
// target path aborts the run.
func newSet(pkgDir, pkg string) (*Set, error) {
	set := &Set{}

	cpp, err := NewCppExportsGenerator(pkgDir, pkg)
	if err != nil {
		return nil, err
	}
	set.Add(cpp)

	include, err := NewCppExportsIncludeGenerator(pkgDir, pkg)
	if err != nil {
		return nil, err
	}
	set.Add(include)

	pkgInclude, err := NewCppPackageIncludeGenerator(pkgDir, pkg)
	if err != nil {
		return nil, err
	}
	set.Add(pkgInclude)

	r, err := NewRExportsGenerator(pkgDir, pkg)
	if err != nil {
		return nil, err
	}
	set.Add(r)

	return set, nil
}

// Run executes the full pipeline: enumerate annotated sources in stable
// order, parse each into the symbol model, broadcast every file to every
// generator, then commit each artifact idempotently. Re-running on
// unchanged inputs reports no updates and performs zero writes.
func Run(opts Options) (*Result, error) {
	opts.applyDefaults()

	sources, err := listSourceFiles(opts.PkgDir)
	if err != nil {
		return nil, err
	}

	set, err := newSet(opts.PkgDir, opts.Package)
	if err != nil {
		return nil, err
	}

	set.WriteBegin()

	for _, source := range sources {
		attributes, err := parser.ParseFile(source)
		if err != nil {
			return nil, err
		}
		set.WriteFunctions(attributes, opts.Verbose)
	}

	set.WriteEnd()

	report, err := set.Commit(opts.Includes)
	if err != nil {
		return nil, err
	}

	logger.Debugw("generation run complete",
		logger.FieldPackage, opts.Package,
		logger.FieldCount, len(sources),
		logger.FieldUpdated, len(report.Updated),
		logger.FieldRemoved, len(report.Removed))

	return &Result{
		SourceFiles: sources,
		Updated:     report.Updated,
		Removed:     report.Removed,
	}, nil
}

// Clean deletes every artifact the generators own, returning the paths
// actually removed.
func Clean(pkgDir, pkg string) ([]string, error) {
	if pkg == "" {
		pkg = filepath.Base(pkgDir)
	}
	set, err := newSet(pkgDir, pkg)
	if err != nil {
		return nil, err
	}
	return set.Remove()
}

// listSourceFiles returns the scannable C++ sources under <pkgDir>/src in
// sorted order. Sorted enumeration is what makes output ordering (and
// therefore the whole run) reproducible. The generated shim file itself is
// never scanned.
func listSourceFiles(pkgDir string) ([]string, error) {
	srcDir := filepath.Join(pkgDir, "src")
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapFileIO(err, srcDir)
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == "RglueExports.cpp" {
			continue
		}
		if strings.HasSuffix(name, ".cpp") || strings.HasSuffix(name, ".cc") {
			sources = append(sources, filepath.Join(srcDir, name))
		}
	}
	sort.Strings(sources)
	return sources, nil
}
