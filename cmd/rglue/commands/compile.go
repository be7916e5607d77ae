package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rglue/rglue/config"
	"github.com/rglue/rglue/errors"
	"github.com/rglue/rglue/gen"
	"github.com/rglue/rglue/logger"
)

var compilePackageName string

// CompileCmd regenerates the glue artifacts for one package.
var CompileCmd = &cobra.Command{
	Use:   "compile [package-dir]",
	Short: "Scan annotated sources and regenerate glue artifacts",
	Long: `Scan the package's src/ directory for [[rglue::export]] attributes and
regenerate the C++ shims, re-export headers, and R wrappers.

Settings can be kept in an rglue.yaml at the package root (package name
override, extra C++ preamble includes, verbose). Flags win over the file.

Exit codes:
  0 - Generation succeeded (whether or not anything changed)
  1 - Generation failed (unsafe overwrite target, i/o error)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	CompileCmd.Flags().StringVar(&compilePackageName, "package", "",
		"Package name (default: rglue.yaml or the directory name)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	pkgDir := packageDir(args)

	result, err := compilePackage(pkgDir)
	if err != nil {
		return err
	}

	for _, path := range result.Updated {
		fmt.Printf("✓ Generated %s\n", path)
	}
	for _, path := range result.Removed {
		fmt.Printf("✗ Removed %s\n", path)
	}
	if len(result.Updated) == 0 && len(result.Removed) == 0 {
		fmt.Println("All generated files are up to date")
	}

	return nil
}

// compilePackage merges rglue.yaml with CLI flags and runs the pipeline.
// Shared with the watch command.
func compilePackage(pkgDir string) (*gen.Result, error) {
	cfg, err := config.Load(pkgDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load package config")
	}

	pkg := cfg.Package
	if compilePackageName != "" {
		pkg = compilePackageName
	}

	verbose := cfg.Verbose || verbosity >= logger.VerbosityInfo

	// The export listing is logged at info level, so a verbose: true in
	// rglue.yaml must raise the logger the same way -v would.
	if verbose && verbosity < logger.VerbosityInfo {
		if err := logger.Initialize(jsonLogs, logger.VerbosityInfo); err != nil {
			return nil, err
		}
	}

	opts := gen.Options{
		PkgDir:   pkgDir,
		Package:  pkg,
		Includes: cfg.Includes,
		Verbose:  verbose,
	}

	return gen.Run(opts)
}
