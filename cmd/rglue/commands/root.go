// Package commands defines the rglue CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/rglue/rglue/logger"
	"github.com/rglue/rglue/version"
)

var (
	jsonLogs  bool
	verbosity int
)

// RootCmd is the rglue entry point.
var RootCmd = &cobra.Command{
	Use:   "rglue",
	Short: "rglue - R/C++ export glue generator",
	Long: `rglue - R/C++ export glue generator.

rglue scans annotated C++ source files in an R-package-shaped directory for
[[rglue::export]] attributes and keeps four glue artifacts in sync:

  src/RglueExports.cpp             C boundary shims (SEXP in, SEXP out)
  inst/include/<pkg>_RglueExports.h  inline re-export header for C++ callers
  inst/include/<pkg>.h             umbrella header
  R/RglueExports.R                 R wrapper functions + load-time registration

Artifacts are committed idempotently: re-running on unchanged sources writes
nothing. Hand-written files at the target paths are never overwritten.

Examples:
  rglue compile                # regenerate glue for the package in .
  rglue compile path/to/pkg -v # list exports while regenerating
  rglue clean path/to/pkg      # delete every generated artifact
  rglue watch path/to/pkg      # regenerate whenever src/ changes`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(jsonLogs, verbosity)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	RootCmd.Version = version.Get().String()

	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase output verbosity (repeat for more detail: -v, -vv)")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false,
		"Emit logs as JSON instead of console output")

	RootCmd.AddCommand(CompileCmd)
	RootCmd.AddCommand(CleanCmd)
	RootCmd.AddCommand(WatchCmd)
}

// packageDir resolves the optional positional package-directory argument.
func packageDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
