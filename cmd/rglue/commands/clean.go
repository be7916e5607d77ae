package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rglue/rglue/config"
	"github.com/rglue/rglue/errors"
	"github.com/rglue/rglue/gen"
)

var cleanPackageName string

// CleanCmd deletes every generated artifact for one package.
var CleanCmd = &cobra.Command{
	Use:   "clean [package-dir]",
	Short: "Delete all generated glue artifacts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	CleanCmd.Flags().StringVar(&cleanPackageName, "package", "",
		"Package name (default: rglue.yaml or the directory name)")
}

func runClean(cmd *cobra.Command, args []string) error {
	pkgDir := packageDir(args)

	cfg, err := config.Load(pkgDir)
	if err != nil {
		return errors.Wrap(err, "failed to load package config")
	}

	pkg := cfg.Package
	if cleanPackageName != "" {
		pkg = cleanPackageName
	}

	removed, err := gen.Clean(pkgDir, pkg)
	if err != nil {
		return err
	}

	for _, path := range removed {
		fmt.Printf("✗ Removed %s\n", path)
	}
	if len(removed) == 0 {
		fmt.Println("Nothing to remove")
	}

	return nil
}
