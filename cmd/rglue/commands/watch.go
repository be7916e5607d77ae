package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rglue/rglue/gen"
	"github.com/rglue/rglue/watch"
)

// WatchCmd keeps the glue artifacts in sync while sources are being edited.
var WatchCmd = &cobra.Command{
	Use:   "watch [package-dir]",
	Short: "Regenerate glue artifacts whenever src/ changes",
	Long: `Run an initial compile, then watch the package's src/ directory and
regenerate the glue artifacts (debounced) on every C++ source change.
Stops on SIGINT/SIGTERM.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().StringVar(&compilePackageName, "package", "",
		"Package name (default: rglue.yaml or the directory name)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	pkgDir := packageDir(args)

	report := func(result *gen.Result) {
		for _, path := range result.Updated {
			fmt.Printf("✓ Generated %s\n", path)
		}
		for _, path := range result.Removed {
			fmt.Printf("✗ Removed %s\n", path)
		}
	}

	// initial run so the artifacts are current before we start waiting
	result, err := compilePackage(pkgDir)
	if err != nil {
		return err
	}
	report(result)

	watcher, err := watch.NewSourceWatcher(pkgDir, func() error {
		result, err := compilePackage(pkgDir)
		if err != nil {
			return err
		}
		report(result)
		return nil
	})
	if err != nil {
		return err
	}
	watcher.Start()
	defer watcher.Stop()

	fmt.Printf("Watching %s for changes (ctrl-c to stop)\n", pkgDir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	return nil
}
