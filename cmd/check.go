package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cottand/jgenerics/generics"
)

var CheckCmd = &cobra.Command{
	Use:          "check queries.yaml",
	Short:        "Evaluate a file of generics queries",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	checkFlags *engineFlags
	checkJobs  *int
	checkStats *bool
)

func init() {
	checkFlags = bindEngineFlags(CheckCmd)
	checkJobs = CheckCmd.Flags().IntP("jobs", "j", runtime.GOMAXPROCS(0), "number of queries evaluated concurrently")
	checkStats = CheckCmd.Flags().Bool("stats", false, "print locator cache statistics")
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings := checkFlags.settings()
	registry, err := checkFlags.registry()
	if err != nil {
		return err
	}

	target, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("could not get absolute path of target: %w", err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("could not read queries: %w", err)
	}
	file, err := ParseQueryFile(content)
	if err != nil {
		return err
	}
	if err := registry.LoadFS(os.DirFS(filepath.Dir(target)), file.Model...); err != nil {
		return err
	}

	engine := generics.NewEngine(settings)
	results, err := RunQueries(cmd.Context(), engine, registry, file.Queries, *checkJobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	m := outputMarkers()
	failed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			_, _ = fmt.Fprintf(out, "%s %s: %v\n", m.fail, res.Query, res.Err)
		case res.Mismatch:
			failed++
			_, _ = fmt.Fprintf(out, "%s %s: %s (unexpected)\n", m.fail, res.Query, res.Output)
		default:
			_, _ = fmt.Fprintf(out, "%s %s: %s\n", m.ok, res.Query, res.Output)
		}
	}
	if *checkStats {
		stats := engine.CacheStats()
		_, _ = fmt.Fprintf(out, "cache: %d entries, %d hits, %d misses\n", stats.Entries, stats.Hits, stats.Misses)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(results))
	}
	return nil
}
