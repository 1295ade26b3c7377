package commands

import (
	"time"

	"github.com/siftlab/sift/internal/app"
	"github.com/siftlab/sift/internal/core/domain"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// defaultFetchCacheSeconds bounds how often `git fetch` runs between
// invocations targeting the same branch.
const defaultFetchCacheSeconds = 60

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenarios...]",
		Short: "Run scenarios, optionally filtered to those changed against a branch",
		Long: `Run executes the scenarios defined in sift.yaml.

With --changed-against-branch, only scenarios whose source files differ from
the given branch are executed; the rest are reported as skipped. Without it,
every scenario (or the ones named as arguments) runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			branch, _ := cmd.Flags().GetString("changed-against-branch")
			cacheSeconds, _ := cmd.Flags().GetInt("changed-fetch-cache")
			noFetch, _ := cmd.Flags().GetBool("changed-no-fetch")
			parallelism, _ := cmd.Flags().GetInt("parallelism")
			jsonLogs, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")
			watch, _ := cmd.Flags().GetBool("watch")

			if cacheSeconds < 0 {
				return zerr.With(domain.ErrNegativeCacheTTL, "seconds", cacheSeconds)
			}
			if noFetch && cmd.Flags().Changed("changed-fetch-cache") {
				return domain.ErrConflictingFetchFlags
			}
			if branch != "" {
				if err := domain.ValidateBranch(branch); err != nil {
					return err
				}
			}

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Branch:      branch,
				FetchTTL:    time.Duration(cacheSeconds) * time.Second,
				NoFetch:     noFetch,
				Parallelism: parallelism,
				JSON:        jsonLogs,
				Verbose:     verbose,
				Watch:       watch,
			})
		},
	}
	cmd.Flags().StringP("changed-against-branch", "b", "", "Only run scenarios whose sources changed relative to this branch")
	cmd.Flags().Int("changed-fetch-cache", defaultFetchCacheSeconds, "Minimum seconds between fetches of the target branch")
	cmd.Flags().Bool("changed-no-fetch", false, "Diff against the local remote-tracking ref without fetching")
	cmd.Flags().IntP("parallelism", "j", 1, "Maximum number of scenarios to run concurrently")
	cmd.Flags().Bool("json", false, "Emit logs as JSON")
	cmd.Flags().BoolP("verbose", "v", false, "Show debug logging, including span timings")
	cmd.Flags().BoolP("watch", "w", false, "Re-run selection and execution when source files change")
	return cmd
}
