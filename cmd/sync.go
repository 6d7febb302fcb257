package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var (
		repoFlag    string
		failOnError bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "オープンなプルリクエストすべてのラベルを同期",
		Long: `リポジトリのオープンなプルリクエストを並行して処理します。
1件の失敗は他のプルリクエストの処理を止めません。`,
		Example: `  merge-labeler sync --repo douhashi/merge-labeler`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("fail-on-error") {
				appCfg.Batch.FailOnError = failOnError
			}
			owner, repo, err := resolveRepository(cmd.Context(), repoFlag)
			if err != nil {
				return err
			}
			a, err := newApp(appCfg, appLog)
			if err != nil {
				return err
			}
			return syncPullRequests(cmd, a, owner, repo)
		},
	}

	cmd.Flags().StringVarP(&repoFlag, "repo", "r", "", "対象リポジトリ (owner/repo)。省略時はGITHUB_REPOSITORY")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "1件でも失敗したら終了コード1にする")

	return cmd
}

func syncPullRequests(cmd *cobra.Command, a *app, owner, repo string) error {
	report, err := a.labeler.SyncOpenPullRequests(cmd.Context(), a.lister, owner, repo)
	if err != nil {
		return err
	}

	numbers := make([]int, 0, len(report.Results))
	for n := range report.Results {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	out := cmd.OutOrStdout()
	for _, n := range numbers {
		plan := report.Results[n].Plan
		fmt.Fprintf(out, "%s/%s#%d: add=%v remove=%v\n", owner, repo, n, plan.NeedAdd, plan.NeedRemove)
	}
	fmt.Fprintf(out, "%d pull requests checked, %d failed\n", report.Attempted(), len(report.Failures))

	if batchErr := report.Err(); batchErr != nil {
		if appCfg.Batch.FailOnError {
			return fmt.Errorf("%d of %d pull requests failed: %w", len(report.Failures), report.Attempted(), batchErr)
		}
		appLog.Warn("Some pull requests failed", "failed", len(report.Failures), "error", batchErr)
	}

	return nil
}
