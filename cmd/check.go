package cmd

import (
	"errors"
	"fmt"

	"github.com/douhashi/merge-labeler/internal/mergeability"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var (
		repoFlag string
		number   int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "1つのプルリクエストのラベルを同期",
		Long: `指定したプルリクエストのmergeabilityが確定するまで待ち、
behind/conflictラベルを付け外しします。`,
		Example: `  merge-labeler check --repo douhashi/merge-labeler --pr 42`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if number <= 0 {
				return errors.New("--pr must be a positive pull request number")
			}
			owner, repo, err := resolveRepository(cmd.Context(), repoFlag)
			if err != nil {
				return err
			}
			a, err := newApp(appCfg, appLog)
			if err != nil {
				return err
			}
			return checkPullRequest(cmd, a, owner, repo, number)
		},
	}

	cmd.Flags().StringVarP(&repoFlag, "repo", "r", "", "対象リポジトリ (owner/repo)。省略時はGITHUB_REPOSITORY")
	cmd.Flags().IntVarP(&number, "pr", "p", 0, "プルリクエスト番号")

	return cmd
}

func checkPullRequest(cmd *cobra.Command, a *app, owner, repo string, number int) error {
	ref := mergeability.PullRequestRef{Owner: owner, Repo: repo, Number: number}

	result, err := a.labeler.Process(cmd.Context(), ref)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: add=%v remove=%v\n", ref, result.Plan.NeedAdd, result.Plan.NeedRemove)
	return nil
}
