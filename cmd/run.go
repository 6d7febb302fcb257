package cmd

import (
	"github.com/douhashi/merge-labeler/internal/event"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var failOnError bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "GitHub Actionsのイベントに応じてラベルを同期",
		Long: `GITHUB_EVENT_NAMEに応じて処理を切り替えます。

  pull_request_target, pull_request  イベントのPRのみを処理
  push                               オープンなPRをすべて処理`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("fail-on-error") {
				appCfg.Batch.FailOnError = failOnError
			}
			return runEvent(cmd)
		},
	}

	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "pushイベントで1件でも失敗したら終了コード1にする")

	return cmd
}

func runEvent(cmd *cobra.Command) error {
	a, err := newApp(appCfg, appLog)
	if err != nil {
		return err
	}

	env := event.FromEnv(getenv)
	if err := env.Validate(); err != nil {
		return err
	}
	owner, repo, err := event.SplitRepository(env.Repository)
	if err != nil {
		return err
	}

	if env.IsPush() {
		if _, err := event.ReadPushEvent(env.Path); err != nil {
			return err
		}
		appLog.Info("Push: Checking PR labels...", "event", env.Name, "repository", env.Repository)
		return syncPullRequests(cmd, a, owner, repo)
	}

	ev, err := event.ReadPullRequestEvent(env.Path)
	if err != nil {
		return err
	}
	appLog.Info("PR: Checking PR labels...", "event", env.Name, "repository", env.Repository)
	return checkPullRequest(cmd, a, owner, repo, ev.GetPullRequest().GetNumber())
}
