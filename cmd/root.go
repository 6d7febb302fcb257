package cmd

import (
	"fmt"
	"os"

	"github.com/douhashi/merge-labeler/internal/config"
	"github.com/douhashi/merge-labeler/internal/logger"
	"github.com/douhashi/merge-labeler/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
	rootCmd  *cobra.Command
	appCfg   *config.Config
	appLog   logger.Logger
)

func init() {
	rootCmd = NewRootCmd()
}

// NewRootCmd creates a new root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge-labeler",
		Short: "プルリクエストのbehind/conflictラベルを自動で付け外しするツール",
		Long: `merge-labelerは、プルリクエストのmergeabilityをGitHubに問い合わせ、
ベースブランチより遅れているPRにbehind、コンフリクトしているPRにconflictラベルを付け外しします。
GitHub Actionsのpull_request_target / pushイベントで実行することを想定しています。`,
		Version:      version.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイルを先に読み込む
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			appCfg = cfg

			// ロガーの初期化
			if verbose {
				os.Setenv("DEBUG", "true")
			}
			if logLevel != "" {
				os.Setenv("LOG_LEVEL", logLevel)
			}
			appLog, err = logger.NewFromEnv()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "ログレベル (debug, info, warn, error)")

	return cmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
