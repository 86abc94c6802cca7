package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yacchi/jubako"

	"github.com/wrklg/jira-wrklg/internal/cmd/auth"
	configcmd "github.com/wrklg/jira-wrklg/internal/cmd/config"
	"github.com/wrklg/jira-wrklg/internal/cmd/initcmd"
	"github.com/wrklg/jira-wrklg/internal/cmd/timecmd"
	"github.com/wrklg/jira-wrklg/internal/config"
	"github.com/wrklg/jira-wrklg/internal/debug"
	"github.com/wrklg/jira-wrklg/internal/ui"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jira-wrklg",
	Short: "jira-wrklg - Jira worklog reports in your terminal",
	Long: `jira-wrklg sums up the time logged on Jira issues per author.

Store your credentials once with 'jira-wrklg init', then run
'jira-wrklg time -i PROJ-1 --from 01.03.2024' to see who logged what.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// デバッグモードの有効化
		if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
			debug.Enable()
		}

		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}

		// outputフラグはArgsレイヤーに載せて設定より優先させる
		var setOptions []jubako.SetOption
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			setOptions = append(setOptions, jubako.String(config.PathDisplayOutput, output))
		}
		if len(setOptions) > 0 {
			if err := cfg.SetFlagsLayer(setOptions); err != nil {
				return err
			}
		}

		// カラー設定
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			ui.SetColorEnabled(false)
		} else {
			ui.ApplyColorMode(cfg.Display().Color)
		}

		debug.Log("config loaded",
			"config", cfg.GetUserConfigPath(),
			"output", cfg.Display().Output,
		)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// グローバルフラグ
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	// サブコマンド登録
	rootCmd.AddCommand(initcmd.InitCmd)
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(timecmd.TimeCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
}
