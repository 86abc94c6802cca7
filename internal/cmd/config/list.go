package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/cmdutil"
	"github.com/wrklg/jira-wrklg/internal/config"
)

var listAllFlag bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration values",
	Long: `List configuration values.

By default, shows only values that do not come from the built-in defaults.
Use --all to show all configuration values including defaults.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listAllFlag, "all", "a", false, "Show all configuration values including defaults")
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if userPath := cfg.GetUserConfigPath(); userPath != "" {
		fmt.Fprintf(out, "# User config: %s\n", userPath)
	}
	fmt.Fprintf(out, "# Credentials: %s\n", cfg.GetCredentialsPath())

	type entry struct {
		line    string
		comment string
	}
	var entries []entry
	maxWidth := 0

	cfg.WalkEx(func(e config.WalkEntry) bool {
		// --all でない場合、defaults レイヤーの値はスキップ
		if !listAllFlag && e.Layer == config.LayerDefaults {
			return true
		}
		value := fmt.Sprintf("%v", e.Value)
		line := fmt.Sprintf("%s=%s", e.Path, value)
		maxWidth = max(maxWidth, len(line))

		comment := e.Layer
		if e.DefaultValue != nil {
			if def := fmt.Sprintf("%v", e.DefaultValue); def != value {
				comment = fmt.Sprintf("%s, default: %s", e.Layer, def)
			}
		}
		entries = append(entries, entry{line: line, comment: comment})
		return true
	})

	// 縦位置を揃えて出力
	for _, e := range entries {
		fmt.Fprintf(out, "%-*s  # %s\n", maxWidth, e.line, e.comment)
	}

	if len(entries) == 0 {
		if listAllFlag {
			fmt.Fprintln(out, "No configuration values found.")
		} else {
			fmt.Fprintln(out, "No modified configuration values.")
			fmt.Fprintln(out, "Use --all to show all configuration values including defaults.")
		}
	}
	return nil
}
