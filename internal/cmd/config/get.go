package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/cmdutil"
	"github.com/wrklg/jira-wrklg/internal/config"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value. The API token is masked.

Examples:
  jira-wrklg config get credential.url
  jira-wrklg config get display.output
  jira-wrklg config get worklog.page_size`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}

	// WalkEx はセンシティブ値をマスク済みで返す
	var (
		value any
		found bool
	)
	cfg.WalkEx(func(e config.WalkEntry) bool {
		if e.Path == key {
			value, found = e.Value, true
			return false
		}
		return true
	})
	if !found {
		return cmdutil.Usagef("unknown config key: %s", key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
