package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/cmdutil"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file paths",
	Args:  cobra.NoArgs,
	RunE:  runPath,
}

func runPath(cmd *cobra.Command, _ []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config:      %s\n", cfg.GetUserConfigPath())
	fmt.Fprintf(out, "Credentials: %s\n", cfg.GetCredentialsPath())
	return nil
}
