package timecmd

import (
	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/cmd/auth"
	"github.com/wrklg/jira-wrklg/internal/cmdutil"
	"github.com/wrklg/jira-wrklg/internal/config"
	"github.com/wrklg/jira-wrklg/internal/debug"
	"github.com/wrklg/jira-wrklg/internal/report"
	"github.com/wrklg/jira-wrklg/internal/worklog"
)

var TimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Sum up logged time per author",
	Long: `Fetch the worklogs of the given issues and sum up the time per author.

Worklogs created inside the window are counted. Worklogs created before the
window but updated inside it are listed as changed and not counted.
Both bounds are exclusive and accept DD.MM.YYYY or DD.MM.YYYY HH:MM.

Examples:
  jira-wrklg time -i PROJ-1
  jira-wrklg time -i PROJ-1 -i PROJ-2 --from 01.03.2024 --to "31.03.2024 18:00"
  jira-wrklg time -i PROJ-1 --summary 3
  jira-wrklg time -i PROJ-1 -o json --jq '.[].totals'`,
	Args: cobra.NoArgs,
	RunE: runTime,
}

var (
	timeIssues  []string
	timeFrom    string
	timeTo      string
	timeSummary int
	timeJQ      string
)

func init() {
	TimeCmd.Flags().StringArrayVarP(&timeIssues, "issues", "i", nil, "Issue key (repeatable, comma separated allowed)")
	TimeCmd.Flags().StringVar(&timeFrom, "from", "", "Window start, exclusive (DD.MM.YYYY or DD.MM.YYYY HH:MM)")
	TimeCmd.Flags().StringVar(&timeTo, "to", "", "Window end, exclusive (DD.MM.YYYY or DD.MM.YYYY HH:MM)")
	TimeCmd.Flags().IntVar(&timeSummary, "summary", 0, "Append a summary of this many sentences from worklog comments (text output)")
	TimeCmd.Flags().StringVar(&timeJQ, "jq", "", "Filter JSON output using a jq expression")
}

func runTime(cmd *cobra.Command, args []string) error {
	// ネットワークに触れる前に入力を検証する
	window, err := worklog.NewWindow(timeFrom, timeTo)
	if err != nil {
		return err
	}
	if timeSummary < 0 {
		return cmdutil.Usagef("--summary must not be negative")
	}

	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}
	format := cfg.Display().Output
	if timeJQ != "" && format != config.OutputJSON {
		return cmdutil.Usagef("--jq requires --output json")
	}

	session, err := auth.Authenticate(cmd)
	if err != nil {
		return err
	}

	renderer, err := report.New(format, cmd.OutOrStdout(), report.Options{
		JQ:               timeJQ,
		SummarySentences: timeSummary,
	})
	if err != nil {
		return cmdutil.Usagef("%v", err)
	}

	issues := cmdutil.SplitIssueKeys(timeIssues)
	debug.Log("collecting worklogs", "issues", issues, "from", window.From, "to", window.To)

	if err := worklog.Collect(cmd.Context(), session, issues, window, renderer.Issue); err != nil {
		return err
	}
	return renderer.Flush()
}
