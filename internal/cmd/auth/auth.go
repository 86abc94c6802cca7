package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/api"
	"github.com/wrklg/jira-wrklg/internal/cmdutil"
)

var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Check the stored credentials against Jira",
	Long: `Open a session with the stored credentials and show who you are.

Examples:
  jira-wrklg auth
  jira-wrklg auth --quiet`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

var authQuiet bool

func init() {
	AuthCmd.Flags().BoolVarP(&authQuiet, "quiet", "q", false, "Exit with code 0 if authenticated, non-zero otherwise (no output)")
}

func runAuth(cmd *cobra.Command, args []string) error {
	session, err := Authenticate(cmd)
	if err != nil {
		if authQuiet {
			return cmdutil.Silent(err)
		}
		return err
	}

	if authQuiet {
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Authenticated as %s (%s)\n", displayName(session.User()), session.BaseURL())
	return nil
}

// Authenticate はクレデンシャルを読み込んでセッションを開く
// time コマンドからも前段として呼ばれる
func Authenticate(cmd *cobra.Command) (*api.Session, error) {
	session, _, err := cmdutil.GetSession(cmd)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func displayName(u api.User) string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Name != "":
		return u.Name
	case u.EmailAddress != "":
		return u.EmailAddress
	default:
		return u.AccountID
	}
}
