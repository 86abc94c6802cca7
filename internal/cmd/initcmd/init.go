package initcmd

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/wrklg/jira-wrklg/internal/cmdutil"
	"github.com/wrklg/jira-wrklg/internal/config"
	"github.com/wrklg/jira-wrklg/internal/debug"
	"github.com/wrklg/jira-wrklg/internal/ui"
)

// APITokenURL は Atlassian の APIトークン発行ページ
const APITokenURL = "https://id.atlassian.com/manage-profile/security/api-tokens"

var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Store Jira credentials",
	Long: `Save the Jira URL, your username and an API token.

Values not given as flags are asked for interactively; the token is not echoed.

Examples:
  jira-wrklg init
  jira-wrklg init --url https://example.atlassian.net --username me@example.com --token XXXX
  jira-wrklg init --web`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initURL      string
	initUsername string
	initToken    string
	initForce    bool
	initWeb      bool
)

// テストで差し替える
var (
	isInteractive = ui.IsInteractive
	openBrowser   = browser.OpenURL
	promptInput   = ui.Input
	promptSecret  = ui.Password
	promptConfirm = ui.Confirm
)

func init() {
	InitCmd.Flags().StringVar(&initURL, "url", "", "Jira base URL (e.g. https://example.atlassian.net)")
	InitCmd.Flags().StringVar(&initUsername, "username", "", "Jira username or e-mail")
	InitCmd.Flags().StringVar(&initToken, "token", "", "Jira API token")
	InitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing credentials without asking")
	InitCmd.Flags().BoolVar(&initWeb, "web", false, "Open the API token page in the browser")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}

	interactive := isInteractive()
	path := cfg.GetCredentialsPath()

	// 既存クレデンシャルの上書き確認
	if cfg.HasCredentialsFile() && !initForce && interactive {
		ok, err := promptConfirm(fmt.Sprintf("Credentials already exist in %s. Overwrite?", path), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if initWeb {
		if err := openBrowser(APITokenURL); err != nil {
			ui.Warning("Could not open the browser: %v", err)
			fmt.Fprintf(cmd.OutOrStdout(), "Create an API token at %s\n", APITokenURL)
		}
	}

	current := cfg.Resolved().Credential
	cred := config.Credential{
		URL:      initURL,
		Username: initUsername,
		Token:    initToken,
	}

	if cred.URL == "" {
		if cred.URL, err = ask(interactive, "url", func() (string, error) {
			return promptInput("Jira URL:", current.URL)
		}); err != nil {
			return err
		}
	}
	if cred.Username == "" {
		if cred.Username, err = ask(interactive, "username", func() (string, error) {
			return promptInput("Username:", current.Username)
		}); err != nil {
			return err
		}
	}
	if cred.Token == "" {
		if cred.Token, err = ask(interactive, "token", func() (string, error) {
			return promptSecret("API token:")
		}); err != nil {
			return err
		}
	}

	cred.Normalize()
	if !cred.Complete() {
		return cmdutil.Usagef("url, username and token must not be empty")
	}

	if err := cfg.SetCredential(&cred); err != nil {
		return fmt.Errorf("failed to set credentials: %w", err)
	}
	if err := cfg.Save(cmd.Context()); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	debug.Log("credentials saved", "path", path, "url", cred.URL, "username", cred.Username)

	fmt.Fprintf(cmd.OutOrStdout(), "We saved credentials in %s\n", path)
	return nil
}

// ask は端末ならプロンプトを出し、そうでなければフラグ指定を求めるエラーを返す
func ask(interactive bool, flag string, prompt func() (string, error)) (string, error) {
	if !interactive {
		return "", cmdutil.Usagef("--%s is required when stdin is not a terminal", flag)
	}
	return prompt()
}
