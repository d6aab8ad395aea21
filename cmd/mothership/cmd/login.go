package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <provider>",
	Short: "Print the OAuth2 login URL for a provider",
	Long: "Ask the server for the login URL of the given OAuth2 provider. Visit the " +
		"URL in a browser to authenticate; the server derives your identity from " +
		"the provider account.",
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	info, err := client.GetLoginInfo(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Authenticate with %s:\n", info.ProviderName)
	fmt.Fprintln(os.Stdout, info.AuthURL)
	return nil
}
