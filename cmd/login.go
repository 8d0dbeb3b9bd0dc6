package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vaultkeep/internal/cliconfig"
	"vaultkeep/pkg/client"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a vaultkeep server",
	Long: `Exchanges a username and password for a bearer token.
The token is saved locally to allow future authenticated requests.
The password is read from the VAULTKEEP_PASSWORD environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginUsername == "" {
			return fmt.Errorf("username cannot be empty")
		}
		password := os.Getenv("VAULTKEEP_PASSWORD")
		if password == "" {
			return fmt.Errorf("password not provided, set VAULTKEEP_PASSWORD")
		}

		server := viper.GetString(ServerAddrKey)
		if server == "" {
			return fmt.Errorf("server address not configured, provide via --server or env")
		}
		u, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("parsing server URL: %w", err)
		}

		cli := client.New(server)

		log.Info().Msgf("Logging in to server %q...", u.Host)

		token, transactionID, err := cli.Login(cmd.Context(), loginUsername, password)
		if err != nil {
			return logError(err, transactionID, "login failed")
		}

		// resolve the principal id so other commands can address owned routes
		me, _, err := client.New(server, client.WithAuthToken(token.AccessToken)).Me(cmd.Context())
		if err != nil {
			return logError(err, "", "login succeeded but could not resolve principal")
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = &cliconfig.CLIConfig{}
		}
		if err := cfg.SetCredential(server, &cliconfig.Credential{
			Token:  token.AccessToken,
			UserID: me.ID,
		}); err != nil {
			return err
		}
		if err := cliconfig.Save(cfg); err != nil {
			return logError(err, "", "login succeeded but could not save credentials")
		}

		logSuccess("saved credentials for %s", bold(u.Host))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username to log in as")
	_ = loginCmd.MarkFlagRequired("username")
}
