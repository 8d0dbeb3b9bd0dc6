package cmd

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"vaultkeep/pkg/client"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity behind the saved token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, _, err := getClient()
		if err != nil {
			return err
		}

		principal, transactionID, err := cli.Me(cmd.Context())
		if err != nil {
			if errors.Is(err, client.ErrInvalidToken) {
				log.Error().Msgf("%s saved token is invalid or expired, run %s again", redCross, bold("vaultkeep login"))
				return BeQuietError{}
			}
			return logError(err, transactionID, "failed to fetch identity")
		}

		logSuccess("logged in as %s (id: %s)", bold(principal.Username), principal.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
