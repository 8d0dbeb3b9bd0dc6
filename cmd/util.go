package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"vaultkeep/internal/cliconfig"
	"vaultkeep/pkg/client"
)

var (
	greenCheck = color.New(color.FgGreen).Sprint("✔")
	redCross   = color.New(color.FgRed).Sprint("✘")
	bold       = color.New(color.Bold).Sprint
	faint      = color.New(color.Faint).Sprint
)

// BeQuietError signals that the command already printed a useful error
// message and the root handler should not log another one.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "exiting"
}

func logSuccess(format string, args ...any) {
	log.Info().Msgf("%s "+format, append([]any{greenCheck}, args...)...)
}

func logError(err error, transactionID, msg string) error {
	if transactionID != "" {
		log.Error().Msgf("%s %s (transaction ID: %s)", redCross, msg, transactionID)
	} else {
		log.Error().Msgf("%s %s", redCross, msg)
	}
	log.Error().Msgf("error: %v", err)
	return BeQuietError{}
}

// getClient builds an API client for the configured server, attaching the
// saved credential for that host if one exists.
func getClient() (*client.Client, string, error) {
	server := viper.GetString(ServerAddrKey)
	if server == "" {
		return nil, "", fmt.Errorf("server address not configured, provide via --server or VAULTKEEP_SERVER")
	}

	var token, userID string
	if cfg, err := cliconfig.Load(); err == nil {
		if cred, err := cfg.GetCredential(server); err == nil {
			token = cred.Token
			userID = cred.UserID
		} else if !errors.Is(err, cliconfig.ErrCredentialNotFound) {
			return nil, "", err
		}
	}

	return client.New(server, client.WithAuthToken(token)), userID, nil
}

func applyTableFormat(t table.Writer) {
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
