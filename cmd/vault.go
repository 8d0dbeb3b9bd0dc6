package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"vaultkeep/internal/core"
	"vaultkeep/pkg/client"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage credential entries on the server",
}

// vaultClient resolves the API client plus the logged-in principal id,
// which owned routes are scoped by.
func vaultClient() (*client.Client, string, error) {
	cli, userID, err := getClient()
	if err != nil {
		return nil, "", err
	}
	if userID == "" {
		return nil, "", fmt.Errorf("not logged in, run %s first", bold("vaultkeep login"))
	}
	return cli, userID, nil
}

var vaultListSearch string

var vaultListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List credential entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, userID, err := vaultClient()
		if err != nil {
			return err
		}

		log.Debug().Msg("Retrieving credential entries...")
		creds, transactionID, err := cli.ListCredentials(cmd.Context(), userID, vaultListSearch)
		if err != nil {
			return logError(err, transactionID, "failed to list credentials")
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Title", "Username", "URL"})

		for _, cred := range creds {
			t.AppendRow(table.Row{
				cred.ID,
				bold(cred.Title),
				cred.Username,
				truncate(cred.URL, 40),
			})
		}

		applyTableFormat(t)
		t.Render()
		return nil
	},
}

var vaultAddEntry core.CredentialUpdate

var vaultAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a credential entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, userID, err := vaultClient()
		if err != nil {
			return err
		}

		created, transactionID, err := cli.CreateCredential(cmd.Context(), userID, vaultAddEntry)
		if err != nil {
			return logError(err, transactionID, "failed to create credential")
		}

		logSuccess("created credential %s (id: %s)", bold(created.Title), created.ID)
		return nil
	},
}

var vaultRemoveCmd = &cobra.Command{
	Use:     "remove <credential-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a credential entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, userID, err := vaultClient()
		if err != nil {
			return err
		}

		transactionID, err := cli.DeleteCredential(cmd.Context(), userID, args[0])
		if err != nil {
			return logError(err, transactionID, "failed to delete credential")
		}

		logSuccess("deleted credential %s", bold(args[0]))
		return nil
	},
}

var vaultShowCmd = &cobra.Command{
	Use:   "show <credential-id>",
	Short: "Show one credential entry, including the secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, userID, err := vaultClient()
		if err != nil {
			return err
		}

		cred, transactionID, err := cli.GetCredential(cmd.Context(), userID, args[0])
		if err != nil {
			return logError(err, transactionID, "failed to fetch credential")
		}

		fmt.Println(bold("\n── " + cred.Title + " ──"))
		fmt.Printf("  %s:  %s\n", faint("Username"), cred.Username)
		fmt.Printf("  %s:  %s\n", faint("Password"), cred.Password)
		fmt.Printf("  %s:       %s\n", faint("URL"), cred.URL)
		if cred.Notes != "" {
			fmt.Printf("  %s:     %s\n", faint("Notes"), cred.Notes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vaultCmd)
	vaultCmd.AddCommand(vaultListCmd, vaultAddCmd, vaultRemoveCmd, vaultShowCmd)

	vaultListCmd.Flags().StringVar(&vaultListSearch, "search", "", "Filter entries by title")

	vaultAddCmd.Flags().StringVar(&vaultAddEntry.Title, "title", "", "Entry title")
	vaultAddCmd.Flags().StringVar(&vaultAddEntry.Username, "username", "", "Stored username")
	vaultAddCmd.Flags().StringVar(&vaultAddEntry.Password, "password", "", "Stored password")
	vaultAddCmd.Flags().StringVar(&vaultAddEntry.URL, "url", "", "Related URL")
	vaultAddCmd.Flags().StringVar(&vaultAddEntry.Notes, "notes", "", "Free-form notes")
	_ = vaultAddCmd.MarkFlagRequired("title")
}
