package main

import (
	"context"
	"fmt"
	"os"

	"pagecraft/client"
	"pagecraft/site"
	"pagecraft/storage"
	"pagecraft/utils"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	remoteURL    string
	backupFile   string
	pushUsername string
	pushPassword string
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the site document from a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(remoteURL, nil)
		if err := pullSite(cmd.Context(), c, backupFile); err != nil {
			return err
		}
		cmd.Printf("Saved site document to %s\n", backupFile)
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload a site document to a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		password := pushPassword
		if password == "" {
			prompt := promptui.Prompt{Label: "Passwort", Mask: '*'}
			var err error
			if password, err = prompt.Run(); err != nil {
				return fmt.Errorf("password: %w", err)
			}
		}

		c := client.NewClient(remoteURL, nil)
		if err := pushSite(cmd.Context(), c, backupFile, pushUsername, password); err != nil {
			return err
		}
		cmd.Printf("Uploaded %s\n", backupFile)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{pullCmd, pushCmd} {
		cmd.Flags().StringVar(&remoteURL, "url", "http://localhost:3000", "server base URL")
	}
	pullCmd.Flags().StringVar(&backupFile, "out", "site-backup.json", "file to write")
	pushCmd.Flags().StringVar(&backupFile, "in", "site-backup.json", "file to read")
	pushCmd.Flags().StringVar(&pushUsername, "username", "", "admin username")
	pushCmd.Flags().StringVar(&pushPassword, "password", "", "admin password (prompted when empty)")
	_ = pushCmd.MarkFlagRequired("username")
}

// pullSite writes the remote document to path in the store's own format
func pullSite(ctx context.Context, c *client.Client, path string) error {
	doc, err := c.FetchSite(ctx)
	if err != nil {
		return fmt.Errorf("fetching site: %w", err)
	}
	if err := storage.WriteJSON(path, doc); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	utils.Log.WithField("elements", len(doc.Elements)).Info("Pulled site document")
	return nil
}

// pushSite validates the document at path, logs in and replaces the remote document
func pushSite(ctx context.Context, c *client.Client, path, username, password string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := site.DecodeDocument(body)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	token, err := c.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := c.SaveSite(ctx, token, doc); err != nil {
		return fmt.Errorf("saving site: %w", err)
	}
	utils.Log.WithField("elements", len(doc.Elements)).Info("Pushed site document")
	return nil
}
