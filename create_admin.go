package main

import (
	"errors"
	"fmt"

	"pagecraft/models"
	"pagecraft/storage"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account in users.json",
	Long: `Prompts for a username and password and appends the account to
<data_dir>/users.json with a bcrypt hash of the password. Empty input and
existing usernames are rejected.`,
	RunE: runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "username (prompted when empty)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password (prompted when empty)")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Println("Admin-Account erstellen")

	username := adminUsername
	if username == "" {
		prompt := promptui.Prompt{Label: "Benutzername"}
		if username, err = prompt.Run(); err != nil {
			return fmt.Errorf("username: %w", err)
		}
	}

	password := adminPassword
	if password == "" {
		prompt := promptui.Prompt{Label: "Passwort", Mask: '*'}
		if password, err = prompt.Run(); err != nil {
			return fmt.Errorf("password: %w", err)
		}
	}

	user, err := createAdmin(storage.NewUserStore(cfg.UsersFile()), username, password)
	if err != nil {
		cmd.PrintErrln(createAdminMessage(err))
		return fmt.Errorf("create admin: %w", err)
	}

	cmd.Printf("Admin-User %q wurde erfolgreich erstellt.\n", user.Username)
	return nil
}

// createAdminMessage is the text shown to the operator when createAdmin fails
func createAdminMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrEmptyCredentials):
		return "Benutzername und Passwort dürfen nicht leer sein."
	case errors.Is(err, storage.ErrUserExists):
		return "Benutzername existiert bereits."
	default:
		return "Fehler beim Erstellen des Admin-Users: " + err.Error()
	}
}

// createAdmin makes sure users.json exists and adds the account
func createAdmin(users *storage.UserStore, username, password string) (models.User, error) {
	if err := users.Init(); err != nil {
		return models.User{}, err
	}
	return users.Create(username, password)
}
