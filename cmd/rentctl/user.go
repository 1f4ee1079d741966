package main

import (
	"fmt"

	appidentity "github.com/rentdesk/backend/internal/application/identity"
	"github.com/rentdesk/backend/internal/domain/identity"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	userName     string
	userPassword string
	userAdmin    bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a user account",
	Example: "  rentctl user create --username alice --password s3cret! --admin",
	RunE:    runUserCreate,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE:  runUserList,
}

func init() {
	userCreateCmd.Flags().StringVarP(&userName, "username", "u", "", "login name")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "initial password")
	userCreateCmd.Flags().BoolVar(&userAdmin, "admin", false, "grant the admin role")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(a)

	user, err := a.Users.CreateUser(cmd.Context(), appidentity.CreateUserInput{
		Username: userName,
		Password: userPassword,
		Role:     lo.Ternary(userAdmin, identity.RoleAdmin, identity.RoleUser),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (%s)\n", user.Role, user.Username, user.ID)
	return nil
}

func runUserList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(a)

	users, err := a.Users.ListUsers(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, u := range users {
		fmt.Fprintf(out, "%-20s  %-6s  %s\n", u.Username, u.Role, lo.Ternary(u.IsActive, "active", "inactive"))
	}
	return nil
}
