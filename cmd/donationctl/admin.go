package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(adminCreateCmd())
	return cmd
}

func adminCreateCmd() *cobra.Command {
	var username, password, confirm string
	var cost int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account, with the same rules as the signup form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stores, err := openStores(ctx)
			if err != nil {
				return err
			}
			defer stores.Close()

			admin, err := service.NewAdminService(stores.Admins, cost).Signup(ctx, username, password, confirm)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Username, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Admin password")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "Repeat the password")
	cmd.Flags().IntVar(&cost, "bcrypt-cost", service.DefaultBcryptCost, "bcrypt cost")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("confirm-password")

	return cmd
}
