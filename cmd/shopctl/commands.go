package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_shop/internal/models"
	"github.com/Skotchmaster/farm_shop/internal/repo"
	"github.com/Skotchmaster/farm_shop/internal/service"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
)

type openFunc func(ctx context.Context, dsn string) (*repo.GormRepo, error)

func newRootCmd(open openFunc, defaultDSN string) *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:          "shopctl",
		Short:        "Farm shop maintenance tasks",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dsn, "database-url", defaultDSN, "database DSN (defaults to DATABASE_URL)")

	connect := func(cmd *cobra.Command) (*repo.GormRepo, error) {
		if dsn == "" {
			return nil, errors.New("database url is required")
		}
		return open(cmd.Context(), dsn)
	}

	root.AddCommand(
		newCreateAdminCmd(connect),
		newResetAdminsCmd(connect),
		newSetOrderStatusCmd(connect),
	)
	return root
}

func newCreateAdminCmd(connect func(*cobra.Command) (*repo.GormRepo, error)) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Replace any account with this email by a fresh admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := connect(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			l := logging.FromContext(ctx)

			if _, err := r.DeleteUserByEmail(ctx, email); err != nil {
				return fmt.Errorf("remove existing user: %w", err)
			}

			auth := &service.AuthService{Repo: r, AdminEmails: service.NewAdminSet(email)}
			user, err := auth.CreateUser(ctx, email, password, name)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			l.Info("admin_created", "user_id", user.ID, "email", email)
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %s\n", email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "", "full name shown on the profile")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newResetAdminsCmd(connect func(*cobra.Command) (*repo.GormRepo, error)) *cobra.Command {
	var emails []string

	cmd := &cobra.Command{
		Use:   "reset-admins",
		Short: "Delete the listed accounts with their profiles and orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := connect(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			l := logging.FromContext(ctx)

			for _, email := range emails {
				deleted, err := r.DeleteUserByEmail(ctx, email)
				if err != nil {
					return fmt.Errorf("delete %s: %w", email, err)
				}
				if deleted {
					l.Info("admin_removed", "email", email)
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", email)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "no account for %s\n", email)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&emails, "email", nil, "account email, repeatable")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newSetOrderStatusCmd(connect func(*cobra.Command) (*repo.GormRepo, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "set-order-status <order-id> <pending|delivered|cancelled>",
		Short: "Move an order to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			status := models.OrderStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("invalid status %q", args[1])
			}

			r, err := connect(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if err := r.UpdateOrderStatus(ctx, id, status); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("order %s not found", id)
				}
				return err
			}

			logging.FromContext(ctx).Info("order_status_changed", "order_id", id, "status", status)
			fmt.Fprintf(cmd.OutOrStdout(), "order %s is now %s\n", id, status)
			return nil
		},
	}
}
