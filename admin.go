package main

import (
	"context"
	"errors"
	"fmt"

	"attrition-go/internal/database"
	"attrition-go/internal/repository"
	"attrition-go/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCreateAdminCmd(projectRoot *string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an HR admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateAdmin(email, password); err != nil {
				return err
			}
			log, err := bootstrap(*projectRoot)
			if err != nil {
				return err
			}
			defer log.Sync()

			database.Init(log)
			user, err := repository.CreateUser(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			log.Info("Admin account created", zap.Uint("userID", user.ID), zap.String("email", user.Email))
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s\n", user.Email)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&email, "email", "", "Admin email address")
	flags.StringVar(&password, "password", "", "Admin password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func validateAdmin(email, password string) error {
	if !utils.IsValidEmail(email) {
		return errors.New("invalid email address")
	}
	if !utils.IsComplexPassword(password) {
		return errors.New("password must be at least 8 characters and mix upper and lower case letters, digits and symbols")
	}
	return nil
}
