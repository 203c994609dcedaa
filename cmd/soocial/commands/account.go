package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable",
		Long:  "Fetch the contact list once and report whether the API answered",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				if !client.IsReachable(ctx) {
					return fmt.Errorf("%w: %s", ErrUnreachable, apiLabel())
				}

				_, err := fmt.Fprintf(cmd.OutOrStdout(), "OK: %s is reachable\n", apiLabel())

				return err
			})
		},
	}
}

// NewUserCommand creates the user command.
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show the authenticated user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				user, err := client.User(ctx)
				if err != nil {
					return fmt.Errorf("failed to get user: %w", err)
				}

				return renderValue(cmd, user)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "phones",
		Short: "List the phone numbers of the user's connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				phones, err := client.ConnectionPhones(ctx)
				if err != nil {
					return fmt.Errorf("failed to get connection phones: %w", err)
				}

				return renderValue(cmd, phones)
			})
		},
	})

	return cmd
}
