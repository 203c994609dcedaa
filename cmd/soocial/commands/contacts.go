package commands

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/soocial/internal/constants"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// NewContactsCommand creates the contacts command group.
func NewContactsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact", "c"},
		Short:   "Manage contacts",
		Long:    "List, read, create, update and delete the contacts of the account",
	}

	cmd.AddCommand(newContactsListCommand())
	cmd.AddCommand(newContactsGetCommand())
	cmd.AddCommand(newContactsAddCommand())
	cmd.AddCommand(newContactsUpdateCommand())
	cmd.AddCommand(newContactsDeleteCommand())
	cmd.AddCommand(newContactsExistsCommand())
	cmd.AddCommand(newContactsCountCommand())

	subresources := []struct {
		name  string
		short string
		fetch subresourceFunc
	}{
		{"phones", "List a contact's telephone numbers", soocial.ContactsClient.Phones},
		{"emails", "List a contact's email addresses", soocial.ContactsClient.Emails},
		{"urls", "List a contact's web addresses", soocial.ContactsClient.URLs},
		{"addresses", "List a contact's postal addresses", soocial.ContactsClient.Addresses},
		{"organisations", "List a contact's organisations", soocial.ContactsClient.Organisations},
	}

	for _, sub := range subresources {
		cmd.AddCommand(newContactsSubresourceCommand(sub.name, sub.short, sub.fetch))
	}

	return cmd
}

func newContactsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				contacts, err := client.Contacts().Iterate(ctx)
				if err != nil {
					return fmt.Errorf("failed to list contacts: %w", err)
				}

				return renderValue(cmd, soocial.ListOf(slices.Collect(contacts)...))
			})
		},
	}
}

func newContactsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONTACT_ID",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				contact, err := client.Contacts().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get contact %s: %w", args[0], err)
				}

				return renderValue(cmd, contact)
			})
		},
	}
}

func newContactsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add KEY=VALUE...",
		Short:   "Create a contact",
		Example: "  soocial contacts add given_name=Buddy family_name=Holly",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := ParseFields(args)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				id, err := client.Contacts().Add(ctx, fields)
				if err != nil {
					return fmt.Errorf("failed to add contact: %w", err)
				}

				return renderValue(cmd, soocial.Scalar(id))
			})
		},
	}
}

func newContactsUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update CONTACT_ID KEY=VALUE...",
		Short: "Update a contact",
		Args:  cobra.MinimumNArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := ParseFields(args[1:])
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				updated, err := client.Contacts().Set(ctx, args[0], fields)
				if err != nil {
					return fmt.Errorf("failed to update contact %s: %w", args[0], err)
				}

				return renderValue(cmd, updated)
			})
		},
	}
}

func newContactsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CONTACT_ID",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				if err := client.Contacts().Delete(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete contact %s: %w", args[0], err)
				}

				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted contact %s\n", args[0])

				return err
			})
		},
	}
}

func newContactsExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists CONTACT_ID",
		Short: "Check whether a contact exists",
		Long:  "Print true when the contact exists; fail with an error when it does not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				found, err := client.Contacts().Contains(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to look up contact %s: %w", args[0], err)
				}

				if !found {
					return fmt.Errorf("%w: %s", ErrContactNotFound, args[0])
				}

				return renderValue(cmd, soocial.Scalar(strconv.FormatBool(found)))
			})
		},
	}
}

func newContactsCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				count, err := client.Contacts().Count(ctx)
				if err != nil {
					return fmt.Errorf("failed to count contacts: %w", err)
				}

				return renderValue(cmd, soocial.Scalar(strconv.Itoa(count)))
			})
		},
	}
}

type subresourceFunc func(soocial.ContactsClient, context.Context, string) (soocial.Value, error)

func newContactsSubresourceCommand(name, short string, fetch subresourceFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " CONTACT_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				value, err := fetch(client.Contacts(), ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get %s of contact %s: %w", name, args[0], err)
				}

				return renderValue(cmd, value)
			})
		},
	}
}
