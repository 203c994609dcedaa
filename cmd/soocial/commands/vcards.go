package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// NewVCardsCommand creates the vcards command group.
func NewVCardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vcards",
		Aliases: []string{"vcard"},
		Short:   "Export contacts as vCards",
	}

	cmd.AddCommand(newVCardsGetCommand())
	cmd.AddCommand(newVCardsListCommand())

	return cmd
}

func newVCardsGetCommand() *cobra.Command {
	var parsed bool

	cmd := &cobra.Command{
		Use:   "get CONTACT_ID",
		Short: "Export one contact as a vCard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				if parsed {
					card, err := client.VCards().GetParsed(ctx, args[0])
					if err != nil {
						return fmt.Errorf("failed to get vCard %s: %w", args[0], err)
					}

					return renderValue(cmd, cardSummary(card))
				}

				text, err := client.VCards().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get vCard %s: %w", args[0], err)
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), text)

				return err
			})
		},
	}

	cmd.Flags().BoolVar(&parsed, "parsed", false, "print the name and email addresses instead of the raw card")

	return cmd
}

func newVCardsListCommand() *cobra.Command {
	var parsed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Export every contact as vCards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client soocial.Client) error {
				if parsed {
					cards, err := client.VCards().ListParsed(ctx)
					if err != nil {
						return fmt.Errorf("failed to list vCards: %w", err)
					}

					items := make([]soocial.Value, 0, len(cards))
					for _, card := range cards {
						items = append(items, cardSummary(card))
					}

					return renderValue(cmd, soocial.ListOf(items...))
				}

				texts, err := client.VCards().List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list vCards: %w", err)
				}

				for _, text := range texts {
					if _, err := fmt.Fprint(cmd.OutOrStdout(), text, "\r\n"); err != nil {
						return err
					}
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&parsed, "parsed", false, "print names and email addresses instead of raw cards")

	return cmd
}

// cardSummary picks the formatted name and email addresses out of card.
func cardSummary(card vcard.Card) soocial.Value {
	summary := soocial.NewRecord()
	summary.Set("name", soocial.Scalar(card.PreferredValue(vcard.FieldFormattedName)))
	summary.Set("email", soocial.Scalar(strings.Join(card.Values(vcard.FieldEmail), ", ")))

	return soocial.RecordOf(summary)
}
