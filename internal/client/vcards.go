package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-vcard"

	"github.com/fivetwenty-io/soocial/internal/constants"
	"github.com/fivetwenty-io/soocial/internal/http"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

const vcardsPath = "contacts.vcf"

// VCardsClient implements soocial.VCardsClient.
type VCardsClient struct {
	httpClient *http.Client
}

// NewVCardsClient creates a new vCards client.
func NewVCardsClient(httpClient *http.Client) *VCardsClient {
	return &VCardsClient{
		httpClient: httpClient,
	}
}

// Get implements soocial.VCardsClient.Get.
func (c *VCardsClient) Get(ctx context.Context, id string) (string, error) {
	path, err := contactPath(id, "vcf")
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return "", fmt.Errorf("getting vCard: %w", err)
	}

	return string(resp.Body), nil
}

// GetParsed implements soocial.VCardsClient.GetParsed.
func (c *VCardsClient) GetParsed(ctx context.Context, id string) (vcard.Card, error) {
	text, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return ParseVCard(text)
}

// List implements soocial.VCardsClient.List.
func (c *VCardsClient) List(ctx context.Context) ([]string, error) {
	resp, err := c.httpClient.Get(ctx, vcardsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing vCards: %w", err)
	}

	return SplitVCards(string(resp.Body)), nil
}

// ListParsed implements soocial.VCardsClient.ListParsed.
func (c *VCardsClient) ListParsed(ctx context.Context) ([]vcard.Card, error) {
	texts, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]vcard.Card, 0, len(texts))

	for i, text := range texts {
		card, err := ParseVCard(text)
		if err != nil {
			return nil, fmt.Errorf("vCard %d: %w", i, err)
		}

		cards = append(cards, card)
	}

	return cards, nil
}

// SplitVCards cuts a concatenated export into one trimmed text per card.
// Cards glued together without a line break are separated first; anything
// after the last END:VCARD is dropped.
func SplitVCards(data string) []string {
	data = strings.ReplaceAll(data, constants.VCardEnd+constants.VCardBegin, constants.VCardEnd+"\n"+constants.VCardBegin)
	data = strings.TrimSpace(data)

	var cards []string

	for {
		i := strings.Index(data, constants.VCardEnd)
		if i < 0 {
			return cards
		}

		i += len(constants.VCardEnd)
		cards = append(cards, strings.TrimSpace(data[:i]))
		data = data[i:]
	}
}

// ParseVCard decodes a single card.
func ParseVCard(text string) (vcard.Card, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no card found", soocial.ErrVCardParse)
	}

	// the decoder expects CRLF line endings
	content := strings.ReplaceAll(text, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\n", "\r\n")
	if !strings.HasSuffix(content, "\r\n") {
		content += "\r\n"
	}

	card, err := vcard.NewDecoder(strings.NewReader(content)).Decode()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no card found", soocial.ErrVCardParse)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", soocial.ErrVCardParse, err)
	}

	return card, nil
}
