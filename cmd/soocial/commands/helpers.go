package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/soocial/internal/constants"
	"github.com/fivetwenty-io/soocial/internal/logging"
	"github.com/fivetwenty-io/soocial/pkg/soocial"
	"github.com/fivetwenty-io/soocial/pkg/soocialclient"
)

const (
	// JSON formatting.
	defaultJSONIndent = 2

	userAgentPrefix = "soocial-cli/"
)

// cliVersion is reported in the User-Agent header. Set by NewVersionCommand.
var cliVersion = "dev"

// AddPersistentFlags registers the global flags on root and binds them to viper.
func AddPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()

	flags.StringP("config", "c", "", "config file (default is $HOME/.soocial/config.yml)")
	flags.StringP("api", "a", "", "API base URI (default "+soocial.DefaultBaseURI+")")
	flags.StringP("email", "e", "", "account email")
	flags.StringP("password", "p", "", "account password (prompted when omitted)")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("cache", string(soocial.CacheTypeNone), "response cache (none, memory, nats)")
	flags.String("nats-url", nats.DefaultURL, "NATS server URL for the nats cache")

	for _, name := range []string{"config", "api", "email", "password", "output", "verbose", "no-color", "cache", "nats-url"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// createClient builds a client from flags, environment and the config file.
func createClient(ctx context.Context) (soocial.Client, error) {
	email := viper.GetString("email")
	if email == "" {
		return nil, constants.ErrNoEmailConfigured
	}

	password := viper.GetString("password")
	if password == "" {
		var err error

		password, err = promptPassword()
		if err != nil {
			return nil, err
		}
	}

	cache, err := cacheConfigFromFlags()
	if err != nil {
		return nil, err
	}

	config := &soocial.Config{
		BaseURI:   viper.GetString("api"),
		Email:     email,
		Password:  password,
		Timeout:   constants.DefaultHTTPTimeout,
		Cache:     cache,
		UserAgent: userAgentPrefix + cliVersion,
	}

	if viper.GetBool("verbose") {
		config.Logger = logging.NewAdapter(logging.NewConsole(os.Stderr, "debug"))
		config.Debug = true
	}

	client, err := soocialclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// withClient runs fn against a fresh client and closes it afterwards.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client soocial.Client) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := createClient(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	return fn(ctx, client)
}

func promptPassword() (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", constants.ErrNoPasswordConfigured
	}

	fmt.Fprint(os.Stderr, "Password: ")

	bytePassword, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprintln(os.Stderr)

	return string(bytePassword), nil
}

func cacheConfigFromFlags() (*soocial.CacheConfig, error) {
	cacheType := soocial.CacheType(strings.ToLower(viper.GetString("cache")))

	switch cacheType {
	case "", soocial.CacheTypeNone:
		return nil, nil //nolint:nilnil // no cache configured
	case soocial.CacheTypeMemory:
		return soocial.DefaultCacheConfig(), nil
	case soocial.CacheTypeNATS:
		return soocial.NewCacheBuilder().
			WithType(soocial.CacheTypeNATS).
			WithNATSConfig(&soocial.NATSKVConfig{URL: viper.GetString("nats-url")}).
			WithTTL(constants.DefaultCacheTTL).
			Config(), nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownCacheType, cacheType)
	}
}

// ParseFields turns KEY=VALUE arguments into contact fields. A key given more
// than once collects its values into a list.
func ParseFields(args []string) (soocial.Fields, error) {
	if len(args) == 0 {
		return nil, constants.ErrNoFieldsGiven
	}

	fields := make(soocial.Fields, len(args))

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrFieldSyntax, arg)
		}

		key = strings.TrimSpace(key)

		switch existing := fields[key].(type) {
		case nil:
			fields[key] = value
		case string:
			fields[key] = []string{existing, value}
		case []string:
			fields[key] = append(existing, value)
		}
	}

	return fields, nil
}

// RenderValue writes value to w in the given output format.
func RenderValue(w io.Writer, format string, value soocial.Value) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	case constants.FormatTable, "":
		return renderTable(w, value)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, format)
	}
}

func renderValue(cmd *cobra.Command, value soocial.Value) error {
	return RenderValue(cmd.OutOrStdout(), viper.GetString("output"), value)
}

func renderTable(w io.Writer, value soocial.Value) error {
	switch value.Kind() {
	case soocial.KindAbsent:
		_, err := fmt.Fprintln(w, constants.NotAvailable)

		return err
	case soocial.KindScalar:
		text, _ := value.Text()
		_, err := fmt.Fprintln(w, text)

		return err
	case soocial.KindRecord:
		record, _ := value.Record()

		table := tablewriter.NewWriter(w)
		table.Header("Field", "Value")

		for key, field := range record.All() {
			_ = table.Append(key, cellText(field))
		}

		return renderTableWriter(table)
	default:
		items, _ := value.List()

		return renderListTable(w, items)
	}
}

// renderListTable prints one row per item. Record items share a column set
// built from every key seen, in order of first appearance.
func renderListTable(w io.Writer, items []soocial.Value) error {
	var columns []string

	seen := make(map[string]bool)

	for _, item := range items {
		record, ok := item.Record()
		if !ok {
			continue
		}

		for _, key := range record.Keys() {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}

	table := tablewriter.NewWriter(w)

	if len(columns) == 0 {
		table.Header("Value")

		for _, item := range items {
			_ = table.Append(cellText(item))
		}

		return renderTableWriter(table)
	}

	header := make([]any, 0, len(columns))
	for _, column := range columns {
		header = append(header, column)
	}

	table.Header(header...)

	for _, item := range items {
		row := make([]string, 0, len(columns))

		for _, column := range columns {
			field, _ := item.Lookup(column)
			row = append(row, cellText(field))
		}

		_ = table.Append(row)
	}

	return renderTableWriter(table)
}

func renderTableWriter(table *tablewriter.Table) error {
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// cellText flattens a value into one table cell. Nested data is shown as
// compact JSON.
func cellText(value soocial.Value) string {
	switch value.Kind() {
	case soocial.KindAbsent:
		return ""
	case soocial.KindScalar:
		text, _ := value.Text()

		return text
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return constants.NotAvailable
		}

		return string(data)
	}
}

func apiLabel() string {
	return soocialclient.NormalizeBaseURI(viper.GetString("api"))
}
