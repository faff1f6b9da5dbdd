package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/doctor"
	"github.com/thoreinstein/switchboard/internal/errors"
)

var (
	usageShowSecret bool
	usageJSON       bool
)

func init() {
	usageCmd.Flags().BoolVar(&usageShowSecret, "show-secret", false, "print the API key unmasked")
	usageCmd.Flags().BoolVar(&usageJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(usageCmd)
}

var usageCmd = &cobra.Command{
	Use:   "usage <id>",
	Short: "Print the credentials a usage query would use",
	Long: `Print the API key and base URL a usage or balance query for the
provider would use: the usage script's own values, falling back to the
provider's settings. The key is masked unless --show-secret is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsageWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

type usageOutput struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

func runUsageWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	key, baseURL, err := m.UsageCredentials(app, id)
	if err != nil {
		return err
	}
	if !usageShowSecret {
		key = doctor.MaskValue(key)
	}

	if usageJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(usageOutput{APIKey: key, BaseURL: baseURL}), "encoding output")
	}
	fmt.Fprintf(w, "api key:  %s\n", key)
	fmt.Fprintf(w, "base url: %s\n", baseURL)
	return nil
}
