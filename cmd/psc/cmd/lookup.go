package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "suggest <partial>",
		Short:   "Autocomplete an item name",
		Example: `  psc suggest pokemon em`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := newClient().Suggest(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(suggestions)
			}
			return printer().Suggestions(suggestions)
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "analyze <query>",
		Short:   "Identify an item",
		Example: `  psc analyze "Pokemon Emerald GBA" --currency USD`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := currency()
			if err != nil {
				return err
			}
			analysis, err := newClient().Analyze(cmd.Context(), strings.Join(args, " "), c)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(analysis)
			}
			return printer().Analysis(analysis)
		},
	}
}

func pricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "prices <query>",
		Short:   "Compare marketplace prices for an item",
		Example: `  psc prices "Zelda Majora's Mask N64"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := currency()
			if err != nil {
				return err
			}
			resp, err := newClient().Prices(cmd.Context(), strings.Join(args, " "), c)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return printer().Prices(resp.Insight, resp.Links)
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Identify an item and compare its prices",
		Long:  "Runs the item analysis and the price lookup concurrently on the server.",
		Example: `  psc search "Pokemon Emerald GBA"
  psc search "Chrono Trigger SNES" --currency JPY --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := currency()
			if err != nil {
				return err
			}
			resp, err := newClient().Search(cmd.Context(), strings.Join(args, " "), c)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}

			p := printer()
			if resp.Error != "" {
				if err := p.Error(resp.Error, resp.AuthHint); err != nil {
					return err
				}
				return fmt.Errorf("search for %q failed", resp.Query)
			}
			if err := p.Analysis(resp.Analysis); err != nil {
				return err
			}
			return p.Prices(resp.Prices, resp.Links)
		},
	}
}

func platformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms [query]",
		Short: "List the compared marketplaces",
		Long:  "Lists the compared marketplaces. With a query, shows each platform's search link.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := newClient().Platforms(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(links)
			}
			return printer().Platforms(links)
		},
	}
}

func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List supported currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, def, err := newClient().Currencies(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(map[string]any{"currencies": list, "default": def})
			}
			for _, c := range list {
				marker := ""
				if c == def {
					marker = " (default)"
				}
				fmt.Printf("%s%s\n", c, marker)
			}
			return nil
		},
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
