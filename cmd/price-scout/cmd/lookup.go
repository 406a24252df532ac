package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/price-scout/internal/app"
	"github.com/donaldgifford/price-scout/internal/engine"
	"github.com/donaldgifford/price-scout/internal/render"
	"github.com/donaldgifford/price-scout/pkg/platform"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// lookupFlags are shared by the commands that run the pipeline locally.
type lookupFlags struct {
	currency string
	json     bool
	plain    bool
}

func (f *lookupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.currency, "currency", "", "price currency (default from config)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON instead of tables")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "disable terminal styling")
}

func (f *lookupFlags) resolveCurrency(a *app.App) (domain.Currency, error) {
	if f.currency == "" {
		return a.Currency(), nil
	}
	return domain.ParseCurrency(f.currency)
}

func (f *lookupFlags) printer(w io.Writer) render.Printer {
	return render.Printer{W: w, Plain: f.plain}
}

// buildApp loads configuration and assembles the pipeline for a local
// command. Logs go to stderr so that stdout stays parseable.
func buildApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg, app.WithLogger(newLogger(cfg)))
}

func searchCommand() *cobra.Command {
	var flags lookupFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Identify an item and compare its prices",
		Example: `  price-scout search "Pokemon Emerald GBA"
  price-scout search "Zelda Majora's Mask" --currency USD --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			currency, err := flags.resolveCurrency(a)
			if err != nil {
				return err
			}
			return runSearch(cmd.Context(), a.Engine, strings.Join(args, " "), currency, &flags, os.Stdout)
		},
	}
	flags.register(cmd)

	return cmd
}

func runSearch(
	ctx context.Context,
	eng *engine.Engine,
	query string,
	currency domain.Currency,
	flags *lookupFlags,
	w io.Writer,
) error {
	res, err := eng.Search(ctx, query, currency)
	if err != nil {
		return err
	}
	links := platform.Attach(platform.Links(res.Query), res.Prices)

	if flags.json {
		return writeJSON(w, struct {
			engine.SearchResult
			Links []platform.Link `json:"links"`
		}{res, links})
	}

	p := flags.printer(w)
	if res.Err != "" {
		return p.Error(res.Err, res.AuthHint)
	}
	if err := p.Analysis(res.Analysis); err != nil {
		return err
	}
	return p.Prices(res.Prices, links)
}

func suggestCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <partial>",
		Short: "Autocomplete an item name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}

			suggestions := a.Engine.Suggest(cmd.Context(), strings.Join(args, " "))
			if asJSON {
				return writeJSON(os.Stdout, suggestions)
			}
			return render.Printer{W: os.Stdout}.Suggestions(suggestions)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
