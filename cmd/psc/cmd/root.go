// Package cmd implements the psc CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/price-scout/internal/api/client"
	"github.com/donaldgifford/price-scout/internal/render"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "psc",
		Short: "CLI client for price-scout",
		Long: "psc is a command-line client for the price-scout API.\n" +
			"It autocompletes item names, identifies items and compares\n" +
			"their prices across marketplaces from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.psc.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, plain, json)")
	rootCmd.PersistentFlags().
		String("currency", "", "price currency (default chosen by the server)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("currency", rootCmd.PersistentFlags().Lookup("currency")))

	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(pricesCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(platformsCmd())
	rootCmd.AddCommand(currenciesCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".psc")
	}

	viper.SetEnvPrefix("PSC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

func printer() render.Printer {
	return render.Printer{W: os.Stdout, Plain: viper.GetString("output") == "plain"}
}

// currency returns the --currency value, validated. Empty leaves the choice
// to the server.
func currency() (domain.Currency, error) {
	code := viper.GetString("currency")
	if code == "" {
		return "", nil
	}
	return domain.ParseCurrency(code)
}
