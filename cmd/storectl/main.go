package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "storectl",
		Short: "CLI client for the storefront REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Storefront service base URL")

	// search subcommand
	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Fuzzy-search the product catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			minPrice, _ := cmd.Flags().GetString("min-price")
			maxPrice, _ := cmd.Flags().GetString("max-price")
			return runSearch(apiFlag, args[0], category, minPrice, maxPrice, os.Stdout)
		},
	}
	searchCmd.Flags().StringP("category", "c", "", "Restrict results to a category ID")
	searchCmd.Flags().String("min-price", "", "Minimum price filter")
	searchCmd.Flags().String("max-price", "", "Maximum price filter")
	rootCmd.AddCommand(searchCmd)

	// suggest subcommand
	suggestCmd := &cobra.Command{
		Use:   "suggest [prefix]",
		Short: "Fetch search-as-you-type suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(suggestCmd)

	// chat subcommand
	chatCmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the shopping assistant a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(chatCmd)

	// context refresh subcommand
	refreshCmd := &cobra.Command{
		Use:   "refresh-context",
		Short: "Force a refresh of the assistant's catalog snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefreshContext(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(refreshCmd)

	// health subcommand
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service and store health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
