// Command pmfolio serves public product-manager portfolios and their JSON API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pmfolio",
	Short: "Product manager portfolio showcase",
	Long: `pmfolio serves public profiles (projects and recommendations) for product managers.

Configuration is read from .env, config.yml and the environment. STORE_DRIVER picks
the backend: supabase, postgrest, postgres or memory.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, profileCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
