package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vine/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "vine",
	Short: "Vine is a command line hypermedia API client",
	Long: `Vine fetches schema and hypermedia documents, follows the links they
describe, and keeps the resulting document as your session state between
invocations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config-dir", "", "Directory holding session state (default: user config dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// newApp builds the session App from the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return cli.NewApp(configDir, os.Stdout, verbose)
}
