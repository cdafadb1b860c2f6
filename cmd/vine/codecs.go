package main

import (
	"github.com/spf13/cobra"
)

// codecsCmd represents the codecs command
var codecsCmd = &cobra.Command{
	Use:   "codecs",
	Short: "List the media types the client can decode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Codecs()
	},
}

func init() {
	rootCmd.AddCommand(codecsCmd)
}
