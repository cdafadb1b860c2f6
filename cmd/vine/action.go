package main

import (
	"github.com/spf13/cobra"
)

// actionCmd represents the action command
var actionCmd = &cobra.Command{
	Use:   "action <path> [key=value ...]",
	Short: "Invoke a link on the current document",
	Long: `Invoke the link at a dotted path into the current document, passing
key=value parameters. Values parse as JSON where possible, otherwise as
plain strings.

The link's transition decides what happens to the session: a detached
link replaces the current document with the response, an inline link
splices the response into place, and a delete removes the target.`,
	Example: `  vine action search q=wildflowers page=2
  vine action notes.add_note description="pick up milk"
  vine action notes.0.delete`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Action(cmd.Context(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(actionCmd)
}
