package main

import (
	"github.com/spf13/cobra"
)

// bookmarksCmd represents the bookmarks command group
var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Manage named URLs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.ListBookmarks()
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Bookmark the current document's URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.AddBookmark(args[0])
	},
}

var bookmarksOpenCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Fetch the URL saved under a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.OpenBookmark(cmd.Context(), args[0])
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksAddCmd)
	bookmarksCmd.AddCommand(bookmarksOpenCmd)
	rootCmd.AddCommand(bookmarksCmd)
}
