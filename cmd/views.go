package cmd

import (
	"fmt"

	"github.com/theirongolddev/ccq/internal/query"

	"github.com/spf13/cobra"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List the queryable views",
	Args:  cobra.NoArgs,
	RunE:  runViews,
}

func init() {
	rootCmd.AddCommand(viewsCmd)
}

func runViews(_ *cobra.Command, _ []string) error {
	for _, v := range query.Views {
		fmt.Printf("  %-19s %s\n", v.Name, v.Description)
	}
	return nil
}
