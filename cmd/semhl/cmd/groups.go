package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/semhl/internal/adapters/vim"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Print Vim highlight links for every category",
	Long:  "Prints one `hi default link` per category. Source the output once per Vim session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return vim.WriteGroups(cmd.OutOrStdout())
	},
}
