package cli

import (
	"github.com/spf13/cobra"
)

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [path]",
		Short: "Show the renames without performing them (dry-run)",
		Long: `Run the full rename pipeline against an in-memory copy of the tree and
report what would change. This is equivalent to rename --dry-run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renameFlags.DryRun = true
			return runRename(cmd, args)
		},
	}

	addRenameFlags(cmd)

	return cmd
}
