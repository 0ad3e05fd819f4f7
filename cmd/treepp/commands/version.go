package commands

import (
	"fmt"

	"github.com/sonemaro/treepp/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCommand(opts *Options) *cobra.Command {
	var (
		showFull bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := version.Render(version.GetBuildInfo(), format, showFull)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showFull, "full", "f", false,
		"show full version information")
	cmd.Flags().StringVarP(&format, "output", "o", version.FormatText,
		"output format: text|json|yaml")

	return cmd
}
