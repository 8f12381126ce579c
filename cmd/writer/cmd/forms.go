package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"writer/src/forms"
)

func newFormsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List supported writing forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			all := forms.All()

			width := 0
			for _, f := range all {
				if len(f.Name) > width {
					width = len(f.Name)
				}
			}

			name := lipgloss.NewRenderer(out).NewStyle().
				Bold(true).
				Width(width + 2)

			for _, f := range all {
				if _, err := fmt.Fprintln(out, name.Render(f.Name)+f.Guidance); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
