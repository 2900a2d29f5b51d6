package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"remindo/internal/printer"
	"remindo/internal/tracker"
)

func addList(topLevel *cobra.Command, configPath *string) {
	var (
		filter  string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print tasks without starting the interface.",
		Example: `
remindo list
remindo list --filter pending
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(*configPath, lightOr)
			if err != nil {
				return err
			}
			defer e.Close()

			f := e.tracker.Filter()
			if filter != "" {
				if f, err = tracker.ParseFilter(filter); err != nil {
					return err
				}
			}
			p := &printer.Pretty{Out: cmd.OutOrStdout(), NoColor: noColor || color.NoColor}
			return p.View(tracker.Derive(e.tracker.Tasks(), f, e.tracker.Now()))
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "One of all, pending or completed (default: the saved filter).")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output.")
	topLevel.AddCommand(cmd)
}

// lightOr resolves the theme without probing the terminal.
func lightOr(setting string) tracker.Theme {
	if th, err := tracker.ParseTheme(setting); err == nil {
		return th
	}
	return tracker.ThemeLight
}
