package main

import (
	"fmt"

	"github.com/aretw0/lockstep/internal/presentation/graph"
	"github.com/aretw0/lockstep/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe components, ports and rules",
	Long:  `Prints the ports and rule table of every component, rendered for the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, _, err := offlineApp(cfg)
		if err != nil {
			return err
		}

		doc := graph.GenerateMarkdown(app.Configuration())
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		}

		width, _ := cmd.Flags().GetInt("width")
		render, err := tui.NewRenderer(width)
		if err != nil {
			return err
		}
		out, err := render(doc)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print Markdown without rendering")
	describeCmd.Flags().Int("width", 100, "Word wrap width")
}
