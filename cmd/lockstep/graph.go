package main

import (
	"fmt"

	"github.com/aretw0/lockstep/internal/presentation/graph"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the topology visualization",
	Long: `Outputs a Mermaid diagram (graph LR) of the components and their connections.
With --machines, a state diagram is appended for every state machine component.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, _, err := offlineApp(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, graph.GenerateMermaid(app.Configuration(), nil))

		if machines, _ := cmd.Flags().GetBool("machines"); machines {
			starts := make(map[string]domain.ControlState)
			for _, s := range app.Starts() {
				starts[s.Component] = s.Control
			}
			for _, comp := range app.Configuration().Components {
				if comp.IsAdapter() {
					continue
				}
				fmt.Fprintf(out, "\n%%%% %s\n", comp.Name)
				fmt.Fprint(out, graph.GenerateStateDiagram(comp, starts[comp.Name]))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("machines", false, "Append a state diagram per component")
	graphCmd.Flags().Int("total-spaces", 0, "Number of parking spaces")
}
