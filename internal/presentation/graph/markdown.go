package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/lockstep/pkg/domain"
)

// GenerateMarkdown describes the configuration as a Markdown document: one
// section per component with its ports and rule table, then the connections.
func GenerateMarkdown(cfg domain.Configuration) string {
	var sb strings.Builder
	sb.WriteString("# Configuration\n\n")

	for _, comp := range cfg.Components {
		fmt.Fprintf(&sb, "## %s (%s)\n\n", comp.Name, kind(comp))

		sb.WriteString("| Port | Direction |\n|---|---|\n")
		for _, p := range comp.Ports {
			fmt.Fprintf(&sb, "| %s | %s |\n", p.ID, p.Direction)
		}
		sb.WriteString("\n")

		if len(comp.Rules) == 0 {
			continue
		}
		sb.WriteString("| # | From | Trigger | Guard | To |\n|---|---|---|---|---|\n")
		for i, r := range comp.Rules {
			trigger := "-"
			if r.Trigger != nil {
				trigger = fmt.Sprintf("%s@%s", r.Trigger.Kind, r.Trigger.Port)
			}
			guard := "-"
			if r.Guard != nil {
				guard = "yes"
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n", i+1, r.From, trigger, guard, r.To)
		}
		sb.WriteString("\n")
	}

	if len(cfg.Connections) > 0 {
		sb.WriteString("## Connections\n\n")
		for _, conn := range cfg.Connections {
			fmt.Fprintf(&sb, "- `%s`\n", conn)
		}
	}

	return sb.String()
}

func kind(comp domain.Component) string {
	switch {
	case comp.Source != nil:
		return "inbound adapter"
	case comp.Sink != nil:
		return "outbound adapter"
	default:
		return "state machine"
	}
}
