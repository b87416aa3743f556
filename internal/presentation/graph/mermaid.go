package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/lockstep/pkg/domain"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	State domain.ConfigurationState
}

// GenerateMermaid produces a Mermaid flowchart of the component topology.
// It applies semantic styling:
// - Inbound adapter: [/Parallelogram/]
// - Outbound adapter: [\Parallelogram\]
// - State machine: [Rectangle]
// Edges are labelled with the connected ports. With an overlay, every node shows
// its control state and components with pending events are highlighted.
func GenerateMermaid(cfg domain.Configuration, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, comp := range cfg.Components {
		safeID := sanitizeMermaidID(comp.Name)

		opener, closer := "[", "]"
		switch {
		case comp.Source != nil:
			opener, closer = "[/", "/]"
		case comp.Sink != nil:
			opener, closer = "[\\", "\\]"
		}

		label := comp.Name
		if overlay != nil {
			if inst, ok := overlay.State.Instance(comp.Name); ok {
				label = fmt.Sprintf("%s <br/> %s", comp.Name, inst.Control)
			}
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)
	}

	for _, conn := range cfg.Connections {
		fmt.Fprintf(&sb, "    %s -- \"%s → %s\" --> %s\n",
			sanitizeMermaidID(conn.From),
			conn.FromPort,
			conn.ToPort,
			sanitizeMermaidID(conn.To),
		)
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef pending fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, comp := range cfg.Components {
			if inst, ok := overlay.State.Instance(comp.Name); ok && len(inst.Inbox) > 0 {
				fmt.Fprintf(&sb, "    class %s pending;\n", sanitizeMermaidID(comp.Name))
			}
		}
	}

	return sb.String()
}

// GenerateStateDiagram produces a Mermaid state diagram of one component's rule table.
// start marks the initial control state; pass "" to omit it.
func GenerateStateDiagram(comp domain.Component, start domain.ControlState) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	if start != "" {
		fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(string(start)))
	}

	for _, r := range comp.Rules {
		var parts []string
		if r.Trigger != nil {
			parts = append(parts, fmt.Sprintf("%s@%s", r.Trigger.Kind, r.Trigger.Port))
		}
		if r.Guard != nil {
			parts = append(parts, "[guard]")
		}
		if r.Label != "" {
			// Colons end the label in Mermaid.
			parts = append(parts, strings.ReplaceAll(r.Label, ":", " "))
		}

		line := fmt.Sprintf("    %s --> %s", sanitizeMermaidID(string(r.From)), sanitizeMermaidID(string(r.To)))
		if len(parts) > 0 {
			line += " : " + strings.Join(parts, " ")
		}
		sb.WriteString(line + "\n")
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
