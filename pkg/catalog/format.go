package catalog

import (
	"fmt"
	"strings"
)

// formatSummaries renders listing/search rows grouped by category. The
// store already returns rows grouped and name-sorted, so rendering only
// inserts a heading when the category changes.
func formatSummaries(rows []ComponentSummary) string {
	if len(rows) == 0 {
		return "No components found."
	}

	var b strings.Builder
	current := ""
	for _, row := range rows {
		if row.Category != current {
			if current != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "## %s\n", row.Category)
			current = row.Category
		}
		if row.Description != "" {
			fmt.Fprintf(&b, "- %s: %s\n", row.Name, row.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", row.Name)
		}
	}
	return b.String()
}

func formatMetadata(meta *ComponentMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\nCategory: %s\n", meta.Name, meta.Category)
	if meta.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", meta.Description)
	}
	if len(meta.Dependencies) > 0 {
		fmt.Fprintf(&b, "\nDependencies: %s\n", strings.Join(meta.Dependencies, ", "))
	}
	if len(meta.Props) > 0 {
		b.WriteString("\nProps:\n")
		for _, prop := range meta.Props {
			line := fmt.Sprintf("- %s (%s)", prop.Name, prop.Type)
			if prop.Required {
				line += " [required]"
			}
			if prop.Default != "" {
				line += fmt.Sprintf(" default=%s", prop.Default)
			}
			if prop.Description != "" {
				line += ": " + prop.Description
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
