package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Items (%d)", len(m.state.Items))))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("API URL: " + m.state.APIURL))
	if m.state.Loading {
		b.WriteString("  ")
		b.WriteString(pendingStyle.Render(m.busyLabel()))
	}
	b.WriteString("\n")

	if m.state.Error != "" {
		b.WriteString(errorStyle.Render(m.state.Error))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.mode == modeAdd {
		form := lipgloss.JoinVertical(lipgloss.Left,
			accentStyle.Render("Add New Item"),
			m.name.View(),
			m.description.View(),
		)
		b.WriteString(panelStyle.Render(form))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderItems())
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(m.help.View(formKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(browseKeys{m.keys}))
	}

	return panelStyle.Render(b.String())
}

func (m Model) busyLabel() string {
	if m.mode == modeAdd {
		return "Adding..."
	}
	return "Loading..."
}

func (m Model) renderItems() string {
	if len(m.state.Items) == 0 {
		return mutedStyle.Render("No items found. Press a to add one!")
	}

	lines := make([]string, 0, len(m.state.Items))
	for i, it := range m.state.Items {
		line := fmt.Sprintf("#%-4d %s", it.ID, it.Name)
		if it.Description != nil && *it.Description != "" {
			line += mutedStyle.Render(" · " + *it.Description)
		}
		line += mutedStyle.Render("  created " + it.CreatedAt.Local().Format("2006-01-02"))

		prefix := "  "
		if i == m.cursor && m.mode == modeBrowse {
			prefix = selectedStyle.Render(">") + " "
		}
		lines = append(lines, prefix+line)
	}
	return strings.Join(lines, "\n")
}
