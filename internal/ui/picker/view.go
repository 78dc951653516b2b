// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	start, end := m.window()
	if len(m.rows) == 0 {
		if m.engine.Search().Results() != nil {
			b.WriteString(m.theme.Muted.Render("No matches"))
		} else {
			b.WriteString(m.theme.Muted.Render("Catalog is empty"))
		}
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	if m.filterEndpoint != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.EndpointName.Render(m.filterEndpoint))
		b.WriteString(" ")
		b.WriteString(m.filterInput.View())
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())

	width := m.width - 4
	if width < 20 {
		width = 60
	}
	return m.theme.Border.Width(width).Render(b.String())
}

// window returns the visible row range, keeping the cursor in view.
func (m *Model) window() (int, int) {
	if len(m.rows) <= m.maxResults {
		return 0, len(m.rows)
	}
	start := m.selected - m.maxResults/2
	if start < 0 {
		start = 0
	}
	end := start + m.maxResults
	if end > len(m.rows) {
		end = len(m.rows)
		start = end - m.maxResults
	}
	return start, end
}

// renderRow renders one list line.
func (m *Model) renderRow(i int) string {
	r := m.rows[i]

	cursor := "  "
	if i == m.selected {
		cursor = "> "
	}

	label := r.label
	var tail string
	switch r.kind {
	case rowSpec:
		tail = m.theme.Badge.Render(" [preset]")
	case rowEndpoint:
		if r.endpoint.HasModels {
			marker := "+"
			if m.expanded[r.endpoint.Value] {
				marker = "-"
			}
			tail = m.theme.Muted.Render(" " + marker)
		}
		label = m.theme.EndpointName.Render(label)
	case rowModel:
		if r.indent {
			cursor += "  "
		}
	}

	if m.isActive(r) {
		tail += m.theme.Active.Render(" *")
	}

	maxWidth := m.width - 10
	if maxWidth < 20 {
		maxWidth = 50
	}
	line := runewidth.Truncate(cursor+label, maxWidth, "...")

	style := m.theme.Row
	if i == m.selected {
		style = m.theme.RowSelected
	}
	return style.Render(line) + tail
}

// isActive reports whether the row corresponds to the current selection.
func (m *Model) isActive(r row) bool {
	sel := m.engine.Selected()
	switch r.kind {
	case rowSpec:
		return sel.ModelSpec == r.spec.Name
	case rowEndpoint:
		return sel.ModelSpec == "" && sel.Endpoint == r.endpoint.Value && sel.Model == ""
	case rowModel:
		return sel.ModelSpec == "" && sel.Endpoint == r.endpoint.Value && sel.Model == r.modelID
	}
	return false
}

// statusLine shows the current selection and the latest announcement.
func (m *Model) statusLine() string {
	sel := m.engine.Selected()

	var current string
	switch {
	case sel.ModelSpec != "":
		current = fmt.Sprintf("preset %s", sel.ModelSpec)
	case sel.IsEmpty():
		current = "nothing selected"
	case sel.Model == "":
		current = sel.Endpoint
	case catalog.IsAgentsEndpoint(sel.Endpoint):
		current = fmt.Sprintf("%s (agent %s)", m.engine.Catalog().AgentName(sel.Model), sel.Model)
	default:
		current = fmt.Sprintf("%s / %s", sel.Endpoint, sel.Model)
	}

	parts := []string{m.theme.Status.Render(current)}
	if m.status != nil {
		if last := m.status.Last(); last != "" {
			parts = append(parts, m.theme.Muted.Render(last))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  |  "))
}
