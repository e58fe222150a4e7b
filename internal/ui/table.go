package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/tracker"
	"github.com/hyperengineering/artian/internal/types"
)

const emptyCell = "—"

// RenderTable draws a rendered tracker table with its notices and
// transient indicators.
func RenderTable(t tracker.Table) string {
	var b strings.Builder

	title := string(t.Mode) + " rolls"
	if t.Item != nil {
		title = t.Item.Name + " · " + title
	}
	b.WriteString(Heading(IconWeapon, title))
	b.WriteString("\n")

	if t.Notice != "" {
		b.WriteString(NoticePanel.Render(Warn.Render(IconWarn+" ") + t.Notice))
		b.WriteString("\n")
	}

	if t.Item == nil {
		b.WriteString(Muted.Render("No weapon selected."))
		b.WriteString("\n")
		writeIndicators(&b, t.Indicators)
		return b.String()
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Muted).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(t.Header...)

	for _, row := range t.Rows {
		tbl.Row(renderRow(row)...)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")

	if len(t.Rows) == 0 {
		b.WriteString(Muted.Render("No rolls recorded yet."))
		b.WriteString("\n")
	}

	status := []string{
		LabelValue("Next roll", t.Next),
		LabelValue("Sort", t.Sort),
	}
	if t.Focus != "" {
		status = append(status, LabelValue("Focus", t.Focus))
	}
	b.WriteString(strings.Join(status, "  "))
	b.WriteString("\n")

	if t.ClearArmed {
		b.WriteString(Bad.Render(IconTrash+" Clear again to delete every roll for "+t.Item.Name+"."))
		b.WriteString("\n")
	}
	if t.ClearModeArmed {
		b.WriteString(Bad.Render(IconTrash + fmt.Sprintf(" Clear again to delete all %s rolls for every weapon.", t.Mode)))
		b.WriteString("\n")
	}
	writeIndicators(&b, t.Indicators)
	return b.String()
}

func renderRow(row tracker.Row) []string {
	cells := make([]string, 0, len(row.Cells)+1)

	number := fmt.Sprintf("%d", row.Number)
	switch {
	case row.Armed:
		number = ArmedRow.Render("Delete")
	case row.Current:
		number = CurrentRow.Render("› " + number)
	}
	cells = append(cells, number)

	for _, c := range row.Cells {
		cells = append(cells, renderCell(c))
	}
	return cells
}

func renderCell(c tracker.Cell) string {
	text := Muted.Render(emptyCell)
	if !c.Empty() {
		text = ClassStyle(c.Class).Render(c.Label)
	}
	if c.Selected {
		label := emptyCell
		if !c.Empty() {
			label = c.Label
		}
		text = SelectedCell.Render(label)
	}
	return text
}

func writeIndicators(b *strings.Builder, indicators map[string]string) {
	controls := make([]string, 0, len(indicators))
	for control := range indicators {
		controls = append(controls, control)
	}
	sort.Strings(controls)
	for _, control := range controls {
		b.WriteString(Bad.Render(IconError + " " + indicators[control]))
		b.WriteString("\n")
	}
}

// RenderFields lists fields under their group headings, in catalog order.
func RenderFields(mode types.Mode, fields []shape.FieldInfo) string {
	var b strings.Builder
	b.WriteString(Heading(IconRoll, string(mode)+" fields"))
	b.WriteString("\n")

	group := ""
	var line []string
	flush := func() {
		if len(line) > 0 {
			b.WriteString("  " + strings.Join(line, "  "))
			b.WriteString("\n")
			line = nil
		}
	}
	for _, f := range fields {
		if f.Group != group {
			flush()
			group = f.Group
			b.WriteString(H2.Render(group))
			b.WriteString("\n")
		}
		line = append(line, ClassStyle(f.Class).Render(f.Label)+" "+Muted.Render("("+f.ID+")"))
	}
	flush()
	return b.String()
}

// RenderItems lists the selectable weapons, marking the selected one.
func RenderItems(items []types.CategoryItem, selected *types.CategoryItem) string {
	var b strings.Builder
	b.WriteString(Heading(IconWeapon, "Weapons"))
	b.WriteString("\n")
	for _, it := range items {
		marker := "  "
		name := it.Name
		if selected != nil && selected.ID == it.ID {
			marker = Gold.Render("› ")
			name = Gold.Render(name)
		}
		b.WriteString(marker + name + " " + Muted.Render("("+it.ID+")"))
		b.WriteString("\n")
	}
	return b.String()
}
