package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/dashboard"
)

// projectMarkdown describes the project for the info pane.
func projectMarkdown(v dashboard.View) string {
	switch {
	case v.Info == nil && v.Unreachable():
		return "## Backend unreachable\n\n" +
			"The project service did not answer:\n\n" +
			"`" + v.InfoErr.Message + "`\n\n" +
			"The dashboard keeps retrying in the background."
	case v.Info == nil && v.ProjectMissing():
		return "## No project found\n\n" +
			v.InfoErr.Message + ".\n\n" +
			"Press **i** to initialize a new project."
	case v.Info == nil:
		return ""
	}

	info := v.Info
	var b strings.Builder

	title := "Project"
	if info.Metadata != nil && info.Metadata.Project.Code != "" {
		title = info.Metadata.Project.Code
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	rows := [][2]string{
		{"Root", "`" + orDash(info.ProjectRoot) + "`"},
	}
	if md := info.Metadata; md != nil {
		rows = append(rows,
			[2]string{"Type", orDash(backend.ProjectType(md.Project.Type).Label())},
			[2]string{"Schema", orDash(md.Project.SchemaVersion)},
			[2]string{"Created", orDash(md.Project.CreatedAt)},
			[2]string{"Created with", orDash(md.Project.CreatedWith)},
			[2]string{"Author", orDash(md.Author.Name)},
			[2]string{"Studio", orDash(md.Author.Studio)},
		)
		if md.Author.Role != "" {
			rows = append(rows, [2]string{"Role", md.Author.Role})
		}
		if md.Author.Contact != "" {
			rows = append(rows, [2]string{"Contact", md.Author.Contact})
		}
		if md.Author.Copyright != "" {
			rows = append(rows, [2]string{"Copyright", md.Author.Copyright})
		}
	}

	b.WriteString("| | |\n|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "| **%s** | %s |\n", row[0], escapeCell(row[1]))
	}

	if v.Unreachable() {
		b.WriteString("\n> Backend unreachable, showing the last known project.\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func renderMarkdown(content string, width int) string {
	if content == "" {
		return ""
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(rendered)
}
