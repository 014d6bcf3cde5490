package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/bantamhq/studiodash/internal/dashboard"
)

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.mainContentView(m.mainHeight()),
		m.footerView(),
	)

	if m.modal != modalNone {
		return m.overlayModal(base)
	}
	return base
}

func (m Model) overlayModal(background string) string {
	var modalView string
	switch m.modal {
	case modalHelp:
		modalView = m.helpModalView()
	case modalInit:
		modalView = m.initModalView()
	}
	return overlay.Composite(modalView, background, overlay.Center, overlay.Center, 0, 0)
}

func (m Model) headerView() string {
	title := "studiodash · " + m.server

	var badge string
	switch {
	case m.view.Loading:
		badge = StyleBadgeWarn.Render("connecting")
	case m.view.Unreachable():
		badge = StyleBadgeError.Render("unreachable")
	case m.view.Connected():
		badge = StyleBadgeOK.Render("connected")
	default:
		badge = StyleBadgeWarn.Render("no document")
	}

	right := badge
	if at := m.view.UpdatedAt(); !at.IsZero() {
		right = "updated " + humanize.Time(at) + " " + badge
	}

	inner := max(m.width-2, 1)
	return StyleHeader.Width(m.width).MaxHeight(headerHeight).Render(rightAlignInWidth(title, right, inner))
}

func (m Model) mainContentView(height int) string {
	layout := m.layoutSizes()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.infoPaneView(layout.infoWidth),
		"",
		m.documentPaneView(layout.infoWidth),
	)
	left = lipgloss.NewStyle().Width(layout.infoWidth).Height(height).MaxHeight(height).Render(left)

	right := m.browserPaneView(layout.browserWidth, height)

	gap := strings.Repeat(" ", columnGapWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

func (m Model) infoPaneView(width int) string {
	title := StylePaneTitle.Width(width).Render("Project")

	var body string
	switch {
	case m.view.Loading:
		body = fmt.Sprintf("%s Loading project...", m.spinner.View())
	case m.summary != "":
		body = m.summary
	default:
		body = StyleMetaText.Render("No project information")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, StylePane.Render(body))
}

func (m Model) documentPaneView(width int) string {
	title := StylePaneTitle.Width(width).Render("Open document")

	doc := m.view.Document
	var lines []string
	switch {
	case doc == nil && m.view.DocumentErr != nil:
		lines = append(lines, StyleError.Render(m.view.DocumentErr.Message))
	case doc == nil:
		lines = append(lines, StyleMetaText.Render("Waiting for document state..."))
	case doc.IsEmpty():
		lines = append(lines, StyleMetaText.Render("No document open"))
	default:
		lines = append(lines,
			StyleDir.Render(orDash(doc.Filename)),
			StyleMetaText.Render(truncateWithEllipsis(orDash(doc.Filepath), max(width-2, 1))),
			fmt.Sprintf("Objects: %s", formatCount(doc.ObjectCount)),
		)
		if len(doc.Scenes) > 0 {
			scenes := doc.Scenes
			more := ""
			if len(scenes) > documentMaxScenes {
				more = fmt.Sprintf(" (+%d more)", len(scenes)-documentMaxScenes)
				scenes = scenes[:documentMaxScenes]
			}
			lines = append(lines, "Scenes: "+strings.Join(scenes, ", ")+more)
		}
		if m.view.DocumentErr != nil {
			lines = append(lines, StyleWarning.Render("stale: "+m.view.DocumentErr.Message))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, StylePane.Render(strings.Join(lines, "\n")))
}

func (m Model) browserPaneView(width, height int) string {
	title := StylePaneTitle.Width(width).Render(truncateWithEllipsis("Files "+displayPath(m.location.Path), width))

	var b strings.Builder
	rows := m.rows()
	switch {
	case !m.location.Loaded:
		b.WriteString(StyleMetaText.Render("Loading files..."))
	case len(rows) == 0:
		b.WriteString(StyleMetaText.Render("Empty folder"))
	default:
		start, end := scrollWindow(len(rows), m.cursor, m.browserRows())
		for i := start; i < end; i++ {
			b.WriteString(m.browserRowView(rows[i], i == m.cursor, width))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, b.String())
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

func (m Model) browserRowView(row browserRow, selected bool, width int) string {
	var name, meta string
	switch {
	case row.parent:
		name = ".."
	case row.entry.IsDir:
		name = row.entry.Name + "/"
	default:
		name = row.entry.Name
		meta = formatSize(row.entry.Size)
	}

	name = truncateWithEllipsis(name, max(width-lipgloss.Width(meta)-3, 1))
	line := rightAlignInWidth(" "+name, meta+" ", width)

	switch {
	case selected:
		return StyleEntrySelected.Width(width).Render(line)
	case row.parent || row.entry.IsDir:
		return StyleDir.Render(line)
	}
	return line
}

func (m Model) footerView() string {
	badge := StyleFooterBadge.Render(m.server)
	helpWidth := max(m.width-lipgloss.Width(badge), 0)
	if helpWidth == 0 {
		return badge
	}

	content, style := m.footerContent()
	content = truncateWithEllipsis(content, max(helpWidth-2, 1))
	return badge + style.Width(helpWidth).MaxHeight(footerHeight).Render(content)
}

func (m Model) footerContent() (string, lipgloss.Style) {
	if _, ok := m.outcome.(dashboard.Submitting); ok {
		return m.spinner.View() + " Initializing project...", StyleStatusMsg
	}
	if m.statusMsg != "" {
		return m.statusMsg, StyleStatusMsg
	}

	helpModel := m.help
	helpModel.Width = m.width
	return helpModel.ShortHelpView(m.keys.ShortHelp()), StyleFooterHelp
}

func (m Model) helpModalView() string {
	width := m.helpModalWidth()
	innerWidth := max(width-4, 1)

	helpModel := m.help
	helpModel.Width = innerWidth
	helpModel.ShowAll = true

	var content strings.Builder
	content.WriteString(StyleDialogTitle.Render("Help"))
	content.WriteString("\n\n")
	content.WriteString(strings.TrimRight(helpModel.View(m.keys), "\n"))
	content.WriteString("\n\n")
	content.WriteString(StyleDialogHint.Render("esc close"))

	return StyleDialogBox.Width(width).Render(content.String())
}

func (m Model) helpModalWidth() int {
	available := max(m.width-4, 1)
	width := min(available, helpDialogMaxWidth)
	if width < helpDialogMinWidth {
		return available
	}
	return width
}

func (m Model) initModalView() string {
	if m.form == nil {
		return ""
	}

	var content strings.Builder
	content.WriteString(StyleDialogTitle.Render("New project"))
	content.WriteString("\n\n")
	content.WriteString(m.form.View())
	content.WriteString("\n")
	content.WriteString(StyleDialogHint.Render("esc cancel"))

	return StyleDialogBox.Width(min(formWidth, max(m.width-4, 1))).Render(content.String())
}
