package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func truncateWithEllipsis(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		truncated := string(runes[:i]) + "…"
		if lipgloss.Width(truncated) <= maxWidth {
			return truncated
		}
	}
	return "…"
}

func formatSize(bytes int64) string {
	if bytes < 0 {
		return ""
	}
	return humanize.IBytes(uint64(bytes))
}

func formatCount(n *int) string {
	if n == nil {
		return "unknown"
	}
	return humanize.Comma(int64(*n))
}

func rightAlignInWidth(left, right string, width int) string {
	if width < 1 {
		width = 1
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return "/" + strings.Trim(path, "/")
}

// scrollWindow returns the [start, end) range of rows to show so that cursor
// stays visible.
func scrollWindow(total, cursor, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}
	start := cursor - rows/2
	start = max(start, 0)
	start = min(start, total-rows)
	return start, start + rows
}
