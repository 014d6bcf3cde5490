package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary       = lipgloss.Color("62")
	colorPrimaryDark   = lipgloss.Color("60")
	colorTextOnPrimary = lipgloss.Color("230")
	colorText          = lipgloss.Color("255")
	colorTextMuted     = lipgloss.Color("243")
	colorSurface       = lipgloss.Color("236")
	colorSuccess       = lipgloss.Color("42")
	colorWarning       = lipgloss.Color("11")
	colorError         = lipgloss.Color("9")
	colorDir           = lipgloss.Color("75")
)

var (
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTextOnPrimary).
			Background(colorPrimary).
			Padding(0, 1)

	StylePaneTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimaryDark)

	StylePane = lipgloss.NewStyle().
			Padding(0, 1)

	StyleMetaText = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	StyleError = lipgloss.NewStyle().
			Foreground(colorError)

	StyleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	StyleBadgeOK = lipgloss.NewStyle().
			Background(colorSuccess).
			Foreground(colorSurface).
			Bold(true).
			Padding(0, 1)

	StyleBadgeWarn = lipgloss.NewStyle().
			Background(colorWarning).
			Foreground(colorSurface).
			Bold(true).
			Padding(0, 1)

	StyleBadgeError = lipgloss.NewStyle().
			Background(colorError).
			Foreground(colorText).
			Bold(true).
			Padding(0, 1)

	StyleDir = lipgloss.NewStyle().
			Foreground(colorDir).
			Bold(true)

	StyleEntrySelected = lipgloss.NewStyle().
				Background(colorPrimaryDark).
				Foreground(colorTextOnPrimary).
				Bold(true)

	StyleStatusMsg = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWarning).
			Italic(true)

	StyleFooterBadge = lipgloss.NewStyle().
				Background(colorPrimary).
				Foreground(colorTextOnPrimary).
				Bold(true).
				Padding(0, 1)

	StyleFooterHelp = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorTextMuted).
			PaddingLeft(1)

	StyleDialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2).
			Background(colorSurface)

	StyleDialogTitle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText)

	StyleDialogHint = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Italic(true)
)
