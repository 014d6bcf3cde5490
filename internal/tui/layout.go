package tui

const (
	headerHeight = 1
	footerHeight = 1

	contentMinWidth   = 30
	browserMinWidth   = 28
	browserMaxWidth   = 56
	columnGapWidth    = 2
	paneTitleHeight   = 2
	documentMaxScenes = 8

	formWidth          = 60
	helpDialogMinWidth = 40
	helpDialogMaxWidth = 72
)

type layoutSizes struct {
	infoWidth    int
	browserWidth int
}

func (m Model) layoutSizes() layoutSizes {
	contentWidth := max(m.width, contentMinWidth)

	browserWidth := min(max(contentWidth/2, browserMinWidth), browserMaxWidth)
	infoWidth := max(contentWidth-browserWidth-columnGapWidth, 1)

	return layoutSizes{
		infoWidth:    infoWidth,
		browserWidth: browserWidth,
	}
}

func (m Model) mainHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

// browserRows is how many listing rows fit below the pane title.
func (m Model) browserRows() int {
	return max(m.mainHeight()-paneTitleHeight, 1)
}
