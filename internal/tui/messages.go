package tui

import "github.com/bantamhq/studiodash/internal/dashboard"

type viewMsg struct {
	view dashboard.View
}

type locationMsg struct {
	location dashboard.Location
}

type outcomeMsg struct {
	outcome dashboard.Outcome
}

type ActionErrorMsg struct {
	Operation string
	Err       error
}

type statusMsg string
