package tui

import "github.com/moyu-x/forganize/pkg/organizer"

type progressMsg organizer.Progress

type doneMsg struct {
	outcome *organizer.Outcome
	err     error
}
