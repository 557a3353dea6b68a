package tui

import "errors"

var (
	// ErrAborted is returned when the user interrupts a prompt.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoEditor is returned when a session runs without a form to edit.
	ErrNoEditor = errors.New("tui: editor is nil")
)
