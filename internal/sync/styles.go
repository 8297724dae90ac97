// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package sync

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles colors the summary when out is a terminal. The renderer detects
// the color profile of out itself, so pipes and buffers get plain text.
type styles struct {
	course lipgloss.Style
	plus   lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		course: r.NewStyle().Bold(true),
		plus:   r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}
