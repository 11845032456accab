// ABOUTME: Rendering functions for the interactive form
// ABOUTME: Implements the Bubble Tea View() function and panel render helpers

package tui

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"ifl-sequencer/sequence"
)

// View renders the form
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("View panic")
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Exiting...\n"
	}

	panelHeight := m.height - (statusBarHeight + helpHeight + 1)
	if panelHeight < minViewportHeight {
		panelHeight = minViewportHeight
	}

	leftPanelStyle := lipgloss.NewStyle().
		Width(formPanelWidth).
		Height(panelHeight).
		Padding(0, 1)

	rightPanelWidth := m.width - formPanelWidth - panelPadding
	if rightPanelWidth < minViewportWidth {
		rightPanelWidth = minViewportWidth
	}

	rightPanelStyle := lipgloss.NewStyle().
		Width(rightPanelWidth).
		Height(panelHeight).
		Padding(0, 1)

	combined := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanelStyle.Render(m.renderForm()),
		rightPanelStyle.Render(m.renderPreview()),
	)

	return combined + "\n" + m.renderStatus() + "\n" + m.renderHelp()
}

// panelTitle marks the focused panel
func panelTitle(title string, focused bool) string {
	if focused {
		return titleStyle.Render("► " + title + " [FOCUSED]")
	}

	return titleStyle.Render(title)
}

// renderForm renders the inputs and numeric parameters
func (m model) renderForm() string {
	var b strings.Builder

	b.WriteString(panelTitle("Image directory", m.focus == focusDirectory) + "\n")
	b.WriteString(m.dirInput.View() + "\n\n")

	b.WriteString(panelTitle("File name", m.focus == focusFileName) + "\n")
	b.WriteString(m.nameInput.View() + "\n\n")

	b.WriteString(panelTitle("Sequence parameters", m.focus == focusParams) + "\n\n")

	for i, param := range m.paramMgr.All() {
		value := fmt.Sprintf("%d", *param.Value)
		if param.Name == paramSeed {
			value = m.seedLabel()
		}

		line := fmt.Sprintf("%-12s %s", param.Name+":", value)

		if m.focus == focusParams && i == m.paramMgr.Selected() {
			b.WriteString(selectedParamStyle.Render(line) + "\n")
		} else {
			b.WriteString(paramStyle.Render(line) + "\n")
		}
	}

	return b.String()
}

// renderPreview renders the last generated sequence
func (m model) renderPreview() string {
	title := "Sequence"
	if m.lastPath != "" {
		title += " " + m.lastPath
	}

	s := panelTitle(title, m.focus == focusPreview) + "\n\n"

	if m.sequence.Len() == 0 {
		return s + labelStyle.Render("Press enter to build an image list") + "\n"
	}

	s += headerStyle.Render(fmt.Sprintf("%5s  %-30s %s", "#", "Image", "Frames")) + "\n"

	return s + m.viewport.View()
}

// updateViewportContent refreshes the preview rows
func (m *model) updateViewportContent() {
	m.viewport.SetContent(renderEntries(m.sequence.Entries, m.cursorPos, m.focus == focusPreview))
}

// renderEntries formats sequence entries one per line, highlighting the cursor
func renderEntries(entries []sequence.ImageEntry, cursorPos int, showCursor bool) string {
	var b strings.Builder

	for i, e := range entries {
		line := fmt.Sprintf("%5d  %-30s %d", i+1, e.FileName, e.Duration)

		if showCursor && i == cursorPos {
			line = cursorStyle.Render(line)
		}

		b.WriteString(line)

		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	msg := "Status: " + m.statusMsg
	if m.running {
		msg += " ..."
	}

	if m.statusError {
		return statusErrorStyle.Render(msg)
	}

	return statusStyle.Render(msg)
}

// renderHelp renders the key help for the focused field
func (m model) renderHelp() string {
	var help string

	switch m.focus {
	case focusDirectory, focusFileName:
		help = "tab: next field • enter: apply • ctrl+c: quit"
	case focusParams:
		help = "↑↓: select • ←→: adjust • r: random seed • x: unset seed • d: reset lengths • s: save defaults • enter: apply • tab: next • q: quit"
	default:
		help = "↑↓/pgup/pgdn/home/end: scroll • enter: apply • tab: next • q: quit"
	}

	return helpStyle.Render(help)
}
