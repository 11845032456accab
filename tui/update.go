// ABOUTME: Event handling and state updates for the interactive form
// ABOUTME: Implements the Bubble Tea Update() function and key handlers

package tui

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"ifl-sequencer/job"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("Update panic")
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Right panel width: total width - left panel - padding
		viewportWidth := msg.Width - formPanelWidth - panelPadding
		if viewportWidth < minViewportWidth {
			viewportWidth = minViewportWidth
		}

		viewportHeight := msg.Height - totalUIChrome
		if viewportHeight < minViewportHeight {
			viewportHeight = minViewportHeight
		}

		m.viewport.Width = viewportWidth
		m.viewport.Height = viewportHeight

		m.viewport.YOffset = 0
		m.updateViewportContent()
		m.ensureCursorVisible()

		return m, nil

	case runResultMsg:
		return m.handleRunResult(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleRunResult records the outcome of a core run
func (m model) handleRunResult(msg runResultMsg) model {
	m.running = false

	switch status := job.Classify(msg.err); status {
	case job.StatusOK:
		m.sequence = msg.summary.Sequence
		m.lastPath = msg.summary.Path
		m.cursorPos = 0
		m.updateViewportContent()
		m.ensureCursorVisible()
		m.setStatus(fmt.Sprintf("Wrote %s (%d entries from %d images, seed %d) in %s",
			msg.summary.Path, msg.summary.Sequence.Len(), msg.summary.Candidates,
			msg.summary.Seed, elapsedLabel(msg.elapsed)), false)
	case job.StatusNoImages:
		m.setStatus("No images found, nothing written", false)
	default:
		m.setStatus(msg.err.Error(), status.IsFailure())
	}

	return m
}

// handleKey routes a key press according to the focused field
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ForceQ):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.BackTab):
		return m, m.setFocus(m.focus - 1)

	case key.Matches(msg, keys.Apply):
		return m, m.apply()
	}

	if m.inputFocused() {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.handleUpKey()

	case key.Matches(msg, keys.Down):
		m.handleDownKey()

	case key.Matches(msg, keys.Left):
		m.handleAdjustKey(false)

	case key.Matches(msg, keys.Right):
		m.handleAdjustKey(true)

	case key.Matches(msg, keys.PageUp):
		m.moveCursor(-pageJumpSz)

	case key.Matches(msg, keys.PageDown):
		m.moveCursor(pageJumpSz)

	case key.Matches(msg, keys.Home):
		m.moveCursor(-m.sequence.Len())

	case key.Matches(msg, keys.End):
		m.moveCursor(m.sequence.Len())

	case key.Matches(msg, keys.Random):
		m.randomSeed()

	case key.Matches(msg, keys.Clear):
		m.clearSeed()

	case key.Matches(msg, keys.Defaults):
		m.paramMgr.ResetToDefaults(m.defaults)
		m.setStatus("Lengths reset to defaults", false)

	case key.Matches(msg, keys.Save):
		m.saveCurrentDefaults()
	}

	return m, nil
}

// updateInput forwards a key press to the focused text field
func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case focusDirectory:
		m.dirInput, cmd = m.dirInput.Update(msg)
	case focusFileName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	}

	return m, cmd
}

// handleUpKey selects the previous parameter or moves the preview cursor up
func (m *model) handleUpKey() {
	if m.focus == focusParams {
		m.paramMgr.SelectPrevious()

		return
	}

	m.moveCursor(-1)
}

// handleDownKey selects the next parameter or moves the preview cursor down
func (m *model) handleDownKey() {
	if m.focus == focusParams {
		m.paramMgr.SelectNext()

		return
	}

	m.moveCursor(1)
}

// handleAdjustKey steps the selected parameter
func (m *model) handleAdjustKey(increase bool) {
	if m.focus != focusParams {
		return
	}

	param := m.paramMgr.GetSelected()
	if param == nil {
		return
	}

	// Stepping the seed from "random" starts at its current value
	if param.Name == paramSeed && !m.seedSet {
		m.seedSet = true
		m.setStatus(fmt.Sprintf("Seed set to %d", m.values.Seed), false)

		return
	}

	// A seed outside the spin range snaps to the nearest end of it
	if param.Name == paramSeed && m.wideSeed != nil {
		m.values.Seed = maxSeed
		if *m.wideSeed < 0 {
			m.values.Seed = 0
		}

		m.wideSeed = nil
		m.setStatus(fmt.Sprintf("Seed set to %d", m.values.Seed), false)

		return
	}

	changed := m.paramMgr.Decrease
	if increase {
		changed = m.paramMgr.Increase
	}

	if changed() {
		m.setStatus(fmt.Sprintf("%s: %d", param.Name, *param.Value), false)
	}
}

// moveCursor moves the preview cursor by delta entries
func (m *model) moveCursor(delta int) {
	if m.focus != focusPreview {
		return
	}

	m.cursorPos = clampCursor(m.cursorPos+delta, m.sequence.Len())
	m.updateViewportContent()
	m.ensureCursorVisible()
}
