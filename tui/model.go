// ABOUTME: Interactive form model and core state management
// ABOUTME: Bubble Tea model that collects sequence parameters and runs the shared core

// Package tui provides the interactive terminal shells: a parameter form that builds IFL
// files and a live viewer for existing ones.
package tui

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"ifl-sequencer/config"
	"ifl-sequencer/job"
	"ifl-sequencer/sequence"
)

// Focus targets, in tab order
const (
	focusDirectory = iota
	focusFileName
	focusParams
	focusPreview
	focusCount
)

// Layout constants for UI dimensions
const (
	formPanelWidth = 48 // Left panel width for the form
	panelPadding   = 2  // Horizontal spacing between panels

	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 2 // Panel title bars
	headerHeight    = 1 // Column headers for the preview
	statusBarHeight = 1 // Bottom status bar
	helpHeight      = 1 // Help text line
	spacingHeight   = 2 // Vertical spacing between elements
	totalUIChrome   = titleHeight + headerHeight + statusBarHeight + helpHeight + spacingHeight

	// Minimum viewport dimensions to ensure usability
	minViewportWidth  = 20
	minViewportHeight = 5
)

// Field limits
const (
	maxSeed     = 65535
	maxLength   = 9999
	pageJumpSz  = 10
	inputWidth  = 32
	inputLimit  = 4096
	statusReady = "Ready"
)

// formValues backs the numeric parameters; kept on the heap so Parameter pointers stay valid
type formValues struct {
	Seed           int
	SequenceLength int
	MinLength      int
	MaxLength      int
}

// runResultMsg carries the outcome of a core run
type runResultMsg struct {
	summary job.Summary
	elapsed time.Duration
	err     error
}

// model holds the form state
type model struct {
	// Dependencies
	core         Core
	saveDefaults DefaultsSaver
	configPath   string
	defaults     config.Defaults // Length values the form started with

	// Form fields
	dirInput  textinput.Model
	nameInput textinput.Model
	values    *formValues
	seedSet   bool   // False means a random seed is drawn at run time
	wideSeed  *int64 // Seed given outside the spin range; kept until the seed is edited
	paramMgr  *ParamManager
	focus     int

	// Last result
	sequence sequence.Sequence
	lastPath string

	// UI state
	width       int
	height      int
	quitting    bool
	running     bool
	statusMsg   string
	statusError bool
	cursorPos   int
	viewport    viewport.Model
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Tab      key.Binding
	BackTab  key.Binding
	Apply    key.Binding
	Random   key.Binding
	Clear    key.Binding
	Defaults key.Binding
	Save     key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "decrease"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "increase"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first entry"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last entry"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	BackTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Random: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "random seed"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "unset seed"),
	),
	Defaults: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "reset lengths"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save defaults"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "quit"),
	),
	ForceQ: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("196")).
				Bold(true).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))
)

// Run starts the interactive form
func Run(opts Options, deps Dependencies) error {
	m := initModel(opts, deps)

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := finalModel.(model); ok && m.lastPath != "" {
		fmt.Printf("Last written sequence: %s\n", m.lastPath)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, deps Dependencies) model {
	p := opts.Params

	values := &formValues{
		SequenceLength: p.SequenceLength,
		MinLength:      p.MinLength,
		MaxLength:      p.MaxLength,
	}

	seedSet := false

	var wideSeed *int64

	if p.Seed != nil {
		seedSet = true

		if *p.Seed >= 0 && *p.Seed <= maxSeed {
			values.Seed = int(*p.Seed)
		} else {
			seed := *p.Seed
			wideSeed = &seed
		}
	}

	dirInput := textinput.New()
	dirInput.Placeholder = "/path/to/images"
	dirInput.CharLimit = inputLimit
	dirInput.Width = inputWidth
	dirInput.SetValue(p.Directory)
	dirInput.Focus()

	nameInput := textinput.New()
	nameInput.Placeholder = "auto (timestamp_first-image)"
	nameInput.CharLimit = inputLimit
	nameInput.Width = inputWidth
	nameInput.SetValue(p.FileName)

	m := model{
		core:         deps.Core,
		saveDefaults: deps.SaveDefaults,
		configPath:   opts.ConfigPath,
		defaults: config.Defaults{
			SequenceLength: p.SequenceLength,
			MinLength:      p.MinLength,
			MaxLength:      p.MaxLength,
		},

		dirInput:  dirInput,
		nameInput: nameInput,
		values:    values,
		seedSet:   seedSet,
		wideSeed:  wideSeed,
		focus:     focusDirectory,

		statusMsg: statusReady,
		viewport:  viewport.New(0, 0), // Width and height set on first WindowSizeMsg
	}

	m.paramMgr = NewParamManager([]Parameter{
		{paramSeed, &values.Seed, 0, maxSeed, 1},
		{paramListLength, &values.SequenceLength, 0, maxLength, 1},
		{paramMinLength, &values.MinLength, 0, maxLength, 1},
		{paramMaxLength, &values.MaxLength, 0, maxLength, 1},
	})

	if wideSeed != nil {
		m.setStatus(fmt.Sprintf("Seed %d is outside the form range 0..%d; kept as given until edited", *wideSeed, maxSeed), false)
	}

	return m
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// params builds core input from the current form state
func (m model) params() job.Params {
	p := job.Params{
		Directory:      m.dirInput.Value(),
		SequenceLength: m.values.SequenceLength,
		MinLength:      m.values.MinLength,
		MaxLength:      m.values.MaxLength,
		FileName:       m.nameInput.Value(),
	}

	if m.seedSet {
		seed := int64(m.values.Seed)
		if m.wideSeed != nil {
			seed = *m.wideSeed
		}

		p.Seed = &seed
	}

	return p
}

// apply validates the form and returns a command that runs the core
func (m *model) apply() tea.Cmd {
	if m.running {
		return nil
	}

	params := m.params()

	cfg, err := m.core.Validate(params)
	if err != nil {
		m.setStatus(err.Error(), true)
		log.Debug().Err(err).Msg("Form validation failed")

		return nil
	}

	m.running = true
	m.setStatus("Building image list", false)

	core := m.core

	return func() tea.Msg {
		start := time.Now()
		summary, err := core.Run(cfg)

		return runResultMsg{summary: summary, elapsed: time.Since(start), err: err}
	}
}

// randomSeed picks a fresh seed value in the field's range
func (m *model) randomSeed() {
	m.values.Seed = rand.IntN(maxSeed + 1) //nolint:gosec // UI convenience, not security
	m.seedSet = true
	m.wideSeed = nil
	m.setStatus(fmt.Sprintf("Seed set to %d", m.values.Seed), false)
}

// clearSeed leaves the seed unset so the next run draws one
func (m *model) clearSeed() {
	m.seedSet = false
	m.wideSeed = nil
	m.setStatus("Seed unset, a random seed will be recorded", false)
}

// saveCurrentDefaults writes the length fields to the config file
func (m *model) saveCurrentDefaults() {
	if m.saveDefaults == nil || m.configPath == "" {
		m.setStatus("No config file configured", true)

		return
	}

	if err := m.saveDefaults(m.configPath, m.params()); err != nil {
		m.setStatus(err.Error(), true)

		return
	}

	m.setStatus("Saved defaults to "+m.configPath, false)
}

// setStatus replaces the status line
func (m *model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusError = isError
}

// setFocus moves focus and keeps the text inputs' cursor state in sync
func (m *model) setFocus(target int) tea.Cmd {
	m.focus = (target + focusCount) % focusCount

	m.dirInput.Blur()
	m.nameInput.Blur()

	switch m.focus {
	case focusDirectory:
		return m.dirInput.Focus()
	case focusFileName:
		return m.nameInput.Focus()
	}

	return nil
}

// inputFocused reports whether keystrokes belong to a text field
func (m model) inputFocused() bool {
	return m.focus == focusDirectory || m.focus == focusFileName
}

// ensureCursorVisible adjusts viewport offset to keep cursor visible with middle-of-screen scrolling
func (m *model) ensureCursorVisible() {
	vm := NewViewportManager(m.viewport.Height, m.cursorPos, m.sequence.Len())
	m.viewport.SetYOffset(vm.CalculateOffset())
}

// seedLabel renders the seed field value
func (m model) seedLabel() string {
	if !m.seedSet {
		return "random"
	}

	if m.wideSeed != nil {
		return fmt.Sprintf("%d", *m.wideSeed)
	}

	return fmt.Sprintf("%d", m.values.Seed)
}

// elapsedLabel formats a run duration for the status line
func elapsedLabel(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
