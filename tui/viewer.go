// ABOUTME: Read-only IFL viewer with live file watching and scrolling
// ABOUTME: Watches an IFL file for rewrites and redisplays its entries and header

package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"ifl-sequencer/sequence"
)

// Debounce delay so a file being rewritten is read once complete
const reloadDebounce = 100 * time.Millisecond

// Viewer chrome: title, header row, status and help lines
const (
	viewerHeaderHeight = 3
	viewerFooterHeight = 2
)

// viewerModel holds the state for the read-only viewer
type viewerModel struct {
	path       string
	seq        sequence.Sequence
	created    time.Time
	viewport   viewport.Model
	watcher    *fsnotify.Watcher
	width      int
	height     int
	cursorPos  int
	lastReload time.Time
	errorMsg   string
	ready      bool
}

// Key bindings for the viewer
type viewerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

var viewerKeys = viewerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "go to top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "go to bottom"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// fileChangeMsg is sent when the watched file changes
type fileChangeMsg struct{}

// reloadCompleteMsg is sent after a reload completes
type reloadCompleteMsg struct {
	seq     sequence.Sequence
	created time.Time
	err     error
}

// RunViewer displays an IFL file and follows changes to it
func RunViewer(path string) error {
	seq, created, err := sequence.ReadFile(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; writers that replace the file would drop a file watch
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	m := newViewerModel(path, seq, created)
	m.watcher = watcher

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer error: %w", err)
	}

	return nil
}

func newViewerModel(path string, seq sequence.Sequence, created time.Time) viewerModel {
	return viewerModel{
		path:       path,
		seq:        seq,
		created:    created,
		lastReload: time.Now(),
	}
}

// Init starts watching
func (m viewerModel) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	return waitForFileChange(m.watcher, m.path)
}

// isFileEvent reports whether event touches target in a way that warrants a reload
func isFileEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(target) {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// waitForFileChange returns a command that waits for the next change to path
func waitForFileChange(watcher *fsnotify.Watcher, path string) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if isFileEvent(event, path) {
					time.Sleep(reloadDebounce)

					return fileChangeMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}

				log.Warn().Err(err).Msg("File watcher error")
			}
		}
	}
}

// reloadSequence reads the file in the background
func reloadSequence(path string) tea.Cmd {
	return func() tea.Msg {
		seq, created, err := sequence.ReadFile(path)

		return reloadCompleteMsg{seq: seq, created: created, err: err}
	}
}

// Update handles messages for the viewer
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := msg.Height - viewerHeaderHeight - viewerFooterHeight
		if height < minViewportHeight {
			height = minViewportHeight
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}

		m.refresh()

		return m, nil

	case fileChangeMsg:
		cmds := []tea.Cmd{reloadSequence(m.path)}
		if m.watcher != nil {
			cmds = append(cmds, waitForFileChange(m.watcher, m.path))
		}

		return m, tea.Batch(cmds...)

	case reloadCompleteMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Error reloading: %v", msg.err)

			return m, nil
		}

		m.seq = msg.seq
		m.created = msg.created
		m.lastReload = time.Now()
		m.errorMsg = ""
		m.cursorPos = clampCursor(m.cursorPos, m.seq.Len())
		m.refresh()

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, viewerKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, viewerKeys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, viewerKeys.Down):
			m.moveCursor(1)
		case key.Matches(msg, viewerKeys.PageUp):
			m.moveCursor(-max(m.viewport.Height, 1))
		case key.Matches(msg, viewerKeys.PageDown):
			m.moveCursor(max(m.viewport.Height, 1))
		case key.Matches(msg, viewerKeys.Top):
			m.moveCursor(-m.seq.Len())
		case key.Matches(msg, viewerKeys.Bottom):
			m.moveCursor(m.seq.Len())
		case key.Matches(msg, viewerKeys.Reload):
			return m, reloadSequence(m.path)
		}
	}

	return m, nil
}

// moveCursor moves the cursor and keeps it on screen
func (m *viewerModel) moveCursor(delta int) {
	m.cursorPos = clampCursor(m.cursorPos+delta, m.seq.Len())
	m.refresh()
}

// refresh re-renders the rows and recenters the viewport on the cursor
func (m *viewerModel) refresh() {
	m.viewport.SetContent(renderEntries(m.seq.Entries, m.cursorPos, true))

	vm := NewViewportManager(m.viewport.Height, m.cursorPos, m.seq.Len())
	m.viewport.SetYOffset(vm.CalculateOffset())
}

// View renders the viewer
func (m viewerModel) View() string {
	if !m.ready {
		return "Loading...\n"
	}

	seed := sequence.SeedNotDefined
	if m.seq.Seed != nil {
		seed = fmt.Sprintf("%d", *m.seq.Seed)
	}

	title := titleStyle.Render(fmt.Sprintf("%s (%d entries)", filepath.Base(m.path), m.seq.Len()))
	header := headerStyle.Render(fmt.Sprintf("Created %s • Seed %s",
		m.created.Format(time.DateTime), seed))

	status := statusStyle.Render(fmt.Sprintf("Entry %d/%d • reloaded %s",
		min(m.cursorPos+1, m.seq.Len()), m.seq.Len(), m.lastReload.Format(time.TimeOnly)))
	if m.errorMsg != "" {
		status = statusErrorStyle.Render(m.errorMsg)
	}

	help := helpStyle.Render("↑↓/pgup/pgdn/g/G: scroll • r: reload • q: quit")

	return title + "\n" + header + "\n\n" + m.viewport.View() + "\n" + status + "\n" + help
}
