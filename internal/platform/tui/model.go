package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/platform/raster"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// FrameMsg delivers a rendered frame to the model.
type FrameMsg Frame

// stoppedMsg reports that the driver closed the frame channel.
type stoppedMsg struct{}

// screenshotMsg reports the outcome of a ctrl+s.
type screenshotMsg struct {
	path string
	err  error
}

func waitForFrame(frames <-chan Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return stoppedMsg{}
		}
		return FrameMsg(f)
	}
}

// Model is the Bubble Tea model for one play session. It never touches the
// game: key presses go to the key state and frames come from the driver.
type Model struct {
	title         string
	keys          KeyMap
	help          help.Model
	input         *KeyState
	frames        <-chan Frame
	stop          context.CancelFunc
	frame         Frame
	scale         int
	screenshotDir string
	status        string
	stopping      bool
	styles        modelStyles
}

type modelStyles struct {
	title  lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
}

// ModelOptions configures NewModel.
type ModelOptions struct {
	Renderer      *lipgloss.Renderer // nil selects the default renderer
	Scale         int                // Pixels per cell in screenshots
	ScreenshotDir string             // Empty disables screenshots
}

// NewModel creates the model for sess. stop must cancel the context the
// session was started with.
func NewModel(sess *Session, stop context.CancelFunc, opts ModelOptions) Model {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		title:         sess.game.Title(),
		keys:          DefaultKeyMap(),
		help:          h,
		input:         sess.Input(),
		frames:        sess.Frames(),
		stop:          stop,
		scale:         opts.Scale,
		screenshotDir: opts.ScreenshotDir,
		styles: modelStyles{
			title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
			status: r.NewStyle().Foreground(lipgloss.Color("245")),
			help:   r.NewStyle().Foreground(lipgloss.Color("241")),
		},
	}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.frame = Frame(msg)
		return m, waitForFrame(m.frames)

	case stoppedMsg:
		return m, tea.Quit

	case screenshotMsg:
		if msg.err != nil {
			m.status = "screenshot failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		return m, m.screenshot()
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		// The driver stops at the next tick boundary and closes the frame
		// channel, which ends the program.
		if !m.stopping {
			m.stopping = true
			m.input.Release()
			m.stop()
		}
		return m, nil
	}

	m.input.Press(action)
	return m, nil
}

func (m Model) screenshot() tea.Cmd {
	if m.screenshotDir == "" || m.frame.Screen == nil {
		return nil
	}
	screen := m.frame.Screen
	scale := m.scale
	path := filepath.Join(m.screenshotDir,
		fmt.Sprintf("invaders_%s.png", time.Now().Format("20060102_150405")))

	return func() tea.Msg {
		return screenshotMsg{path: path, err: raster.WritePNG(path, screen, scale)}
	}
}

// View renders the latest frame with a status line and help bar.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.frame.View)
	b.WriteString("\n")

	st := m.frame.State
	line := fmt.Sprintf("%s  tick %d  shots %d  live %d",
		m.styles.title.Render(m.title), st.Tick, st.ShotsFired, st.LiveShots)
	if m.status != "" {
		line += "  " + m.status
	}
	b.WriteString(m.styles.status.Render(line))
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.help.View(m.keys)))

	return b.String()
}

// Options configures Run.
type Options struct {
	Session       SessionOptions
	ScreenshotDir string
}

// Run plays game in the local terminal until the player quits or ctx ends.
func Run(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, opts Options) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := NewSession(game, cfg, opts.Session)
	done := sess.Start(ctx)

	model := NewModel(sess, cancel, ModelOptions{
		Renderer:      opts.Session.Renderer,
		Scale:         cfg.Scale,
		ScreenshotDir: opts.ScreenshotDir,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	cancel()
	res := <-done
	if err != nil {
		return res, fmt.Errorf("tui: program failed: %w", err)
	}
	return res, res.Err
}
