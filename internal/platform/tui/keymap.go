package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// DefaultHoldWindow is how long a key press keeps its action held.
const DefaultHoldWindow = 120 * time.Millisecond

// KeyMap defines the key bindings used while playing.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Fire},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "fire"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action maps a key message to a game action. Keys that are not game
// controls map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	}
	return core.ActionNone
}

// KeyState is an engine input source fed by terminal key events.
// Terminals report presses and auto-repeats but no releases, so an action
// counts as held until the hold window passes without a new press.
type KeyState struct {
	mu      sync.Mutex
	pressed map[core.Action]time.Time
	hold    time.Duration
	now     func() time.Time
}

// NewKeyState creates a key state with the given hold window.
// A non-positive window selects DefaultHoldWindow.
func NewKeyState(hold time.Duration, now func() time.Time) *KeyState {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	if now == nil {
		now = time.Now
	}
	return &KeyState{
		pressed: make(map[core.Action]time.Time),
		hold:    hold,
		now:     now,
	}
}

// Press records a press or auto-repeat of action.
func (ks *KeyState) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	ks.mu.Lock()
	ks.pressed[a] = ks.now()
	ks.mu.Unlock()
}

// Release drops every held action.
func (ks *KeyState) Release() {
	ks.mu.Lock()
	clear(ks.pressed)
	ks.mu.Unlock()
}

// Poll returns the actions pressed within the hold window.
func (ks *KeyState) Poll() core.InputFrame {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	frame := core.NewInputFrame()
	now := ks.now()
	for a, at := range ks.pressed {
		if now.Sub(at) < ks.hold {
			frame.Set(a)
		} else {
			delete(ks.pressed, a)
		}
	}
	return frame
}
