package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()

	cases := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey('a'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey('d'), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tc := range cases {
		if got := km.Action(tc.msg); got != tc.want {
			t.Errorf("Action(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	if len(km.FullHelp()) != 2 {
		t.Errorf("Expected 2 help columns, got %d", len(km.FullHelp()))
	}
}

func TestKeyStateHoldWindow(t *testing.T) {
	clock := &manualClock{t: time.Unix(0, 0)}
	ks := NewKeyState(100*time.Millisecond, clock.Now)

	ks.Press(core.ActionLeft)
	if !ks.Poll().Has(core.ActionLeft) {
		t.Fatal("Freshly pressed action should be held")
	}

	clock.Advance(99 * time.Millisecond)
	if !ks.Poll().Has(core.ActionLeft) {
		t.Error("Action should still be held inside the window")
	}

	clock.Advance(time.Millisecond)
	if ks.Poll().Has(core.ActionLeft) {
		t.Error("Action should expire once the window has passed")
	}
}

func TestKeyStateRepeatExtendsHold(t *testing.T) {
	clock := &manualClock{t: time.Unix(0, 0)}
	ks := NewKeyState(100*time.Millisecond, clock.Now)

	ks.Press(core.ActionFire)
	clock.Advance(80 * time.Millisecond)
	ks.Press(core.ActionFire) // auto-repeat
	clock.Advance(80 * time.Millisecond)

	if !ks.Poll().Has(core.ActionFire) {
		t.Error("Auto-repeat should keep the action held")
	}
}

func TestKeyStateIndependentActions(t *testing.T) {
	clock := &manualClock{t: time.Unix(0, 0)}
	ks := NewKeyState(100*time.Millisecond, clock.Now)

	ks.Press(core.ActionLeft)
	clock.Advance(60 * time.Millisecond)
	ks.Press(core.ActionFire)
	clock.Advance(50 * time.Millisecond)

	frame := ks.Poll()
	if frame.Has(core.ActionLeft) {
		t.Error("Left should have expired")
	}
	if !frame.Has(core.ActionFire) {
		t.Error("Fire should still be held")
	}
}

func TestKeyStateRelease(t *testing.T) {
	ks := NewKeyState(0, nil)
	ks.Press(core.ActionRight)
	ks.Press(core.ActionNone)
	ks.Release()

	frame := ks.Poll()
	if frame.Has(core.ActionRight) || frame.Has(core.ActionNone) {
		t.Error("Release should drop every held action")
	}
}
