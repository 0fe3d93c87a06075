package input

import "github.com/gdamore/tcell/v2"

// Binding is a player slot and the action a key drives for it
type Binding struct {
	Slot   int
	Action Action
}

// Command is a front-end request that bypasses the player slots
type Command uint8

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause
	CommandMute
)

// KeyMap maps terminal keys to player bindings
// Rune bindings are case-insensitive so Shift or Caps Lock do not drop input
type KeyMap struct {
	Runes    map[rune]Binding
	Keys     map[tcell.Key]Binding
	Quit     map[tcell.Key]bool
	Commands map[rune]Command
}

// DefaultKeyMap binds player 0 to WASD+Space and player 1 to arrows+Enter
// P pauses, M mutes, Esc and Ctrl-C quit
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Runes: map[rune]Binding{
			'w': {0, ActionForward},
			's': {0, ActionBack},
			'a': {0, ActionTurnLeft},
			'd': {0, ActionTurnRight},
			' ': {0, ActionFire},
		},
		Keys: map[tcell.Key]Binding{
			tcell.KeyUp:    {1, ActionForward},
			tcell.KeyDown:  {1, ActionBack},
			tcell.KeyLeft:  {1, ActionTurnLeft},
			tcell.KeyRight: {1, ActionTurnRight},
			tcell.KeyEnter: {1, ActionFire},
		},
		Quit: map[tcell.Key]bool{
			tcell.KeyEscape: true,
			tcell.KeyCtrlC:  true,
		},
		Commands: map[rune]Command{
			'p': CommandPause,
			'm': CommandMute,
		},
	}
}

// Lookup resolves a key event to a binding
func (m *KeyMap) Lookup(ev *tcell.EventKey) (Binding, bool) {
	if ev.Key() == tcell.KeyRune {
		b, ok := m.Runes[lower(ev.Rune())]
		return b, ok
	}
	b, ok := m.Keys[ev.Key()]
	return b, ok
}

// Command resolves a key event to a front-end command
func (m *KeyMap) Command(ev *tcell.EventKey) Command {
	if m.Quit[ev.Key()] {
		return CommandQuit
	}
	if ev.Key() == tcell.KeyRune {
		return m.Commands[lower(ev.Rune())]
	}
	return CommandNone
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}
