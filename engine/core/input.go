package core

import "strings"

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_SHIFT     KeyCode = 0x10
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_PRIOR     KeyCode = 0x21 // page up
	KEY_NEXT      KeyCode = 0x22 // page down
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_NUMPAD0   KeyCode = 0x60
	KEY_NUMPAD1   KeyCode = 0x61
	KEY_NUMPAD2   KeyCode = 0x62
	KEY_NUMPAD3   KeyCode = 0x63
	KEY_NUMPAD4   KeyCode = 0x64
	KEY_NUMPAD5   KeyCode = 0x65
	KEY_NUMPAD6   KeyCode = 0x66
	KEY_NUMPAD7   KeyCode = 0x67
	KEY_NUMPAD8   KeyCode = 0x68
	KEY_NUMPAD9   KeyCode = 0x69
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0xFF
)

var keyNames = map[string]KeyCode{
	"backspace":    KEY_BACKSPACE,
	"tab":          KEY_TAB,
	"enter":        KEY_ENTER,
	"escape":       KEY_ESCAPE,
	"space":        KEY_SPACE,
	"pageup":       KEY_PRIOR,
	"pagedown":     KEY_NEXT,
	"end":          KEY_END,
	"home":         KEY_HOME,
	"left":         KEY_LEFT,
	"up":           KEY_UP,
	"right":        KEY_RIGHT,
	"down":         KEY_DOWN,
	"leftshift":    KEY_LSHIFT,
	"rightshift":   KEY_RSHIFT,
	"leftcontrol":  KEY_LCONTROL,
	"rightcontrol": KEY_RCONTROL,
}

// ParseKeyCode resolves a key name as written in the config file. Letters
// ("W"), numpad digits ("Numpad4") and the named keys above are accepted,
// case-insensitively.
func ParseKeyCode(name string) (KeyCode, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) == 1 && n[0] >= 'a' && n[0] <= 'z' {
		return KEY_A + KeyCode(n[0]-'a'), true
	}
	if len(n) == len("numpad0") && strings.HasPrefix(n, "numpad") {
		d := n[len(n)-1]
		if d >= '0' && d <= '9' {
			return KEY_NUMPAD0 + KeyCode(d-'0'), true
		}
	}
	k, ok := keyNames[n]
	return k, ok
}

// Keyboard state structure
type KeyboardState struct {
	Keys [256]bool
}

// InputState holds the current and previous keyboard snapshots. It is owned
// by the engine loop; the platform writes into it while pumping messages.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState

	events *EventSystem
}

// NewInputState creates an input state. Key transitions are fired on events
// when it is not nil.
func NewInputState(events *EventSystem) *InputState {
	return &InputState{events: events}
}

// Update copies the current state to the previous one. Call once at the end of a frame.
func (is *InputState) Update(deltaTime float64) {
	is.KeyboardPrevious = is.KeyboardCurrent
}

func (is *InputState) IsKeyDown(key KeyCode) bool {
	return is.KeyboardCurrent.Keys[key]
}

func (is *InputState) IsKeyUp(key KeyCode) bool {
	return !is.KeyboardCurrent.Keys[key]
}

func (is *InputState) WasKeyDown(key KeyCode) bool {
	return is.KeyboardPrevious.Keys[key]
}

// Released reports a key that was down last frame and is up now.
func (is *InputState) Released(key KeyCode) bool {
	return is.IsKeyUp(key) && is.WasKeyDown(key)
}

func (is *InputState) ProcessKey(key KeyCode, pressed bool) {
	// Only handle this if the state actually changed.
	if is.KeyboardCurrent.Keys[key] == pressed {
		return
	}
	is.KeyboardCurrent.Keys[key] = pressed

	if is.events == nil {
		return
	}
	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	is.events.Fire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key},
	})
}
