package mapping

import (
	"fmt"
	"sort"
	"strings"
)

// KeyCode is a Linux input-event key code (KEY_* from input-event-codes.h).
type KeyCode uint16

// Key codes for everything the default profile and the name table cover.
const (
	KeyEsc        KeyCode = 1
	Key1          KeyCode = 2
	Key2          KeyCode = 3
	Key3          KeyCode = 4
	Key4          KeyCode = 5
	Key5          KeyCode = 6
	Key6          KeyCode = 7
	Key7          KeyCode = 8
	Key8          KeyCode = 9
	Key9          KeyCode = 10
	Key0          KeyCode = 11
	KeyMinus      KeyCode = 12
	KeyEqual      KeyCode = 13
	KeyBackspace  KeyCode = 14
	KeyTab        KeyCode = 15
	KeyQ          KeyCode = 16
	KeyW          KeyCode = 17
	KeyE          KeyCode = 18
	KeyR          KeyCode = 19
	KeyT          KeyCode = 20
	KeyY          KeyCode = 21
	KeyU          KeyCode = 22
	KeyI          KeyCode = 23
	KeyO          KeyCode = 24
	KeyP          KeyCode = 25
	KeyLeftBrace  KeyCode = 26
	KeyRightBrace KeyCode = 27
	KeyEnter      KeyCode = 28
	KeyLeftCtrl   KeyCode = 29
	KeyA          KeyCode = 30
	KeyS          KeyCode = 31
	KeyD          KeyCode = 32
	KeyF          KeyCode = 33
	KeyG          KeyCode = 34
	KeyH          KeyCode = 35
	KeyJ          KeyCode = 36
	KeyK          KeyCode = 37
	KeyL          KeyCode = 38
	KeySemicolon  KeyCode = 39
	KeyApostrophe KeyCode = 40
	KeyGrave      KeyCode = 41
	KeyLeftShift  KeyCode = 42
	KeyBackslash  KeyCode = 43
	KeyZ          KeyCode = 44
	KeyX          KeyCode = 45
	KeyC          KeyCode = 46
	KeyV          KeyCode = 47
	KeyB          KeyCode = 48
	KeyN          KeyCode = 49
	KeyM          KeyCode = 50
	KeyComma      KeyCode = 51
	KeyDot        KeyCode = 52
	KeySlash      KeyCode = 53
	KeyRightShift KeyCode = 54
	KeyLeftAlt    KeyCode = 56
	KeySpace      KeyCode = 57
	KeyCapsLock   KeyCode = 58
	KeyF1         KeyCode = 59
	KeyF2         KeyCode = 60
	KeyF3         KeyCode = 61
	KeyF4         KeyCode = 62
	KeyF5         KeyCode = 63
	KeyF6         KeyCode = 64
	KeyF7         KeyCode = 65
	KeyF8         KeyCode = 66
	KeyF9         KeyCode = 67
	KeyF10        KeyCode = 68
	KeyF11        KeyCode = 87
	KeyF12        KeyCode = 88
	KeyRightCtrl  KeyCode = 97
	KeyRightAlt   KeyCode = 100
	KeyHome       KeyCode = 102
	KeyUp         KeyCode = 103
	KeyPageUp     KeyCode = 104
	KeyLeft       KeyCode = 105
	KeyRight      KeyCode = 106
	KeyEnd        KeyCode = 107
	KeyDown       KeyCode = 108
	KeyPageDown   KeyCode = 109
	KeyInsert     KeyCode = 110
	KeyDelete     KeyCode = 111
)

// MaxKeyCode bounds the key-code range event sinks need to register.
const MaxKeyCode KeyCode = 255

var keysByName = map[string]KeyCode{
	"esc": KeyEsc, "escape": KeyEsc,
	"1": Key1, "2": Key2, "3": Key3, "4": Key4, "5": Key5,
	"6": Key6, "7": Key7, "8": Key8, "9": Key9, "0": Key0,
	"minus": KeyMinus, "equal": KeyEqual, "backspace": KeyBackspace,
	"tab": KeyTab, "enter": KeyEnter, "space": KeySpace,
	"q": KeyQ, "w": KeyW, "e": KeyE, "r": KeyR, "t": KeyT, "y": KeyY,
	"u": KeyU, "i": KeyI, "o": KeyO, "p": KeyP,
	"a": KeyA, "s": KeyS, "d": KeyD, "f": KeyF, "g": KeyG, "h": KeyH,
	"j": KeyJ, "k": KeyK, "l": KeyL,
	"z": KeyZ, "x": KeyX, "c": KeyC, "v": KeyV, "b": KeyB, "n": KeyN, "m": KeyM,
	"leftbrace": KeyLeftBrace, "rightbrace": KeyRightBrace,
	"semicolon": KeySemicolon, "apostrophe": KeyApostrophe, "grave": KeyGrave,
	"backslash": KeyBackslash, "comma": KeyComma, "dot": KeyDot, "slash": KeySlash,
	"leftshift": KeyLeftShift, "rightshift": KeyRightShift,
	"leftctrl": KeyLeftCtrl, "rightctrl": KeyRightCtrl,
	"leftalt": KeyLeftAlt, "rightalt": KeyRightAlt,
	"capslock": KeyCapsLock,
	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4, "f5": KeyF5, "f6": KeyF6,
	"f7": KeyF7, "f8": KeyF8, "f9": KeyF9, "f10": KeyF10, "f11": KeyF11, "f12": KeyF12,
	"home": KeyHome, "end": KeyEnd, "pageup": KeyPageUp, "pagedown": KeyPageDown,
	"insert": KeyInsert, "delete": KeyDelete,
	"up": KeyUp, "down": KeyDown, "left": KeyLeft, "right": KeyRight,
}

var namesByKey = func() map[KeyCode]string {
	m := make(map[KeyCode]string, len(keysByName))
	names := make([]string, 0, len(keysByName))
	for name := range keysByName {
		names = append(names, name)
	}
	// Longest name wins so aliases like "esc" don't shadow "escape".
	sort.Slice(names, func(i, j int) bool { return len(names[i]) < len(names[j]) })
	for _, name := range names {
		m[keysByName[name]] = name
	}
	return m
}()

// LookupKey resolves a key name from a profile into its key code. Names
// are case-insensitive.
func LookupKey(name string) (KeyCode, error) {
	code, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key name %q", name)
	}
	return code, nil
}

// KeyName returns the canonical name of a key code, or a hex fallback for
// codes outside the table.
func KeyName(code KeyCode) string {
	if name, ok := namesByKey[code]; ok {
		return name
	}
	return fmt.Sprintf("key-0x%02x", uint16(code))
}
