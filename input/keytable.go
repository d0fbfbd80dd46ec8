package input

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Rune aliases for keys that are awkward to spell in config files
var runeAliases = map[string]rune{
	"space": ' ',
}

// KeyTable maps terminal keys to intents
type KeyTable struct {
	// Special keys (arrows, Enter, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]Intent
	// Printable runes, stored lower-case
	Runes map[rune]Intent
}

// DefaultKeyTable returns WASD + arrow driving bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyUp:     IntentAccelerate,
			tcell.KeyDown:   IntentBrake,
			tcell.KeyLeft:   IntentTurnLeft,
			tcell.KeyRight:  IntentTurnRight,
			tcell.KeyEnter:  IntentRestart,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
		},
		Runes: map[rune]Intent{
			'w': IntentAccelerate,
			's': IntentBrake,
			'a': IntentTurnLeft,
			'd': IntentTurnRight,
			'r': IntentRestart,
			'm': IntentToggleMute,
			'q': IntentQuit,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		SpecialKeys: make(map[tcell.Key]Intent, len(kt.SpecialKeys)),
		Runes:       make(map[rune]Intent, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		out.SpecialKeys[k] = v
	}
	for k, v := range kt.Runes {
		out.Runes[k] = v
	}
	return out
}

// Resolve maps a key event to its intent
func (kt *KeyTable) Resolve(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[unicode.ToLower(ev.Rune())]
	}
	return kt.SpecialKeys[ev.Key()]
}

// specialKeyByName is the lower-cased reverse of tcell.KeyNames
var specialKeyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// ApplyBindings returns a copy of kt with intent → key-name overrides applied
// Keys listed for an intent are rebound to it; the "none" intent unbinds keys
func (kt *KeyTable) ApplyBindings(bindings map[string][]string) (*KeyTable, error) {
	out := kt.Clone()
	for action, keys := range bindings {
		intent, ok := IntentByName(strings.ToLower(strings.TrimSpace(action)))
		if !ok {
			return nil, errors.Errorf("unknown action: %q", action)
		}
		for _, name := range keys {
			if err := out.bind(name, intent); err != nil {
				return nil, errors.Wrapf(err, "action %q", action)
			}
		}
	}
	return out, nil
}

func (kt *KeyTable) bind(name string, intent Intent) error {
	lower := strings.ToLower(strings.TrimSpace(name))

	if r, ok := runeAliases[lower]; ok {
		kt.setRune(r, intent)
		return nil
	}
	if runes := []rune(lower); len(runes) == 1 {
		kt.setRune(runes[0], intent)
		return nil
	}
	if k, ok := specialKeyByName[lower]; ok {
		if intent == IntentNone {
			delete(kt.SpecialKeys, k)
		} else {
			kt.SpecialKeys[k] = intent
		}
		return nil
	}
	return errors.Errorf("invalid key name: %q", name)
}

func (kt *KeyTable) setRune(r rune, intent Intent) {
	if intent == IntentNone {
		delete(kt.Runes, r)
		return
	}
	kt.Runes[r] = intent
}
