package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestDefaultKeyTableResolve(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Intent
	}{
		{"w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), IntentAccelerate},
		{"W upper", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift), IntentAccelerate},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), IntentAccelerate},
		{"s", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), IntentBrake},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), IntentBrake},
		{"a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), IntentTurnLeft},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), IntentTurnLeft},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), IntentTurnRight},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), IntentTurnRight},
		{"r", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), IntentRestart},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), IntentRestart},
		{"m", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), IntentToggleMute},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), IntentQuit},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentQuit},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kt.Resolve(tt.ev); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestApplyBindings(t *testing.T) {
	base := DefaultKeyTable()

	kt, err := base.ApplyBindings(map[string][]string{
		"accelerate": {"i", "space"},
		"turn_left":  {"j"},
		"none":       {"w", "Up"},
	})
	if err != nil {
		t.Fatalf("ApplyBindings failed: %v", err)
	}

	if got := kt.Runes['i']; got != IntentAccelerate {
		t.Errorf("Expected i bound to accelerate, got %s", got)
	}
	if got := kt.Runes[' ']; got != IntentAccelerate {
		t.Errorf("Expected space bound to accelerate, got %s", got)
	}
	if got := kt.Runes['j']; got != IntentTurnLeft {
		t.Errorf("Expected j bound to turn_left, got %s", got)
	}
	if _, ok := kt.Runes['w']; ok {
		t.Error("Expected w unbound")
	}
	if _, ok := kt.SpecialKeys[tcell.KeyUp]; ok {
		t.Error("Expected Up unbound")
	}

	// Base table untouched
	if base.Runes['w'] != IntentAccelerate {
		t.Error("ApplyBindings modified the base table")
	}
}

func TestApplyBindingsErrors(t *testing.T) {
	tests := []struct {
		name     string
		bindings map[string][]string
	}{
		{"unknown action", map[string][]string{"jump": {"j"}}},
		{"unknown key", map[string][]string{"brake": {"NotAKey"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DefaultKeyTable().ApplyBindings(tt.bindings); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestIntentNames(t *testing.T) {
	for name, intent := range intentNames {
		got, ok := IntentByName(name)
		if !ok || got != intent {
			t.Errorf("IntentByName(%q) = %v, %v", name, got, ok)
		}
		if intent.String() != name {
			t.Errorf("Expected String() %q, got %q", name, intent.String())
		}
	}
	if !IntentTurnRight.Held() || IntentRestart.Held() || IntentNone.Held() {
		t.Error("Held classification wrong")
	}
}

func TestMachineProcess(t *testing.T) {
	cell := NewCell(time.Second)
	m := NewMachine(nil, cell)

	if got := m.Process(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)); got != IntentTurnLeft {
		t.Errorf("Expected turn_left, got %s", got)
	}
	if got := m.Process(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); got != IntentRestart {
		t.Errorf("Expected restart, got %s", got)
	}
	if got := m.Process(tcell.NewEventResize(80, 24)); got != IntentNone {
		t.Errorf("Expected none for resize, got %s", got)
	}

	if !cell.Snapshot(time.Now()).TurnLeft {
		t.Error("Expected turn_left latched in cell")
	}
	cmds := cell.TakeCommands()
	if len(cmds) != 1 || cmds[0] != IntentRestart {
		t.Errorf("Expected [restart], got %v", cmds)
	}
}
