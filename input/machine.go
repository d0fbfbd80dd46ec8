package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Machine routes terminal events into a Cell through a KeyTable
type Machine struct {
	keyTable *KeyTable
	cell     *Cell
	now      func() time.Time
}

// NewMachine creates a machine; a nil key table uses DefaultKeyTable
func NewMachine(kt *KeyTable, cell *Cell) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{
		keyTable: kt,
		cell:     cell,
		now:      time.Now,
	}
}

// Cell returns the intent cell the machine writes into
func (m *Machine) Cell() *Cell {
	return m.cell
}

// Process resolves a terminal event and records it in the cell
// Returns the resolved intent, IntentNone for unbound keys and non-key events
func (m *Machine) Process(ev tcell.Event) Intent {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return IntentNone
	}

	intent := m.keyTable.Resolve(key)
	if intent == IntentNone {
		return IntentNone
	}

	at := key.When()
	if at.IsZero() {
		at = m.now()
	}
	m.cell.Press(intent, at)
	return intent
}
