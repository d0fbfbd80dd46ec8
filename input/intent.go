package input

// Intent is a semantic driver action resolved from a key event
type Intent uint8

const (
	IntentNone Intent = iota

	// Held intents, latched for the hold window on every press/repeat
	IntentAccelerate
	IntentBrake
	IntentTurnLeft
	IntentTurnRight

	// Commands, delivered once per press
	IntentRestart
	IntentToggleMute
	IntentQuit

	intentCount
)

// Held reports whether the intent is a continuous control rather than a command
func (i Intent) Held() bool {
	return i >= IntentAccelerate && i <= IntentTurnRight
}

// intentNames maps config-file action names to intents
var intentNames = map[string]Intent{
	"none":        IntentNone,
	"accelerate":  IntentAccelerate,
	"brake":       IntentBrake,
	"turn_left":   IntentTurnLeft,
	"turn_right":  IntentTurnRight,
	"restart":     IntentRestart,
	"toggle_mute": IntentToggleMute,
	"quit":        IntentQuit,
}

// IntentByName resolves a config action name
func IntentByName(name string) (Intent, bool) {
	i, ok := intentNames[name]
	return i, ok
}

func (i Intent) String() string {
	for name, v := range intentNames {
		if v == i {
			return name
		}
	}
	return "unknown"
}
