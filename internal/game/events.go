package game

import "github.com/robalobadob/seton/internal/board"

// Event is an input delivered to Session.HandleInput.
type Event interface {
	eventName() string
}

// Button identifies a pointer button. Primary places black, secondary white.
type Button string

const (
	ButtonPrimary   Button = "primary"
	ButtonSecondary Button = "secondary"
)

// Color is the stone colour a button requests.
func (b Button) Color() board.Cell {
	if b == ButtonSecondary {
		return board.White
	}
	return board.Black
}

type (
	// PointerMoved records the cursor position in viewport pixels.
	PointerMoved struct {
		X float64 `mapstructure:"x"`
		Y float64 `mapstructure:"y"`
	}

	// ButtonPressed clicks at the last recorded cursor position.
	ButtonPressed struct {
		Button Button `mapstructure:"button"`
	}

	// CellClicked clicks a square directly, for clients that hit-test
	// themselves.
	CellClicked struct {
		Col    int    `mapstructure:"col"`
		Row    int    `mapstructure:"row"`
		Button Button `mapstructure:"button"`
	}

	// StartRound begins a new round.
	StartRound struct{}

	// KnowIt ends memorizing early.
	KnowIt struct{}

	// Done submits the solution.
	Done struct{}

	// ConfigChanged sets one setting (a slider moved).
	ConfigChanged struct {
		Field string `mapstructure:"field"`
		Value int    `mapstructure:"value"`
	}

	// ViewportResized reports the new viewport size in pixels.
	ViewportResized struct {
		Width  float64 `mapstructure:"width"`
		Height float64 `mapstructure:"height"`
	}

	// Tick only re-checks the countdown.
	Tick struct{}
)

func (PointerMoved) eventName() string    { return "pointer_moved" }
func (ButtonPressed) eventName() string   { return "button_pressed" }
func (CellClicked) eventName() string     { return "cell_clicked" }
func (StartRound) eventName() string      { return "start" }
func (KnowIt) eventName() string          { return "know_it" }
func (Done) eventName() string            { return "done" }
func (ConfigChanged) eventName() string   { return "config_changed" }
func (ViewportResized) eventName() string { return "viewport_resized" }
func (Tick) eventName() string            { return "tick" }

// EventName returns the wire name of an event.
func EventName(e Event) string {
	if e == nil {
		return ""
	}
	return e.eventName()
}
