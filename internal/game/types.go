// internal/game/types.go
//
// Core type definitions for the memory game engine.
// Defines:
//   - State: where a session is in the round cycle.
//   - Config: the settings a round is played with.
//   - Limits: the allowed range of every setting.
//   - Mode: normal (random boards) or daily (date-seeded boards).

package game

import (
	"errors"
	"fmt"
)

// State is the round phase of a session.
//
//	Setting ──start──▶ Memorizing ──timeout/know_it──▶ Solving ──done──▶ Results
//	   ▲                                                                   │
//	   └───────────────────────────── start ◀──────────────────────────────┘
type State string

const (
	StateSetting    State = "setting"    // before the first round; config editable
	StateMemorizing State = "memorizing" // truth visible, countdown running
	StateSolving    State = "solving"    // player rebuilds the board
	StateResults    State = "results"    // score shown; config editable
)

// Configurable reports whether settings may be edited and a round started.
func (s State) Configurable() bool {
	return s == StateSetting || s == StateResults
}

// Mode selects how truth boards are drawn.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeDaily  Mode = "daily"
)

// ParseMode maps "" and "normal" to ModeNormal and "daily" to ModeDaily.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeNormal:
		return ModeNormal, nil
	case ModeDaily:
		return ModeDaily, nil
	}
	return ModeNormal, fmt.Errorf("unknown mode %q", s)
}

// Config holds the settings of a session. It can only change between rounds.
type Config struct {
	BoardSize   int `json:"boardSize" yaml:"board_size"`
	BlackStones int `json:"blackStones" yaml:"black_stones"`
	WhiteStones int `json:"whiteStones" yaml:"white_stones"`
	TimeSeconds int `json:"timeSeconds" yaml:"time_seconds"`
}

// DefaultConfig is a 5×5 board with five stones of each colour and 30 seconds
// to memorize.
func DefaultConfig() Config {
	return Config{BoardSize: 5, BlackStones: 5, WhiteStones: 5, TimeSeconds: 30}
}

// Config field names accepted by Session.SetConfig.
const (
	FieldBoardSize   = "board_size"
	FieldBlackStones = "black_stones"
	FieldWhiteStones = "white_stones"
	FieldTimeSeconds = "time_seconds"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Clamp pulls v into [Min, Max].
func (r Range) Clamp(v int) int {
	return min(max(v, r.Min), r.Max)
}

// Contains reports whether Min ≤ v ≤ Max.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Limits bounds every Config field.
type Limits struct {
	BoardSize   Range `json:"boardSize" yaml:"board_size"`
	BlackStones Range `json:"blackStones" yaml:"black_stones"`
	WhiteStones Range `json:"whiteStones" yaml:"white_stones"`
	TimeSeconds Range `json:"timeSeconds" yaml:"time_seconds"`
}

// DefaultLimits matches the setting sliders: board 5–12, 1–10 stones of each
// colour, 1–120 seconds.
func DefaultLimits() Limits {
	return Limits{
		BoardSize:   Range{Min: 5, Max: 12},
		BlackStones: Range{Min: 1, Max: 10},
		WhiteStones: Range{Min: 1, Max: 10},
		TimeSeconds: Range{Min: 1, Max: 120},
	}
}

// Validate checks that every range is non-empty and non-negative.
func (l Limits) Validate() error {
	for name, r := range map[string]Range{
		FieldBoardSize:   l.BoardSize,
		FieldBlackStones: l.BlackStones,
		FieldWhiteStones: l.WhiteStones,
		FieldTimeSeconds: l.TimeSeconds,
	} {
		if r.Min < 0 || r.Min > r.Max {
			return fmt.Errorf("limits.%s: invalid range [%d, %d]", name, r.Min, r.Max)
		}
	}
	if l.BoardSize.Min < 1 {
		return fmt.Errorf("limits.%s: minimum must be at least 1", FieldBoardSize)
	}
	return nil
}

// Clamp pulls every field of c into l.
func (l Limits) Clamp(c Config) Config {
	return Config{
		BoardSize:   l.BoardSize.Clamp(c.BoardSize),
		BlackStones: l.BlackStones.Clamp(c.BlackStones),
		WhiteStones: l.WhiteStones.Clamp(c.WhiteStones),
		TimeSeconds: l.TimeSeconds.Clamp(c.TimeSeconds),
	}
}

// Check returns an error naming the first field of c outside l.
func (l Limits) Check(c Config) error {
	switch {
	case !l.BoardSize.Contains(c.BoardSize):
		return fmt.Errorf("%s %d outside [%d, %d]", FieldBoardSize, c.BoardSize, l.BoardSize.Min, l.BoardSize.Max)
	case !l.BlackStones.Contains(c.BlackStones):
		return fmt.Errorf("%s %d outside [%d, %d]", FieldBlackStones, c.BlackStones, l.BlackStones.Min, l.BlackStones.Max)
	case !l.WhiteStones.Contains(c.WhiteStones):
		return fmt.Errorf("%s %d outside [%d, %d]", FieldWhiteStones, c.WhiteStones, l.WhiteStones.Min, l.WhiteStones.Max)
	case !l.TimeSeconds.Contains(c.TimeSeconds):
		return fmt.Errorf("%s %d outside [%d, %d]", FieldTimeSeconds, c.TimeSeconds, l.TimeSeconds.Min, l.TimeSeconds.Max)
	}
	return nil
}

// Errors returned by Session methods. HandleInput treats all of them as
// "ignore the event".
var (
	ErrWrongState   = errors.New("action not allowed in current state")
	ErrUnknownField = errors.New("unknown config field")
	ErrOutsideBoard = errors.New("position outside board")
	ErrUnknownEvent = errors.New("unknown event")
)
