// internal/game/engine.go
//
// Round controller for a single player session.
// Responsibilities:
//   - Own the session config, the truth and solution grids, the countdown
//     start time, the last score and the games-played counter.
//   - Drive the round cycle Setting/Results → Memorizing → Solving → Results.
//   - Route pointer input through the board layout to solution edits.
//
// Notes:
//   - The countdown is derived from the stored start time on every check;
//     nothing is scheduled, so leaving Memorizing needs no cleanup.
//   - A Session is not safe for concurrent use. Callers serialize events
//     (the store does this per session).
//   - Methods return ErrWrongState and friends; HandleInput swallows them,
//     so a misrouted event never corrupts state.
package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/seton/internal/board"
	"github.com/robalobadob/seton/internal/daily"
	"github.com/robalobadob/seton/internal/geometry"
	"github.com/robalobadob/seton/internal/score"
)

// Session is one player's game.
type Session struct {
	ID   string
	Mode Mode

	cfg    Config
	limits Limits
	state  State

	truth    *board.Grid
	solution *board.Grid
	started  time.Time
	caps     board.Counts // stone counts of the current truth grid

	last        score.Score
	gamesPlayed int

	cursor geometry.Point
	layout geometry.Layout

	gen       *board.Generator
	dailySalt string
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithSeed seeds the board generator. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.gen = board.NewGenerator(seed) }
}

// WithLimits replaces DefaultLimits.
func WithLimits(l Limits) Option {
	return func(s *Session) { s.limits = l }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithDaily switches the session to daily boards seeded with salt.
func WithDaily(salt string) Option {
	return func(s *Session) {
		s.Mode = ModeDaily
		s.dailySalt = salt
	}
}

// New creates a session in StateSetting. cfg is clamped into the limits.
func New(id string, cfg Config, opts ...Option) *Session {
	s := &Session{
		ID:     id,
		Mode:   ModeNormal,
		limits: DefaultLimits(),
		state:  StateSetting,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.gen == nil {
		s.gen = board.NewGenerator(0)
	}
	s.cfg = s.limits.Clamp(cfg)
	s.truth = board.NewGrid(s.cfg.BoardSize)
	s.solution = board.NewGrid(s.cfg.BoardSize)
	s.caps = board.Counts{Black: s.cfg.BlackStones, White: s.cfg.WhiteStones}
	s.last = score.Initial(s.cfg.BlackStones, s.cfg.WhiteStones)
	s.log = s.log.With().Str("session", id).Logger()
	return s
}

// State returns the current round phase without advancing the countdown.
func (s *Session) State() State { return s.state }

// Config returns the current settings.
func (s *Session) Config() Config { return s.cfg }

// Limits returns the allowed setting ranges.
func (s *Session) Limits() Limits { return s.limits }

// LastScore returns the score of the most recent round.
func (s *Session) LastScore() score.Score { return s.last }

// GamesPlayed counts completed rounds.
func (s *Session) GamesPlayed() int { return s.gamesPlayed }

// Start draws a new truth board, clears the solution and starts the
// countdown.
func (s *Session) Start() error {
	if !s.state.Configurable() {
		return ErrWrongState
	}
	c := s.cfg
	now := s.now()
	if s.Mode == ModeDaily {
		s.gen.Reseed(daily.Seed(now, s.dailySalt, c.BoardSize, c.BlackStones, c.WhiteStones))
	}
	s.truth = s.gen.Generate(c.BoardSize, c.BlackStones, c.WhiteStones)
	s.solution = board.NewGrid(c.BoardSize)
	// Caps and score totals follow the drawn board, not cfg. They differ only
	// when the board is too small for the configured stones and Generate
	// dropped some white ones; a perfect copy must still reach 100%.
	s.caps = s.truth.Count()
	s.started = now
	s.layout = geometry.Compute(s.layout.Viewport.X, s.layout.Viewport.Y, c.BoardSize)
	s.enter(StateMemorizing)
	return nil
}

// Remaining is the share of the memorizing time left, in [0, 1]. Outside
// Memorizing it is 0.
func (s *Session) Remaining() float64 {
	if s.state != StateMemorizing || s.cfg.TimeSeconds <= 0 {
		return 0
	}
	left := 1 - s.now().Sub(s.started).Seconds()/float64(s.cfg.TimeSeconds)
	return min(max(left, 0), 1)
}

// Tick moves Memorizing to Solving once the countdown has run out. It
// reports whether the state changed.
func (s *Session) Tick() bool {
	if s.state == StateMemorizing && s.Remaining() <= 0 {
		s.enter(StateSolving)
		return true
	}
	return false
}

// KnowIt ends memorizing regardless of the time left.
func (s *Session) KnowIt() error {
	if s.state != StateMemorizing {
		return ErrWrongState
	}
	s.enter(StateSolving)
	return nil
}

// Done scores the solution and moves to Results.
func (s *Session) Done() error {
	if s.state != StateSolving {
		return ErrWrongState
	}
	s.last = score.Evaluate(s.truth, s.solution, s.caps.Black, s.caps.White)
	s.gamesPlayed++
	s.log.Info().
		Int("correct", s.last.Correct).
		Int("wrongColor", s.last.WrongColor).
		Int("wrongPosition", s.last.WrongPosition).
		Int("percent", s.last.Percent()).
		Int("gamesPlayed", s.gamesPlayed).
		Msg("round finished")
	s.enter(StateResults)
	return nil
}

// Place toggles square (col, row) of the solution with the given colour,
// subject to the stone caps of the round.
func (s *Session) Place(col, row int, color board.Cell) (board.Cell, error) {
	if s.state != StateSolving {
		return board.Empty, ErrWrongState
	}
	if !s.solution.InBounds(col, row) {
		return board.Empty, ErrOutsideBoard
	}
	v, _ := s.solution.Place(col, row, color, s.caps)
	return v, nil
}

// MoveCursor records the pointer position used by Click.
func (s *Session) MoveCursor(p geometry.Point) { s.cursor = p }

// Click places a stone at the square under the cursor.
func (s *Session) Click(b Button) (board.Cell, error) {
	if s.state != StateSolving {
		return board.Empty, ErrWrongState
	}
	col, row, ok := s.layout.HitSolution(s.cursor, s.cfg.BoardSize)
	if !ok {
		return board.Empty, ErrOutsideBoard
	}
	return s.Place(col, row, b.Color())
}

// Resize recomputes the board layout for a new viewport.
func (s *Session) Resize(width, height float64) {
	s.layout = geometry.Compute(width, height, s.cfg.BoardSize)
}

// SetConfig changes one setting between rounds. The value is clamped into
// the field's limits.
func (s *Session) SetConfig(field string, value int) error {
	if !s.state.Configurable() {
		return ErrWrongState
	}
	c := s.cfg
	switch field {
	case FieldBoardSize:
		c.BoardSize = s.limits.BoardSize.Clamp(value)
	case FieldBlackStones:
		c.BlackStones = s.limits.BlackStones.Clamp(value)
	case FieldWhiteStones:
		c.WhiteStones = s.limits.WhiteStones.Clamp(value)
	case FieldTimeSeconds:
		c.TimeSeconds = s.limits.TimeSeconds.Clamp(value)
	default:
		return ErrUnknownField
	}
	resized := c.BoardSize != s.cfg.BoardSize
	s.cfg = c
	if resized {
		s.Resize(s.layout.Viewport.X, s.layout.Viewport.Y)
	}
	return nil
}

// HandleInput applies one input event and returns the resulting state.
// The countdown is checked before the event is applied. Events that are not
// allowed in the current state are ignored.
func (s *Session) HandleInput(e Event) State {
	s.Tick()

	var err error
	switch ev := e.(type) {
	case PointerMoved:
		s.MoveCursor(geometry.Point{X: ev.X, Y: ev.Y})
	case ButtonPressed:
		_, err = s.Click(ev.Button)
	case CellClicked:
		_, err = s.Place(ev.Col, ev.Row, ev.Button.Color())
	case StartRound:
		err = s.Start()
	case KnowIt:
		err = s.KnowIt()
	case Done:
		err = s.Done()
	case ConfigChanged:
		err = s.SetConfig(ev.Field, ev.Value)
	case ViewportResized:
		s.Resize(ev.Width, ev.Height)
	case Tick:
	default:
		err = ErrUnknownEvent
	}
	if err != nil {
		s.log.Debug().Err(err).Str("event", EventName(e)).Str("state", string(s.state)).Msg("input ignored")
	}
	return s.state
}

func (s *Session) enter(next State) {
	s.log.Debug().Str("from", string(s.state)).Str("to", string(next)).Msg("state change")
	s.state = next
}
