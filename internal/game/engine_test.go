package game

import (
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/seton/internal/board"
	"github.com/robalobadob/seton/internal/geometry"
)

// fakeClock is a manually advanced clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(t *testing.T, cfg Config, opts ...Option) (*Session, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clk.Now), WithSeed(99)}, opts...)
	return New("test", cfg, opts...), clk
}

// copyTruth places every stone of the truth grid onto the solution.
func copyTruth(t *testing.T, s *Session) {
	t.Helper()
	for row := range s.truth.Cells {
		for col, c := range s.truth.Cells[row] {
			if c == board.Empty {
				continue
			}
			if v, err := s.Place(col, row, c); err != nil || v != c {
				t.Fatalf("Place(%d,%d,%v) = %v, %v", col, row, c, v, err)
			}
		}
	}
}

func TestRoundCycle(t *testing.T) {
	s, clk := newTestSession(t, DefaultConfig())
	if s.State() != StateSetting {
		t.Fatalf("initial state = %s", s.State())
	}

	if got := s.HandleInput(StartRound{}); got != StateMemorizing {
		t.Fatalf("after start: %s", got)
	}
	if n := s.truth.Count(); n.Black != 5 || n.White != 5 {
		t.Fatalf("truth counts = %+v", n)
	}
	if n := s.solution.Count(); n.Total() != 0 {
		t.Fatalf("solution not cleared: %+v", n)
	}
	if r := s.Remaining(); r != 1 {
		t.Fatalf("remaining at start = %v", r)
	}

	clk.Advance(15 * time.Second)
	if got := s.HandleInput(Tick{}); got != StateMemorizing {
		t.Fatalf("half-way: %s", got)
	}
	if r := s.Remaining(); r != 0.5 {
		t.Fatalf("remaining half-way = %v", r)
	}

	clk.Advance(15 * time.Second)
	if got := s.HandleInput(Tick{}); got != StateSolving {
		t.Fatalf("after timeout: %s", got)
	}
	if s.Remaining() != 0 {
		t.Fatal("remaining should be 0 outside memorizing")
	}

	copyTruth(t, s)
	if got := s.HandleInput(Done{}); got != StateResults {
		t.Fatalf("after done: %s", got)
	}
	last := s.LastScore()
	if last.Correct != 10 || last.WrongColor != 0 || last.WrongPosition != 0 || last.Percentage != 1 {
		t.Fatalf("score = %+v", last)
	}
	if s.GamesPlayed() != 1 {
		t.Fatalf("games played = %d", s.GamesPlayed())
	}

	// Solving with no time limit: a second round stays in Solving until done.
	s.HandleInput(StartRound{})
	s.HandleInput(KnowIt{})
	clk.Advance(time.Hour)
	if got := s.HandleInput(Tick{}); got != StateSolving {
		t.Fatalf("solving should not time out, got %s", got)
	}
	s.HandleInput(Done{})
	if s.GamesPlayed() != 2 || s.LastScore().Percentage != 0 {
		t.Fatalf("second round: played=%d score=%+v", s.GamesPlayed(), s.LastScore())
	}
}

func TestKnowItSkipsCountdown(t *testing.T) {
	s, _ := newTestSession(t, DefaultConfig())
	s.HandleInput(StartRound{})
	if got := s.HandleInput(KnowIt{}); got != StateSolving {
		t.Fatalf("know_it: %s", got)
	}
}

func TestInvalidTransitionsAreIgnored(t *testing.T) {
	s, _ := newTestSession(t, DefaultConfig())

	if err := s.Done(); !errors.Is(err, ErrWrongState) {
		t.Fatalf("done in setting: %v", err)
	}
	if err := s.KnowIt(); !errors.Is(err, ErrWrongState) {
		t.Fatalf("know_it in setting: %v", err)
	}
	if _, err := s.Place(0, 0, board.Black); !errors.Is(err, ErrWrongState) {
		t.Fatalf("place in setting: %v", err)
	}
	if got := s.HandleInput(Done{}); got != StateSetting {
		t.Fatalf("done moved state to %s", got)
	}

	s.HandleInput(StartRound{})
	truth := s.truth.Clone()
	if err := s.Start(); !errors.Is(err, ErrWrongState) {
		t.Fatalf("start while memorizing: %v", err)
	}
	if !s.truth.Equal(truth) {
		t.Fatal("second start regenerated the truth grid")
	}
	s.HandleInput(CellClicked{Col: 0, Row: 0, Button: ButtonPrimary})
	if s.solution.Count().Total() != 0 {
		t.Fatal("solution edited while memorizing")
	}
	if err := s.SetConfig(FieldBoardSize, 8); !errors.Is(err, ErrWrongState) {
		t.Fatalf("config while memorizing: %v", err)
	}

	s.HandleInput(KnowIt{})
	s.HandleInput(ConfigChanged{Field: FieldBlackStones, Value: 1})
	if s.Config().BlackStones != 5 {
		t.Fatal("config changed while solving")
	}
	if s.GamesPlayed() != 0 {
		t.Fatal("games played changed without done")
	}
	if got := s.HandleInput(nil); got != StateSolving {
		t.Fatalf("nil event moved state to %s", got)
	}
}

func TestSetConfig(t *testing.T) {
	s, _ := newTestSession(t, DefaultConfig())

	cases := []struct {
		field string
		value int
		check func(Config) int
		want  int
	}{
		{FieldBoardSize, 9, func(c Config) int { return c.BoardSize }, 9},
		{FieldBoardSize, 40, func(c Config) int { return c.BoardSize }, 12},
		{FieldBlackStones, 0, func(c Config) int { return c.BlackStones }, 1},
		{FieldWhiteStones, 7, func(c Config) int { return c.WhiteStones }, 7},
		{FieldTimeSeconds, 500, func(c Config) int { return c.TimeSeconds }, 120},
	}
	for _, tc := range cases {
		if err := s.SetConfig(tc.field, tc.value); err != nil {
			t.Fatalf("SetConfig(%s, %d): %v", tc.field, tc.value, err)
		}
		if got := tc.check(s.Config()); got != tc.want {
			t.Fatalf("SetConfig(%s, %d) -> %d, want %d", tc.field, tc.value, got, tc.want)
		}
	}
	if err := s.SetConfig("colour", 1); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("unknown field: %v", err)
	}

	// the next round uses the new settings
	s.HandleInput(StartRound{})
	if s.truth.Size != 12 {
		t.Fatalf("truth size = %d", s.truth.Size)
	}
	if n := s.truth.Count(); n.Black != 1 || n.White != 7 {
		t.Fatalf("truth counts = %+v", n)
	}
}

func TestNewClampsConfig(t *testing.T) {
	s, _ := newTestSession(t, Config{BoardSize: 2, BlackStones: 50, WhiteStones: -1, TimeSeconds: 0})
	want := Config{BoardSize: 5, BlackStones: 10, WhiteStones: 1, TimeSeconds: 1}
	if s.Config() != want {
		t.Fatalf("config = %+v, want %+v", s.Config(), want)
	}
}

func TestCapsFollowTruth(t *testing.T) {
	limits := DefaultLimits()
	limits.BlackStones.Max = 30
	limits.WhiteStones.Max = 30
	s, _ := newTestSession(t, Config{BoardSize: 5, BlackStones: 20, WhiteStones: 20, TimeSeconds: 10}, WithLimits(limits))

	s.HandleInput(StartRound{})
	if n := s.truth.Count(); n.Black != 20 || n.White != 5 {
		t.Fatalf("clamped truth = %+v", n)
	}
	s.HandleInput(KnowIt{})
	copyTruth(t, s)
	s.HandleInput(Done{})
	if got := s.LastScore(); got.Percentage != 1 || got.WrongPosition != 0 {
		t.Fatalf("perfect copy of a clamped board scored %+v", got)
	}
}

func TestOversuppliedBoardUsesDrawnCounts(t *testing.T) {
	limits := DefaultLimits()
	limits.BoardSize.Min = 2
	s, _ := newTestSession(t, Config{BoardSize: 2, BlackStones: 3, WhiteStones: 3, TimeSeconds: 10}, WithLimits(limits))

	s.HandleInput(StartRound{})
	want := board.Counts{Black: 3, White: 1}
	if got := s.truth.Count(); got != want {
		t.Fatalf("truth = %+v, want %+v", got, want)
	}
	snap := s.Snapshot()
	if snap.Caps != want {
		t.Fatalf("caps = %+v, want %+v", snap.Caps, want)
	}
	if c := s.Config(); c.BlackStones != 3 || c.WhiteStones != 3 {
		t.Fatalf("config rewritten by clamping: %+v", c)
	}

	s.HandleInput(KnowIt{})
	copyTruth(t, s)
	if got := s.solution.Count(); got != want {
		t.Fatalf("solution = %+v", got)
	}
	s.HandleInput(Done{})
	if got := s.LastScore(); got.Correct != 4 || got.Percentage != 1 {
		t.Fatalf("score = %+v", got)
	}
}

func TestPlaceCapacity(t *testing.T) {
	s, _ := newTestSession(t, Config{BoardSize: 5, BlackStones: 2, WhiteStones: 1, TimeSeconds: 10})
	s.HandleInput(StartRound{})
	s.HandleInput(KnowIt{})

	for col := 0; col < 5; col++ {
		s.HandleInput(CellClicked{Col: col, Row: 0, Button: ButtonPrimary})
	}
	if n := s.solution.Count(); n.Black != 2 || n.White != 1 {
		t.Fatalf("counts = %+v", n)
	}
	if _, err := s.Place(5, 0, board.Black); !errors.Is(err, ErrOutsideBoard) {
		t.Fatalf("place outside: %v", err)
	}

	// toggling a stone off frees capacity again
	s.HandleInput(CellClicked{Col: 0, Row: 0, Button: ButtonSecondary})
	if s.solution.At(0, 0) != board.Empty {
		t.Fatal("click on a foreign stone should clear it")
	}
	s.HandleInput(CellClicked{Col: 4, Row: 4, Button: ButtonPrimary})
	if s.solution.At(4, 4) != board.Black {
		t.Fatal("freed black capacity not reusable")
	}
}

func TestPointerInput(t *testing.T) {
	s, _ := newTestSession(t, DefaultConfig())
	s.HandleInput(ViewportResized{Width: 1600, Height: 900})
	s.HandleInput(StartRound{})
	s.HandleInput(KnowIt{})

	l := s.layout
	center := l.CellCenter(l.SolutionOrigin, 5, 1, 3)
	s.HandleInput(PointerMoved{X: center.X, Y: center.Y})
	s.HandleInput(ButtonPressed{Button: ButtonSecondary})
	if s.solution.At(1, 3) != board.White {
		t.Fatalf("secondary click did not place white at (1,3):\n%s", s.solution)
	}
	s.HandleInput(ButtonPressed{Button: ButtonSecondary})
	if s.solution.At(1, 3) != board.Empty {
		t.Fatal("second click did not clear the square")
	}

	// the truth board is not clickable
	truthCenter := l.CellCenter(l.TruthOrigin, 5, 2, 2)
	s.HandleInput(PointerMoved{X: truthCenter.X, Y: truthCenter.Y})
	if _, err := s.Click(ButtonPrimary); !errors.Is(err, ErrOutsideBoard) {
		t.Fatalf("click on truth board: %v", err)
	}
	if s.solution.Count().Total() != 0 {
		t.Fatal("solution changed")
	}
}

func TestSnapshotVisibility(t *testing.T) {
	s, _ := newTestSession(t, DefaultConfig())

	snap := s.Snapshot()
	if snap.Truth != nil || snap.Solution != nil || snap.Score != nil {
		t.Fatalf("setting snapshot leaks boards: %+v", snap)
	}

	s.HandleInput(StartRound{})
	snap = s.Snapshot()
	if snap.Truth == nil || snap.Solution != nil || snap.Remaining != 1 {
		t.Fatalf("memorizing snapshot: truth=%v solution=%v remaining=%v", snap.Truth != nil, snap.Solution != nil, snap.Remaining)
	}
	for row := range snap.Truth.Cells {
		for col, c := range snap.Truth.Cells[row] {
			snap.Truth.Set(col, row, c.Opposite())
		}
	}
	if s.truth.Equal(snap.Truth) {
		t.Fatal("snapshot shares the truth grid")
	}

	s.HandleInput(KnowIt{})
	s.HandleInput(CellClicked{Col: 0, Row: 0, Button: ButtonPrimary})
	snap = s.Snapshot()
	if snap.Truth != nil || snap.Solution == nil || snap.Score != nil {
		t.Fatal("solving snapshot must show the solution only")
	}
	if snap.Placed == nil || snap.Placed.Black != 1 {
		t.Fatalf("placed = %+v", snap.Placed)
	}

	s.HandleInput(Done{})
	snap = s.Snapshot()
	if snap.Truth == nil || snap.Solution == nil || snap.Score == nil || snap.GamesPlayed != 1 {
		t.Fatalf("results snapshot incomplete: %+v", snap)
	}
}

func TestDailyModeRepeatsBoard(t *testing.T) {
	a, _ := newTestSession(t, DefaultConfig(), WithDaily("salt"), WithSeed(1))
	b, _ := newTestSession(t, DefaultConfig(), WithDaily("salt"), WithSeed(2))
	a.HandleInput(StartRound{})
	b.HandleInput(StartRound{})
	if !a.truth.Equal(b.truth) {
		t.Fatalf("daily boards differ:\n%s\n%s", a.truth, b.truth)
	}
	if a.Mode != ModeDaily {
		t.Fatalf("mode = %s", a.Mode)
	}
}

func TestResizeKeepsHitMappingConsistent(t *testing.T) {
	s, _ := newTestSession(t, DefaultConfig())
	s.HandleInput(StartRound{})
	s.HandleInput(KnowIt{})
	s.HandleInput(ViewportResized{Width: 600, Height: 1200})
	if !s.layout.Vertical {
		t.Fatal("expected vertical layout")
	}
	p := s.layout.CellCenter(s.layout.SolutionOrigin, 5, 4, 0)
	s.MoveCursor(geometry.Point{X: p.X, Y: p.Y})
	if v, err := s.Click(ButtonPrimary); err != nil || v != board.Black {
		t.Fatalf("click = %v, %v", v, err)
	}
	if s.solution.At(4, 0) != board.Black {
		t.Fatal("stone not at top-right square")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeNormal, "normal": ModeNormal, "daily": ModeDaily} {
		if got, err := ParseMode(in); err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("weekly"); err == nil {
		t.Fatal("expected error")
	}
}
