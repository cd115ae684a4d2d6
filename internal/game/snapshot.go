package game

import (
	"github.com/robalobadob/seton/internal/board"
	"github.com/robalobadob/seton/internal/geometry"
	"github.com/robalobadob/seton/internal/score"
)

// Snapshot is everything a renderer needs to draw a session. Grids are
// copies and only present when they should be visible:
//   - Memorizing: truth only, plus the remaining countdown.
//   - Solving: solution only, plus the stones placed so far.
//   - Results: both grids and the score, once a round has been played.
type Snapshot struct {
	ID          string          `json:"id"`
	Mode        Mode            `json:"mode"`
	State       State           `json:"state"`
	Config      Config          `json:"config"`
	Limits      Limits          `json:"limits"`
	Truth       *board.Grid     `json:"truth,omitempty"`
	Solution    *board.Grid     `json:"solution,omitempty"`
	Remaining   float64         `json:"remaining"`
	Placed      *board.Counts   `json:"placed,omitempty"`
	Caps        board.Counts    `json:"caps"`
	Score       *score.Score    `json:"score,omitempty"`
	GamesPlayed int             `json:"gamesPlayed"`
	Layout      geometry.Layout `json:"layout"`
}

// Snapshot captures the session as it is now. It does not advance the
// countdown; call Tick (or HandleInput) first for a fresh state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:          s.ID,
		Mode:        s.Mode,
		State:       s.state,
		Config:      s.cfg,
		Limits:      s.limits,
		Remaining:   s.Remaining(),
		Caps:        s.caps,
		GamesPlayed: s.gamesPlayed,
		Layout:      s.layout,
	}
	played := s.gamesPlayed > 0
	switch s.state {
	case StateMemorizing:
		snap.Truth = s.truth.Clone()
	case StateSolving:
		snap.Solution = s.solution.Clone()
		placed := s.solution.Count()
		snap.Placed = &placed
	case StateResults, StateSetting:
		if played {
			snap.Truth = s.truth.Clone()
			snap.Solution = s.solution.Clone()
		}
	}
	if played && s.state != StateSolving {
		last := s.last
		snap.Score = &last
	}
	return snap
}
