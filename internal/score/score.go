// internal/score/score.go
//
// Scoring of a reconstructed board against the board that was memorized.
//
// For every square the product truth·solution is taken (Empty=0, Black=+1,
// White=-1):
//   - product > 0 → correct placement (same square, same colour).
//   - product < 0 → wrong colour (same square, other colour).
// Everything else the player failed to reproduce counts as wrong position.
// A wrong-colour stone earns half the credit of a correct one.

package score

import (
	"math"

	"github.com/robalobadob/seton/internal/board"
)

// Score is the result of one round.
type Score struct {
	Correct       int     `json:"correct"`
	WrongColor    int     `json:"wrongColor"`
	WrongPosition int     `json:"wrongPosition"`
	Percentage    float64 `json:"percentage"` // 0.0–1.0
}

// Initial is the score shown before any round was played: nothing correct,
// every stone out of position.
func Initial(nBlack, nWhite int) Score {
	return Score{WrongPosition: nBlack + nWhite}
}

// Evaluate compares solution against truth. nBlack and nWhite are the stone
// counts the round was played with. Squares present in only one of the grids
// (size mismatch, nil solution) count as Empty.
func Evaluate(truth, solution *board.Grid, nBlack, nWhite int) Score {
	var s Score
	if truth != nil && solution != nil {
		for row := range truth.Cells {
			for col, t := range truth.Cells[row] {
				p := int(t) * int(solution.At(col, row))
				switch {
				case p > 0:
					s.Correct++
				case p < 0:
					s.WrongColor++
				}
			}
		}
	}

	total := nBlack + nWhite
	s.WrongPosition = max(total-s.Correct-s.WrongColor, 0)
	if total <= 0 {
		s.Percentage = 1
		return s
	}
	s.Percentage = float64(s.Correct)/float64(total) + 0.5*float64(s.WrongColor)/float64(total)
	return s
}

// Percent is the percentage rounded to a whole number, as displayed.
func (s Score) Percent() int {
	return int(math.Round(100 * s.Percentage))
}
