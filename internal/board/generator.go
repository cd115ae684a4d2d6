package board

import (
	"math/rand"
	"time"
)

// Generator draws random truth boards. It is not safe for concurrent use;
// each session owns its own Generator.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed. A zero seed means
// "seed from the clock".
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Reseed restarts the random sequence from seed.
func (g *Generator) Reseed(seed int64) {
	g.rng.Seed(seed)
}

// Generate returns a size×size grid holding nBlack black and nWhite white
// stones on distinct, uniformly random squares.
//
// The squares are drawn with a partial Fisher–Yates shuffle of all size²
// coordinates; the first k = min(nBlack+nWhite, size²) drawn squares are
// occupied, the first nBlack of them Black and the rest White. When the board
// is oversupplied the total is capped at size² and White absorbs the shortfall.
// Negative counts are treated as zero.
func (g *Generator) Generate(size, nBlack, nWhite int) *Grid {
	grid := NewGrid(size)
	nBlack, nWhite = max(nBlack, 0), max(nWhite, 0)

	squares := make([]int, grid.Size*grid.Size)
	for i := range squares {
		squares[i] = i
	}
	k := min(nBlack+nWhite, len(squares))
	for i := 0; i < k; i++ {
		j := i + g.rng.Intn(len(squares)-i)
		squares[i], squares[j] = squares[j], squares[i]

		pos := squares[i]
		color := White
		if i < nBlack {
			color = Black
		}
		grid.Cells[pos/grid.Size][pos%grid.Size] = color
	}
	return grid
}
