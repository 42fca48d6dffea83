package grid

import "fmt"

// Cell is a (row, col) coordinate. Row 0 is the top of the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move returns the cell one step away in direction d.
func (c Cell) Move(d Direction) Cell {
	delta := d.Delta()
	return Cell{Row: c.Row + delta.Row, Col: c.Col + delta.Col}
}

// Manhattan calculates the manhattan distance: |r2 - r1| + |c2 - c1|
func (c Cell) Manhattan(other Cell) int {
	return abs(c.Row-other.Row) + abs(c.Col-other.Col)
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type State uint8

const (
	Free State = iota
	Blocked
)

// Neighbor pairs an adjacent cell with the direction that reaches it.
type Neighbor struct {
	Direction Direction
	Cell      Cell
}

// Grid is the board for a single turn. It is never mutated after
// construction; WithBlocked hands back a copy.
type Grid struct {
	height, width int
	cells         []State
}

// New builds an all-free grid.
func New(height, width int) *Grid {
	return &Grid{
		height: height,
		width:  width,
		cells:  make([]State, height*width),
	}
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }

// Size is the total number of cells, free or not.
func (g *Grid) Size() int { return g.height * g.width }

func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.height &&
		c.Col >= 0 && c.Col < g.width
}

// Index maps an in-bounds cell to its row-major offset.
func (g *Grid) Index(c Cell) int {
	return c.Row*g.width + c.Col
}

// IsFree reports false for blocked and out-of-bounds cells alike.
func (g *Grid) IsFree(c Cell) bool {
	return g.InBounds(c) && g.cells[g.Index(c)] == Free
}

// Neighbors yields the cardinal neighbours of c in Directions order. When
// inBoundsOnly is false the out-of-bounds neighbours are kept so the caller
// can run its own IsFree filter.
func (g *Grid) Neighbors(c Cell, inBoundsOnly bool) []Neighbor {
	out := make([]Neighbor, 0, len(Directions))
	for _, dir := range Directions {
		next := c.Move(dir)
		if inBoundsOnly && !g.InBounds(next) {
			continue
		}
		out = append(out, Neighbor{Direction: dir, Cell: next})
	}
	return out
}

// FreeNeighbors counts the free cells adjacent to c.
func (g *Grid) FreeNeighbors(c Cell) int {
	n := 0
	for _, nb := range g.Neighbors(c, true) {
		if g.IsFree(nb.Cell) {
			n++
		}
	}
	return n
}

// WithBlocked returns a copy of g with the given cells blocked. Out-of-bounds
// cells are ignored.
func (g *Grid) WithBlocked(cells ...Cell) *Grid {
	next := &Grid{
		height: g.height,
		width:  g.width,
		cells:  make([]State, len(g.cells)),
	}
	copy(next.cells, g.cells)
	for _, c := range cells {
		if g.InBounds(c) {
			next.cells[g.Index(c)] = Blocked
		}
	}
	return next
}

func (g *Grid) FreeCount() int {
	n := 0
	for _, s := range g.cells {
		if s == Free {
			n++
		}
	}
	return n
}
