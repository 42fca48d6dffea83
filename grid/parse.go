package grid

import "fmt"

const (
	SymbolFree    = " "
	SymbolBlocked = "X"
	// SymbolEmpty is how the game simulator renders a free cell.
	SymbolEmpty = "."
)

// MalformedBoardError is returned when a raw board cannot become a Grid.
// Col is -1 when the problem concerns a whole row.
type MalformedBoardError struct {
	Row    int
	Col    int
	Reason string
}

func (e *MalformedBoardError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("malformed board: %s", e.Reason)
	}
	if e.Col < 0 {
		return fmt.Sprintf("malformed board: row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed board: cell (%d,%d): %s", e.Row, e.Col, e.Reason)
}

// Parse converts the wire board (rows of one-character symbols) into a Grid.
func Parse(rows [][]string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, &MalformedBoardError{Row: -1, Col: -1, Reason: "no rows"}
	}
	width := len(rows[0])
	if width == 0 {
		return nil, &MalformedBoardError{Row: 0, Col: -1, Reason: "empty row"}
	}

	g := New(len(rows), width)
	for r, row := range rows {
		if len(row) != width {
			return nil, &MalformedBoardError{
				Row:    r,
				Col:    -1,
				Reason: fmt.Sprintf("has %d cells, expected %d", len(row), width),
			}
		}
		for c, symbol := range row {
			switch symbol {
			case SymbolFree, SymbolEmpty:
			case SymbolBlocked:
				g.cells[g.Index(Cell{Row: r, Col: c})] = Blocked
			default:
				return nil, &MalformedBoardError{
					Row:    r,
					Col:    c,
					Reason: fmt.Sprintf("unrecognized symbol %q", symbol),
				}
			}
		}
	}
	return g, nil
}

// Rows renders the grid back into wire symbols.
func (g *Grid) Rows() [][]string {
	rows := make([][]string, g.height)
	for r := range rows {
		rows[r] = make([]string, g.width)
		for c := range rows[r] {
			if g.cells[g.Index(Cell{Row: r, Col: c})] == Blocked {
				rows[r][c] = SymbolBlocked
			} else {
				rows[r][c] = SymbolFree
			}
		}
	}
	return rows
}
