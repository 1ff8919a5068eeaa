package models

// Sheet is a named 2-D grid of typed cells.
type Sheet struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows holds cell rows in source order. Row i is spreadsheet row i+1.
	Rows [][]Cell `json:"rows,omitempty"`
}

// Cell returns the cell at 0-based row and column, or an empty cell when the
// position lies outside the stored grid.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) {
		return Cell{}
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}
