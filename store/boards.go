package store

import "github.com/Dosada05/scrabble-director/models"

// BoardTable is the standings of one board.
type BoardTable struct {
	Board int                    `json:"board"`
	Rows  []models.BoardStanding `json:"rows"`
}

// GroupBoards splits rows into one table per board, boards 1 to the team
// size in order. Rows keep the server's order; boards without rows and rows
// for boards outside the team are left out.
func GroupBoards(t *models.Tournament, rows []models.BoardStanding) []BoardTable {
	tables := []BoardTable{}
	if t == nil {
		return tables
	}
	for b := 1; b <= t.TeamSize; b++ {
		var table []models.BoardStanding
		for _, r := range rows {
			if r.Board == b {
				table = append(table, r)
			}
		}
		if len(table) > 0 {
			tables = append(tables, BoardTable{Board: b, Rows: table})
		}
	}
	return tables
}
