package models

type Participant struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Seed      int      `json:"seed"`
	Rating    int      `json:"rating"`
	Pos       int      `json:"pos"`
	Played    int      `json:"played"`
	RoundWins float64  `json:"round_wins"`
	GameWins  float64  `json:"game_wins"`
	Spread    int      `json:"spread"`
	Offed     int      `json:"offed"` // 1 = снят с турнира / пропускает раунды
	Members   []Member `json:"members,omitempty"`
}

// IsOffed сообщает, что участник снят и не попадает в жеребьёвку.
func (p Participant) IsOffed() bool {
	return p.Offed != 0
}

// Member: игрок командного состава, закреплённый за доской.
type Member struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Board  int     `json:"board"`
	Wins   float64 `json:"wins"`
	Spread int     `json:"spread"`
}
