package models

// Result is the outcome of one pairing. P1/P2 are filled when the server
// hydrates the row, otherwise only P1ID/P2ID are set.
type Result struct {
	ID         int           `json:"id"`
	P1         *Participant  `json:"p1,omitempty"`
	P2         *Participant  `json:"p2,omitempty"`
	P1ID       int           `json:"p1_id,omitempty"`
	P2ID       int           `json:"p2_id,omitempty"`
	Score1     *int          `json:"score1"`
	Score2     *int          `json:"score2"`
	GamesWon   *float64      `json:"games_won"`
	Table      int           `json:"table,omitempty"`
	StartingID *int          `json:"starting_id,omitempty"`
	Boards     []BoardResult `json:"boards,omitempty"`
}

// IsScored reports whether any score has been entered for the pairing.
func (r Result) IsScored() bool {
	return r.Score1 != nil || r.Score2 != nil
}

// ParticipantIDs returns the ids of both sides. A hydrated summary wins over
// the reference id.
func (r Result) ParticipantIDs() (int, int) {
	p1, p2 := r.P1ID, r.P2ID
	if r.P1 != nil {
		p1 = r.P1.ID
	}
	if r.P2 != nil {
		p2 = r.P2.ID
	}
	return p1, p2
}

// Names returns the display names of both sides, empty when not hydrated.
func (r Result) Names() (string, string) {
	var n1, n2 string
	if r.P1 != nil {
		n1 = r.P1.Name
	}
	if r.P2 != nil {
		n2 = r.P2.Name
	}
	return n1, n2
}

// BoardResult is a single board of a team pairing.
type BoardResult struct {
	Board  int `json:"board"`
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// BoardStanding is one team's record on one board across the event.
type BoardStanding struct {
	Board    int     `json:"board"`
	TeamID   int     `json:"team_id"`
	Name     string  `json:"name"`
	GamesWon float64 `json:"games_won"`
	Margin   int     `json:"margin"`
}
