package models

// EntryMode определяет, как директор вводит результаты раунда.
type EntryMode string

const (
	EntryModeSingles EntryMode = "S" // индивидуальный турнир
	EntryModeTeam    EntryMode = "T" // командный, вводится общий счёт команды
	EntryModeBoards  EntryMode = "P" // командный, результаты вводятся по доскам
)

// IsTeam сообщает, что участники турнира являются командами.
func (m EntryMode) IsTeam() bool {
	return m == EntryModeTeam || m == EntryModeBoards
}

// Tournament is the aggregate the client keeps for the tournament that is
// currently open. Participants hold the display order, Rounds are index
// stable (Rounds[n-1] is round n) and Results is indexed the same way.
type Tournament struct {
	ID         int       `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	StartDate  string    `json:"start_date"`
	EntryMode  EntryMode `json:"entry_mode"`
	TeamSize   int       `json:"team_size"`
	Private    bool      `json:"private"`
	Rated      bool      `json:"rated"`
	NumRounds  int       `json:"num_rounds"`
	IsEditable bool      `json:"is_editable"`

	Participants []Participant `json:"participants"`
	Rounds       []Round       `json:"rounds"`
	// Results is nil until the first round result set arrives. After that it
	// always has NumRounds slots; a nil slot has not been fetched yet.
	Results [][]Result `json:"results,omitempty"`
	// Order is the participant sort key, "-" prefix for descending.
	Order string `json:"order,omitempty"`
}

// Clone returns a shallow copy. Slices are shared; callers that change a
// collection must replace the slice instead of writing into it.
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Round returns the metadata for a one-based round number.
func (t *Tournament) Round(roundNo int) (Round, bool) {
	if t == nil || roundNo < 1 || roundNo > len(t.Rounds) {
		return Round{}, false
	}
	return t.Rounds[RoundIndex(roundNo)], true
}

// AnyPaired reports whether at least one round has been paired.
func (t *Tournament) AnyPaired() bool {
	if t == nil {
		return false
	}
	for _, r := range t.Rounds {
		if r.Paired {
			return true
		}
	}
	return false
}

// TournamentSummary is a row of the tournament list.
type TournamentSummary struct {
	ID        int       `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	EntryMode EntryMode `json:"entry_mode"`
	TeamSize  int       `json:"team_size"`
	NumRounds int       `json:"num_rounds"`
	Private   bool      `json:"private"`
}
