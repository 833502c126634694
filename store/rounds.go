package store

import (
	"errors"

	"github.com/Dosada05/scrabble-director/models"
)

var ErrRoundNotFound = errors.New("round not found")

// RoundSnapshot is everything a round page needs from the snapshot.
type RoundSnapshot struct {
	Round   models.Round    `json:"round"`
	Results []models.Result `json:"results"`
	// Fetched is false when the round's results have not been loaded yet.
	Fetched bool     `json:"fetched"`
	Pending []string `json:"pending"`
}

// RoundView derives the view of a one-based round from t.
func RoundView(t *models.Tournament, roundNo int) (RoundSnapshot, error) {
	round, ok := t.Round(roundNo)
	if !ok {
		return RoundSnapshot{}, ErrRoundNotFound
	}
	rows, fetched := RoundResults(t, roundNo)
	return RoundSnapshot{
		Round:   round,
		Results: rows,
		Fetched: fetched,
		Pending: PendingNames(t, rows),
	}, nil
}

// RoundResults returns the rows stored for a one-based round and whether the
// slot has been fetched.
func RoundResults(t *models.Tournament, roundNo int) ([]models.Result, bool) {
	if t == nil || roundNo < 1 || roundNo > len(t.Results) {
		return nil, false
	}
	rows := t.Results[models.RoundIndex(roundNo)]
	return rows, rows != nil
}

// PendingNames lists the names still expecting a score. With board tracking
// every pairing stays open because team totals build up board by board.
func PendingNames(t *models.Tournament, rows []models.Result) []string {
	boards := t != nil && t.EntryMode == models.EntryModeBoards
	names := make([]string, 0, len(rows)*2)
	for _, r := range rows {
		if !boards && r.IsScored() {
			continue
		}
		n1, n2 := r.Names()
		// Бай и не гидрированные стороны имён не несут.
		for _, n := range []string{n1, n2} {
			if n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}

// ParticipantResult is one row of a participant's history.
type ParticipantResult struct {
	RoundNo int           `json:"round_no"`
	Result  models.Result `json:"result"`
}

// ParticipantResults collects the fetched rows in which participantID played,
// in round order.
func ParticipantResults(t *models.Tournament, participantID int) []ParticipantResult {
	var out []ParticipantResult
	if t == nil {
		return out
	}
	for i, rows := range t.Results {
		for _, r := range rows {
			p1, p2 := r.ParticipantIDs()
			if p1 == participantID || p2 == participantID {
				out = append(out, ParticipantResult{RoundNo: models.RoundNumber(i), Result: r})
			}
		}
	}
	return out
}
