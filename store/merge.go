package store

import (
	"slices"

	"github.com/Dosada05/scrabble-director/models"
)

// UpsertParticipant replaces the participant with p.ID or appends p.
// Applying the same participant twice gives the same roster.
func UpsertParticipant(list []models.Participant, p models.Participant) []models.Participant {
	i := slices.IndexFunc(list, func(x models.Participant) bool { return x.ID == p.ID })
	if i < 0 {
		out := make([]models.Participant, 0, len(list)+1)
		out = append(out, list...)
		return append(out, p)
	}
	out := slices.Clone(list)
	out[i] = p
	return out
}

// RemoveParticipant drops every participant with the given id.
func RemoveParticipant(list []models.Participant, id int) []models.Participant {
	if list == nil {
		return nil
	}
	out := make([]models.Participant, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// ReplaceRound swaps the round with r.ID for r. The second return value is
// false when no round matched, in which case rounds is returned as is.
func ReplaceRound(rounds []models.Round, r models.Round) ([]models.Round, bool) {
	i := slices.IndexFunc(rounds, func(x models.Round) bool { return x.ID == r.ID })
	if i < 0 {
		return rounds, false
	}
	out := slices.Clone(rounds)
	out[i] = r
	return out, true
}

// WriteRoundResults stores rows as the complete result set of round index.
// A nil results is first initialized with numRounds empty slots. The slot is
// replaced as a whole; existing rows are never patched.
func WriteRoundResults(results [][]models.Result, numRounds, index int, rows []models.Result) [][]models.Result {
	var out [][]models.Result
	if results == nil {
		out = make([][]models.Result, numRounds)
	} else {
		out = slices.Clone(results)
		if len(out) < numRounds {
			out = append(out, make([][]models.Result, numRounds-len(out))...)
		}
	}
	if rows == nil {
		rows = []models.Result{}
	}
	out[index] = slices.Clone(rows)
	return out
}

// ResultParticipants returns the distinct participant ids referenced by rows
// in first-seen order, together with the hydrated summaries among them.
func ResultParticipants(rows []models.Result) ([]int, []models.Participant) {
	seen := make(map[int]bool)
	var ids []int
	var hydrated []models.Participant

	add := func(id int, p *models.Participant) {
		if id == 0 || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
		if p != nil {
			hydrated = append(hydrated, *p)
		}
	}
	for _, r := range rows {
		p1, p2 := r.ParticipantIDs()
		add(p1, r.P1)
		add(p2, r.P2)
	}
	return ids, hydrated
}
