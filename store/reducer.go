package store

import (
	"errors"
	"fmt"

	"github.com/Dosada05/scrabble-director/models"
)

// ErrUnknownAction is raised for an action type the reducer does not handle.
var ErrUnknownAction = errors.New("unknown action")

// Reduce applies a to state and returns the next snapshot. state is never
// modified. Every action other than Replace and Reset is ignored, and state
// returned as is, when there is no snapshot or the action was produced for a
// different tournament.
func Reduce(state *models.Tournament, a Action) *models.Tournament {
	switch act := a.(type) {
	case Replace:
		return act.Value.Clone()
	case Reset:
		return act.Value.Clone()
	}

	if a == nil {
		panic(fmt.Errorf("%w: <nil>", ErrUnknownAction))
	}
	if state == nil || a.TournamentID() != state.ID {
		if !isKnown(a) {
			panic(fmt.Errorf("%w: %T", ErrUnknownAction, a))
		}
		return state
	}

	next := state.Clone()
	switch act := a.(type) {
	case SetParticipants:
		next.Participants = SortParticipants(next, nonNil(act.Participants))

	case AddParticipant:
		if state.Participants == nil {
			next.Participants = []models.Participant{act.Participant}
			return next
		}
		next.Participants = SortParticipants(next, UpsertParticipant(state.Participants, act.Participant))

	case EditParticipant:
		if state.Participants == nil {
			next.Participants = []models.Participant{act.Participant}
			return next
		}
		next.Participants = SortParticipants(next, UpsertParticipant(state.Participants, act.Participant))

	case DeleteParticipant:
		if state.Participants == nil {
			return state
		}
		next.Participants = RemoveParticipant(state.Participants, act.Participant.ID)

	case UpdateResult:
		if act.Round < 0 || act.Round >= roundSlots(state) {
			return state
		}
		next.Results = WriteRoundResults(state.Results, state.NumRounds, act.Round, act.Result)
		// Rows carry fresh standings for both sides; fold them into the roster.
		_, hydrated := ResultParticipants(act.Result)
		roster := state.Participants
		for _, p := range hydrated {
			roster = UpsertParticipant(roster, p)
		}
		if roster != nil {
			next.Participants = SortParticipants(next, roster)
		}

	case EditRound:
		rounds, ok := ReplaceRound(state.Rounds, act.Round)
		if !ok {
			return state
		}
		next.Rounds = rounds

	case Sort:
		next.Order = act.Field
		next.Participants = SortParticipants(next, state.Participants)

	default:
		panic(fmt.Errorf("%w: %T", ErrUnknownAction, a))
	}
	return next
}

func isKnown(a Action) bool {
	switch a.(type) {
	case SetParticipants, AddParticipant, EditParticipant, DeleteParticipant,
		UpdateResult, EditRound, Sort:
		return true
	}
	return false
}

// roundSlots is the number of result slots the snapshot can hold.
func roundSlots(t *models.Tournament) int {
	return max(t.NumRounds, len(t.Results))
}

func nonNil(p []models.Participant) []models.Participant {
	if p == nil {
		return []models.Participant{}
	}
	return p
}
