package store

import (
	"github.com/Dosada05/scrabble-director/models"
)

// Action is a single mutation of the tournament snapshot. The set of actions
// is closed: only types in this package implement it.
type Action interface {
	// TournamentID is the tournament the action was produced for.
	TournamentID() int
	kind() string
}

// Replace discards the current snapshot and installs Value.
type Replace struct {
	Value *models.Tournament
}

// Reset behaves exactly like Replace.
type Reset struct {
	Value *models.Tournament
}

// SetParticipants replaces the whole roster.
type SetParticipants struct {
	TID          int
	Participants []models.Participant
}

type AddParticipant struct {
	TID         int
	Participant models.Participant
}

// EditParticipant replaces the participant with the same id, or appends it
// when the roster does not know it yet.
type EditParticipant struct {
	TID         int
	Participant models.Participant
}

type DeleteParticipant struct {
	TID         int
	Participant models.Participant
}

// UpdateResult writes the whole result set of one round. Round is zero-based.
type UpdateResult struct {
	TID    int
	Round  int
	Result []models.Result
}

type EditRound struct {
	TID   int
	Round models.Round
}

// Sort changes the participant order. Field may carry a "-" prefix.
type Sort struct {
	TID   int
	Field string
}

const (
	KindReplace           = "replace"
	KindReset             = "reset"
	KindParticipants      = "participants"
	KindAddParticipant    = "addParticipant"
	KindEditParticipant   = "editParticipant"
	KindDeleteParticipant = "deleteParticipant"
	KindUpdateResult      = "updateResult"
	KindEditRound         = "editRound"
	KindSort              = "sort"
)

func (a Replace) TournamentID() int {
	if a.Value == nil {
		return 0
	}
	return a.Value.ID
}

func (a Reset) TournamentID() int {
	if a.Value == nil {
		return 0
	}
	return a.Value.ID
}

func (a SetParticipants) TournamentID() int   { return a.TID }
func (a AddParticipant) TournamentID() int    { return a.TID }
func (a EditParticipant) TournamentID() int   { return a.TID }
func (a DeleteParticipant) TournamentID() int { return a.TID }
func (a UpdateResult) TournamentID() int      { return a.TID }
func (a EditRound) TournamentID() int         { return a.TID }
func (a Sort) TournamentID() int              { return a.TID }

func (Replace) kind() string           { return KindReplace }
func (Reset) kind() string             { return KindReset }
func (SetParticipants) kind() string   { return KindParticipants }
func (AddParticipant) kind() string    { return KindAddParticipant }
func (EditParticipant) kind() string   { return KindEditParticipant }
func (DeleteParticipant) kind() string { return KindDeleteParticipant }
func (UpdateResult) kind() string      { return KindUpdateResult }
func (EditRound) kind() string         { return KindEditRound }
func (Sort) kind() string              { return KindSort }

// Kind returns the wire tag of an action.
func Kind(a Action) string {
	if a == nil {
		return ""
	}
	return a.kind()
}
