package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/scrabble-director/models"
)

var ErrInvalidAction = errors.New("invalid action")

type wireAction struct {
	Type         string               `json:"type"`
	TID          int                  `json:"tid"`
	Value        *models.Tournament   `json:"value"`
	Participants []models.Participant `json:"participants"`
	Participant  *models.Participant  `json:"participant"`
	Round        json.RawMessage      `json:"round"`
	Result       []models.Result      `json:"result"`
	Field        string               `json:"field"`
}

// DecodeAction parses the JSON form of an action, {"type": ..., "tid": ...}
// plus the fields of that action. Unknown tags yield ErrUnknownAction so
// that a boundary can reject them before they reach the reducer.
func DecodeAction(data []byte) (Action, error) {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}

	switch w.Type {
	case KindReplace:
		return Replace{Value: w.Value}, nil
	case KindReset:
		return Reset{Value: w.Value}, nil
	case KindParticipants:
		return SetParticipants{TID: w.TID, Participants: w.Participants}, nil
	case KindAddParticipant, KindEditParticipant, KindDeleteParticipant:
		if w.Participant == nil {
			return nil, fmt.Errorf("%w: %s requires participant", ErrInvalidAction, w.Type)
		}
		switch w.Type {
		case KindAddParticipant:
			return AddParticipant{TID: w.TID, Participant: *w.Participant}, nil
		case KindEditParticipant:
			return EditParticipant{TID: w.TID, Participant: *w.Participant}, nil
		default:
			return DeleteParticipant{TID: w.TID, Participant: *w.Participant}, nil
		}
	case KindUpdateResult:
		var round int
		if err := json.Unmarshal(w.Round, &round); err != nil {
			return nil, fmt.Errorf("%w: updateResult requires a round index: %w", ErrInvalidAction, err)
		}
		return UpdateResult{TID: w.TID, Round: round, Result: w.Result}, nil
	case KindEditRound:
		var round models.Round
		if err := json.Unmarshal(w.Round, &round); err != nil {
			return nil, fmt.Errorf("%w: editRound requires a round object: %w", ErrInvalidAction, err)
		}
		return EditRound{TID: w.TID, Round: round}, nil
	case KindSort:
		return Sort{TID: w.TID, Field: w.Field}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, w.Type)
	}
}
