package push

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/scrabble-director/metrics"
	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/store"
)

var ErrInvalidMessage = errors.New("invalid push message")

// Message is the envelope delivered on the live channel. Every field is
// optional. Round is either a one-based round number that goes with Results,
// or a round object.
type Message struct {
	TID          int                  `json:"tid,omitempty"`
	Participant  *models.Participant  `json:"participant,omitempty"`
	Participants []models.Participant `json:"participants,omitempty"`
	Results      []models.Result      `json:"results,omitempty"`
	Round        json.RawMessage      `json:"round,omitempty"`
}

// Translate maps one message onto store actions for tournament tid. A
// message that names its own tournament keeps it. Actions come out in the
// order they must be applied: roster, participant, round results, round.
func Translate(tid int, msg Message) ([]store.Action, error) {
	if msg.TID != 0 {
		tid = msg.TID
	}

	var roundNo *int
	var round *models.Round
	if raw := bytes.TrimSpace(msg.Round); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if raw[0] == '{' {
			round = &models.Round{}
			if err := json.Unmarshal(raw, round); err != nil {
				return nil, fmt.Errorf("%w: round: %w", ErrInvalidMessage, err)
			}
		} else {
			n := 0
			if err := json.Unmarshal(raw, &n); err != nil {
				return nil, fmt.Errorf("%w: round: %w", ErrInvalidMessage, err)
			}
			roundNo = &n
		}
	}
	if msg.Results != nil && roundNo == nil {
		return nil, fmt.Errorf("%w: results without a round number", ErrInvalidMessage)
	}

	var actions []store.Action
	if msg.Participants != nil {
		actions = append(actions, store.SetParticipants{TID: tid, Participants: msg.Participants})
	}
	if msg.Participant != nil {
		actions = append(actions, store.EditParticipant{TID: tid, Participant: *msg.Participant})
	}
	if msg.Results != nil {
		actions = append(actions, store.UpdateResult{TID: tid, Round: models.RoundIndex(*roundNo), Result: msg.Results})
	}
	if round != nil {
		actions = append(actions, store.EditRound{TID: tid, Round: *round})
	}
	return actions, nil
}

// Adapter feeds push frames for one tournament into a dispatcher.
type Adapter struct {
	tid        int
	dispatcher store.Dispatcher
	logger     *slog.Logger
}

func NewAdapter(tid int, dispatcher store.Dispatcher, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{tid: tid, dispatcher: dispatcher, logger: logger}
}

// Handle decodes one frame and dispatches its actions right away. It returns
// the number of actions dispatched.
func (a *Adapter) Handle(data []byte) (int, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		// The channel relays text frames JSON-encoded as strings.
		var inner string
		if err := json.Unmarshal(data, &inner); err == nil {
			data = bytes.TrimSpace([]byte(inner))
		}
	}
	if len(data) == 0 || data[0] != '{' {
		// Greetings and other non-envelope frames.
		metrics.PushMessages.WithLabelValues("ignored").Inc()
		return 0, nil
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		metrics.PushMessages.WithLabelValues("invalid").Inc()
		return 0, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	actions, err := Translate(a.tid, msg)
	if err != nil {
		metrics.PushMessages.WithLabelValues("invalid").Inc()
		return 0, err
	}

	for _, act := range actions {
		a.dispatcher.Dispatch(act)
	}
	metrics.PushMessages.WithLabelValues("applied").Inc()
	a.logger.Debug("push message applied",
		slog.Int("tournament_id", a.tid),
		slog.Int("actions", len(actions)),
	)
	return len(actions), nil
}
