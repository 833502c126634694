package push

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/store"
)

type recordingDispatcher struct {
	actions []store.Action
}

func (d *recordingDispatcher) Dispatch(a store.Action) *models.Tournament {
	d.actions = append(d.actions, a)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTranslate_ResultsUseZeroBasedRound(t *testing.T) {
	msg := Message{
		Results: []models.Result{{ID: 1, P1ID: 1, P2ID: 2}},
		Round:   json.RawMessage(`3`),
	}
	actions, err := Translate(5, msg)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("len(actions) = %d, want 1", len(actions))
	}
	u, ok := actions[0].(store.UpdateResult)
	if !ok {
		t.Fatalf("action = %T, want UpdateResult", actions[0])
	}
	if u.Round != 2 || u.TID != 5 {
		t.Fatalf("action = %+v, want round 2 for tournament 5", u)
	}
}

func TestTranslate_MultipleFields(t *testing.T) {
	msg := Message{
		Participant:  &models.Participant{ID: 4, Name: "Dana"},
		Participants: []models.Participant{{ID: 1}, {ID: 4}},
		Round:        json.RawMessage(`{"id":8,"round_no":2,"paired":true}`),
	}
	actions, err := Translate(5, msg)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	kinds := make([]string, 0, len(actions))
	for _, a := range actions {
		kinds = append(kinds, store.Kind(a))
	}
	want := []string{store.KindParticipants, store.KindEditParticipant, store.KindEditRound}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if r := actions[2].(store.EditRound).Round; r.ID != 8 || !r.Paired {
		t.Fatalf("round = %+v, want paired round 8", r)
	}
}

func TestTranslate_MessageTournamentWins(t *testing.T) {
	actions, err := Translate(5, Message{TID: 9, Participant: &models.Participant{ID: 1}})
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if actions[0].TournamentID() != 9 {
		t.Fatalf("tid = %d, want 9", actions[0].TournamentID())
	}
}

func TestTranslate_Errors(t *testing.T) {
	bad := []Message{
		{Results: []models.Result{{ID: 1}}},
		{Results: []models.Result{{ID: 1}}, Round: json.RawMessage(`{"id":1}`)},
		{Round: json.RawMessage(`"x"`)},
	}
	for _, msg := range bad {
		if _, err := Translate(1, msg); !errors.Is(err, ErrInvalidMessage) {
			t.Fatalf("Translate(%+v) err = %v, want ErrInvalidMessage", msg, err)
		}
	}
}

func TestTranslate_EmptyMessage(t *testing.T) {
	actions, err := Translate(1, Message{Round: json.RawMessage(`null`)})
	if err != nil || len(actions) != 0 {
		t.Fatalf("Translate(empty) = %v, %v, want no actions", actions, err)
	}
}

func TestAdapter_Handle(t *testing.T) {
	d := &recordingDispatcher{}
	a := NewAdapter(3, d, discardLogger())

	n, err := a.Handle([]byte(`{"participant":{"id":2,"name":"Bo"},"results":[{"id":1}],"round":1}`))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if n != 2 || len(d.actions) != 2 {
		t.Fatalf("dispatched %d actions, want 2", len(d.actions))
	}
	if u := d.actions[1].(store.UpdateResult); u.Round != 0 {
		t.Fatalf("round = %d, want 0", u.Round)
	}
}

func TestAdapter_HandleStringEncodedFrame(t *testing.T) {
	d := &recordingDispatcher{}
	a := NewAdapter(3, d, discardLogger())

	frame, _ := json.Marshal(`{"participant":{"id":2,"name":"Bo"}}`)
	if _, err := a.Handle(frame); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(d.actions) != 1 {
		t.Fatalf("dispatched %d actions, want 1", len(d.actions))
	}
}

func TestAdapter_HandleIgnoresGreeting(t *testing.T) {
	d := &recordingDispatcher{}
	a := NewAdapter(3, d, discardLogger())

	if n, err := a.Handle([]byte(`"Hello!"`)); err != nil || n != 0 {
		t.Fatalf("Handle(greeting) = %d, %v, want 0, nil", n, err)
	}
	if _, err := a.Handle([]byte(`{"participant":`)); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("Handle(broken) err = %v, want ErrInvalidMessage", err)
	}
	if len(d.actions) != 0 {
		t.Fatalf("dispatched %d actions, want 0", len(d.actions))
	}
}

func TestAdapter_StaleMessageIsDiscardedByStore(t *testing.T) {
	s := store.New(discardLogger())
	s.Dispatch(store.Replace{Value: &models.Tournament{ID: 2}})
	a := NewAdapter(1, s, discardLogger())

	before := s.Snapshot()
	if _, err := a.Handle([]byte(`{"participant":{"id":7,"name":"Late"}}`)); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if s.Snapshot() != before {
		t.Fatalf("message for tournament 1 changed the snapshot of tournament 2")
	}
}
