package store

import (
	"reflect"
	"testing"

	"github.com/Dosada05/scrabble-director/models"
)

func TestUpsertParticipant(t *testing.T) {
	list := []models.Participant{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	replaced := UpsertParticipant(list, models.Participant{ID: 2, Name: "B2"})
	if len(replaced) != 2 || replaced[1].Name != "B2" {
		t.Fatalf("replace = %+v, want B2 in place", replaced)
	}
	if list[1].Name != "B" {
		t.Fatalf("input was modified: %+v", list)
	}

	appended := UpsertParticipant(list, models.Participant{ID: 3, Name: "C"})
	if len(appended) != 3 || appended[2].ID != 3 {
		t.Fatalf("append = %+v, want C appended", appended)
	}

	fromNil := UpsertParticipant(nil, models.Participant{ID: 1})
	if len(fromNil) != 1 {
		t.Fatalf("upsert into nil = %+v, want one participant", fromNil)
	}
}

func TestRemoveParticipant(t *testing.T) {
	list := []models.Participant{{ID: 1}, {ID: 2}, {ID: 3}}
	got := RemoveParticipant(list, 2)
	if !reflect.DeepEqual(got, []models.Participant{{ID: 1}, {ID: 3}}) {
		t.Fatalf("remove = %+v", got)
	}
	if RemoveParticipant(nil, 1) != nil {
		t.Fatalf("remove from nil roster should stay nil")
	}
}

func TestReplaceRound(t *testing.T) {
	rounds := []models.Round{{ID: 1, RoundNo: 1}, {ID: 2, RoundNo: 2}}

	got, ok := ReplaceRound(rounds, models.Round{ID: 2, RoundNo: 2, Paired: true})
	if !ok || !got[1].Paired {
		t.Fatalf("replace = %+v, %v, want round 2 paired", got, ok)
	}
	if rounds[1].Paired {
		t.Fatalf("input was modified")
	}

	if _, ok := ReplaceRound(rounds, models.Round{ID: 9}); ok {
		t.Fatalf("replace of unknown round reported a match")
	}
}

func TestWriteRoundResults(t *testing.T) {
	rows := []models.Result{{ID: 1}}
	got := WriteRoundResults(nil, 4, 2, rows)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if !reflect.DeepEqual(got[2], rows) {
		t.Fatalf("slot 2 = %+v, want %+v", got[2], rows)
	}

	empty := WriteRoundResults(got, 4, 2, nil)
	if empty[2] == nil || len(empty[2]) != 0 {
		t.Fatalf("nil rows should store an empty, fetched slot: %+v", empty[2])
	}
	if len(got[2]) != 1 {
		t.Fatalf("previous results were modified")
	}
}

func TestResultParticipants(t *testing.T) {
	rows := []models.Result{
		{P1: &models.Participant{ID: 1, Name: "A"}, P2: &models.Participant{ID: 2, Name: "B"}},
		{P1ID: 3, P2ID: 1},
	}
	ids, hydrated := ResultParticipants(rows)
	if !reflect.DeepEqual(ids, []int{1, 2, 3}) {
		t.Fatalf("ids = %v, want [1 2 3]", ids)
	}
	if len(hydrated) != 2 || hydrated[0].Name != "A" || hydrated[1].Name != "B" {
		t.Fatalf("hydrated = %+v", hydrated)
	}
}
