package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/repositories"
)

func TestPairingService_PairRefreshesRound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.session.Load(ctx, "open"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	f.pairing.onRun = func() {
		f.rounds.byTID[1] = []models.Round{{ID: 10, RoundNo: 1, Paired: true}, {ID: 11, RoundNo: 2, Paired: true}}
		f.results.byRound[11] = []models.Result{{ID: 200, P1ID: 2, P2ID: 3}}
	}
	svc := NewPairingService(f.pairing, f.session, discardLogger())

	view, err := svc.Pair(ctx, 2)
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if !view.Round.Paired || len(view.Results) != 1 {
		t.Fatalf("view = %+v, want paired round 2 with one row", view)
	}
	if f.pairing.ops[0] != repositories.OpPair {
		t.Fatalf("ops = %v, want pair", f.pairing.ops)
	}
}

func TestPairingService_RefusalIsBusinessError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.session.Load(ctx, "open"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	f.pairing.status = repositories.PairingStatus{Status: "error", Message: "already pairedd"}
	svc := NewPairingService(f.pairing, f.session, discardLogger())
	calls := f.rounds.called

	_, err := svc.Truncate(ctx, 1)
	var be *BusinessError
	if !errors.As(err, &be) {
		t.Fatalf("Truncate err = %v, want *BusinessError", err)
	}
	if be.Message != "already pairedd" || be.Op != "truncate" {
		t.Fatalf("business error = %+v, want server message verbatim", be)
	}
	if f.rounds.called != calls {
		t.Fatalf("rounds refetched after a refused operation")
	}
}

func TestPairingService_UnknownRound(t *testing.T) {
	f := newFixture()
	if _, err := f.session.Load(context.Background(), "open"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	svc := NewPairingService(f.pairing, f.session, discardLogger())

	if _, err := svc.RandomFill(context.Background(), 5); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("RandomFill(5) err = %v, want ErrRoundNotFound", err)
	}
	if len(f.pairing.ops) != 0 {
		t.Fatalf("server called for an unknown round")
	}
}

func TestPairingService_LateResponseAfterSwitch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.session.Load(ctx, "open"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	f.pairing.onRun = func() {
		if _, err := f.session.Load(ctx, "other"); err != nil {
			t.Errorf("Load(other): %v", err)
		}
	}
	svc := NewPairingService(f.pairing, f.session, discardLogger())

	view, err := svc.Pair(ctx, 1)
	if !errors.Is(err, ErrSessionChanged) {
		t.Fatalf("Pair err = %v (round %d), want ErrSessionChanged", err, view.Round.ID)
	}
	snap := f.store.Snapshot()
	if snap.ID != 2 || snap.Results != nil {
		t.Fatalf("snapshot = %+v, want tournament 2 without fetched results", snap)
	}
}
