package services

import (
	"context"
	"errors"
	"testing"
)

func resultFixture(t *testing.T) (*fixture, ResultService) {
	t.Helper()
	f := newFixture()
	ctx := context.Background()
	if _, err := f.session.Load(ctx, "open"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := f.session.LoadRound(ctx, 1, 1); err != nil {
		t.Fatalf("LoadRound: %v", err)
	}
	return f, NewResultService(f.results, f.session, f.store, discardLogger())
}

func TestResultService_Score(t *testing.T) {
	f, svc := resultFixture(t)

	view, err := svc.Score(context.Background(), 1, ScoreInput{ResultID: 100, Score1: 410, Score2: 388})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(f.results.scored) != 1 {
		t.Fatalf("scored %d times, want 1", len(f.results.scored))
	}
	in := f.results.scored[0]
	if in.Round != 10 || in.P1 != 1 || in.P2 != 2 || in.Result != 100 {
		t.Fatalf("submitted = %+v, want round 10 result 100 between 1 and 2", in)
	}
	if !view.Results[0].IsScored() {
		t.Fatalf("row 100 not scored after refresh: %+v", view.Results[0])
	}
}

func TestResultService_ScoreValidation(t *testing.T) {
	_, svc := resultFixture(t)
	ctx := context.Background()

	if _, err := svc.Score(ctx, 1, ScoreInput{ResultID: 100, Score1: -1}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("negative score err = %v, want ErrValidationFailed", err)
	}
	if _, err := svc.Score(ctx, 1, ScoreInput{ResultID: 555}); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("unknown row err = %v, want ErrResultNotFound", err)
	}
	if _, err := svc.Score(ctx, 2, ScoreInput{ResultID: 100}); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("unfetched round err = %v, want ErrResultNotFound", err)
	}
	if _, err := svc.Score(ctx, 7, ScoreInput{ResultID: 100}); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("missing round err = %v, want ErrRoundNotFound", err)
	}
}

func TestResultService_Unpair(t *testing.T) {
	f, svc := resultFixture(t)

	view, err := svc.Unpair(context.Background(), 1, 101)
	if err != nil {
		t.Fatalf("Unpair: %v", err)
	}
	if len(f.results.deleted) != 1 || f.results.deleted[0] != 101 {
		t.Fatalf("deleted = %v, want [101]", f.results.deleted)
	}
	if len(view.Results) != 1 || view.Results[0].ID != 100 {
		t.Fatalf("rows = %+v, want only 100 left", view.Results)
	}
}
