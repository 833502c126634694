package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/repositories"
	"github.com/Dosada05/scrabble-director/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
}

func (r *fakeTournamentRepo) List(ctx context.Context) ([]models.TournamentSummary, error) {
	var out []models.TournamentSummary
	for _, t := range r.tournaments {
		out = append(out, models.TournamentSummary{ID: t.ID, Slug: t.Slug, Name: t.Name})
	}
	return out, nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	for _, t := range r.tournaments {
		if t.ID == id {
			c := *t
			return &c, nil
		}
	}
	return nil, &repositories.APIError{Status: 404}
}

func (r *fakeTournamentRepo) GetBySlug(ctx context.Context, slug string) (*models.Tournament, error) {
	t, ok := r.tournaments[slug]
	if !ok {
		return nil, &repositories.APIError{Status: 404}
	}
	c := *t
	return &c, nil
}

type fakeParticipantRepo struct {
	mu     sync.Mutex
	byTID  map[int][]models.Participant
	nextID int
}

func (r *fakeParticipantRepo) List(ctx context.Context, tid int) ([]models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Participant(nil), r.byTID[tid]...), nil
}

func (r *fakeParticipantRepo) Get(ctx context.Context, tid, id int) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byTID[tid] {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &repositories.APIError{Status: 404}
}

func (r *fakeParticipantRepo) Create(ctx context.Context, tid int, p *models.Participant) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := *p
	created.ID = r.nextID
	created.Pos = len(r.byTID[tid]) + 1
	r.byTID[tid] = append(r.byTID[tid], created)
	return &created, nil
}

func (r *fakeParticipantRepo) Update(ctx context.Context, tid int, p *models.Participant) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, old := range r.byTID[tid] {
		if old.ID == p.ID {
			r.byTID[tid][i] = *p
			updated := *p
			return &updated, nil
		}
	}
	return nil, &repositories.APIError{Status: 404}
}

func (r *fakeParticipantRepo) Delete(ctx context.Context, tid, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byTID[tid]
	for i, p := range list {
		if p.ID == id {
			r.byTID[tid] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return &repositories.APIError{Status: 404}
}

type fakeRoundRepo struct {
	mu     sync.Mutex
	byTID  map[int][]models.Round
	called int
}

func (r *fakeRoundRepo) List(ctx context.Context, tid int) ([]models.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.called++
	return append([]models.Round(nil), r.byTID[tid]...), nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	byRound map[int][]models.Result
	scored  []repositories.ScoreInput
	deleted []int
}

func (r *fakeResultRepo) ListByRound(ctx context.Context, tid, roundID int) ([]models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := append([]models.Result{}, r.byRound[roundID]...)
	return rows, nil
}

func (r *fakeResultRepo) Score(ctx context.Context, tid int, in repositories.ScoreInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scored = append(r.scored, in)
	rows := r.byRound[in.Round]
	for i := range rows {
		if rows[i].ID == in.Result {
			s1, s2 := in.Score1, in.Score2
			rows[i].Score1, rows[i].Score2 = &s1, &s2
		}
	}
	return nil
}

func (r *fakeResultRepo) Delete(ctx context.Context, tid, roundID, resultID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, resultID)
	rows := r.byRound[roundID]
	for i := range rows {
		if rows[i].ID == resultID {
			r.byRound[roundID] = append(rows[:i:i], rows[i+1:]...)
			break
		}
	}
	return nil
}

type fakePairingRepo struct {
	status repositories.PairingStatus
	onRun  func()
	ops    []repositories.PairingOp
}

func (r *fakePairingRepo) Run(ctx context.Context, tid, roundNo int, op repositories.PairingOp) (repositories.PairingStatus, error) {
	r.ops = append(r.ops, op)
	if r.onRun != nil {
		r.onRun()
	}
	return r.status, nil
}

type fakeBoardRepo struct {
	byTID  map[int][]models.BoardStanding
	onList func()
}

func (r *fakeBoardRepo) List(ctx context.Context, tid int) ([]models.BoardStanding, error) {
	if r.onList != nil {
		r.onList()
	}
	rows, ok := r.byTID[tid]
	if !ok {
		return nil, &repositories.APIError{Status: 404}
	}
	return append([]models.BoardStanding(nil), rows...), nil
}

type fixture struct {
	store        *store.Store
	tournaments  *fakeTournamentRepo
	participants *fakeParticipantRepo
	rounds       *fakeRoundRepo
	results      *fakeResultRepo
	pairing      *fakePairingRepo
	session      SessionService
}

// newFixture serves tournament 1 "open" with two rounds, three players and
// round 1 paired, and tournament 2 "other" with one paired round.
func newFixture() *fixture {
	f := &fixture{
		store: store.New(discardLogger()),
		tournaments: &fakeTournamentRepo{tournaments: map[string]*models.Tournament{
			"open":  {ID: 1, Slug: "open", Name: "Open", NumRounds: 2, EntryMode: models.EntryModeSingles},
			"other": {ID: 2, Slug: "other", Name: "Other", NumRounds: 1},
		}},
		participants: &fakeParticipantRepo{nextID: 3, byTID: map[int][]models.Participant{
			1: {{ID: 1, Name: "Cy", Pos: 3}, {ID: 2, Name: "Ann", Pos: 1}, {ID: 3, Name: "Ben", Pos: 2}},
		}},
		rounds: &fakeRoundRepo{byTID: map[int][]models.Round{
			1: {{ID: 10, RoundNo: 1, Paired: true}, {ID: 11, RoundNo: 2}},
			2: {{ID: 20, RoundNo: 1, Paired: true}},
		}},
		results: &fakeResultRepo{byRound: map[int][]models.Result{
			10: {{ID: 100, P1ID: 1, P2ID: 2}, {ID: 101, P1ID: 3, P2ID: 0}},
			20: {{ID: 200, P1ID: 7, P2ID: 8}},
		}},
		pairing: &fakePairingRepo{status: repositories.PairingStatus{Status: "ok"}},
	}
	f.session = NewSessionService(f.tournaments, f.participants, f.rounds, f.results, f.store, discardLogger())
	return f
}
