package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/repositories"
	"github.com/Dosada05/scrabble-director/store"
)

// StateStore is the part of the store services work against.
type StateStore interface {
	store.Dispatcher
	store.Applier
	store.Snapshotter
}

type SessionService interface {
	// Load fetches a tournament with its roster and rounds and installs it as
	// the current snapshot.
	Load(ctx context.Context, slug string) (*models.Tournament, error)
	// LoadRound fetches the results of a one-based round of tournament tid
	// into the snapshot. It fails with ErrSessionChanged once another
	// tournament is current.
	LoadRound(ctx context.Context, tid, roundNo int) (store.RoundSnapshot, error)
	// RefreshRounds reloads round metadata of tournament tid and applies every
	// round that changed.
	RefreshRounds(ctx context.Context, tid int) error
	Sort(field string) (*models.Tournament, error)
	Current() (*models.Tournament, error)
}

type sessionService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	roundRepo       repositories.RoundRepository
	resultRepo      repositories.ResultRepository
	state           StateStore
	logger          *slog.Logger
}

func NewSessionService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	roundRepo repositories.RoundRepository,
	resultRepo repositories.ResultRepository,
	state StateStore,
	logger *slog.Logger,
) SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		roundRepo:       roundRepo,
		resultRepo:      resultRepo,
		state:           state,
		logger:          logger,
	}
}

func (s *sessionService) Current() (*models.Tournament, error) {
	t := s.state.Snapshot()
	if t == nil {
		return nil, ErrNoTournament
	}
	return t, nil
}

func (s *sessionService) Load(ctx context.Context, slug string) (*models.Tournament, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrValidationFailed)
	}

	t, err := s.tournamentRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, handleRepositoryError(err, ErrTournamentNotFound, "load tournament %q", slug)
	}

	var participants []models.Participant
	var rounds []models.Round
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, err = s.participantRepo.List(gctx, t.ID)
		return handleRepositoryError(err, ErrTournamentNotFound, "load participants of tournament %d", t.ID)
	})
	g.Go(func() error {
		var err error
		rounds, err = s.roundRepo.List(gctx, t.ID)
		return handleRepositoryError(err, ErrTournamentNotFound, "load rounds of tournament %d", t.ID)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if participants == nil {
		participants = []models.Participant{}
	}
	t.Rounds = rounds
	t.Results = nil
	if t.Order == "" {
		t.Order = store.DefaultOrder
	}
	t.Participants = store.SortParticipants(t, participants)

	next := s.state.Dispatch(store.Replace{Value: t})
	s.logger.Info("tournament loaded",
		slog.Int("tournament_id", t.ID),
		slog.String("slug", t.Slug),
		slog.Int("participants", len(t.Participants)),
		slog.Int("rounds", len(t.Rounds)),
	)
	return next, nil
}

// currentFor возвращает снимок, только если он всё ещё принадлежит турниру tid.
func (s *sessionService) currentFor(tid int) (*models.Tournament, error) {
	t, err := s.Current()
	if err != nil {
		return nil, err
	}
	if t.ID != tid {
		return nil, fmt.Errorf("tournament %d: %w", tid, ErrSessionChanged)
	}
	return t, nil
}

func (s *sessionService) LoadRound(ctx context.Context, tid, roundNo int) (store.RoundSnapshot, error) {
	t, err := s.currentFor(tid)
	if err != nil {
		return store.RoundSnapshot{}, err
	}
	round, ok := t.Round(roundNo)
	if !ok {
		return store.RoundSnapshot{}, fmt.Errorf("round %d: %w", roundNo, ErrRoundNotFound)
	}

	rows, err := s.resultRepo.ListByRound(ctx, t.ID, round.ID)
	if err != nil {
		return store.RoundSnapshot{}, handleRepositoryError(err, ErrRoundNotFound, "load results of round %d", roundNo)
	}

	next := s.state.Dispatch(store.UpdateResult{TID: tid, Round: models.RoundIndex(roundNo), Result: rows})
	if next == nil || next.ID != tid {
		return store.RoundSnapshot{}, fmt.Errorf("tournament %d: %w", tid, ErrSessionChanged)
	}
	view, err := store.RoundView(next, roundNo)
	if err != nil {
		return store.RoundSnapshot{}, fmt.Errorf("round %d: %w", roundNo, ErrRoundNotFound)
	}
	return view, nil
}

func (s *sessionService) RefreshRounds(ctx context.Context, tid int) error {
	if _, err := s.currentFor(tid); err != nil {
		return err
	}
	rounds, err := s.roundRepo.List(ctx, tid)
	if err != nil {
		return handleRepositoryError(err, ErrTournamentNotFound, "refresh rounds of tournament %d", tid)
	}
	if _, err := s.currentFor(tid); err != nil {
		return err
	}
	for _, r := range rounds {
		s.state.Dispatch(store.EditRound{TID: tid, Round: r})
	}
	return nil
}

func (s *sessionService) Sort(field string) (*models.Tournament, error) {
	t, err := s.Current()
	if err != nil {
		return nil, err
	}
	name, _ := store.ParseOrder(field)
	if !store.IsSortable(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}
	return s.state.Dispatch(store.Sort{TID: t.ID, Field: field}), nil
}
