package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/repositories"
	"github.com/Dosada05/scrabble-director/store"
)

// ScoreInput is a score entry for one pairing row of a round.
type ScoreInput struct {
	ResultID int      `json:"result_id"`
	Score1   int      `json:"score1"`
	Score2   int      `json:"score2"`
	GamesWon *float64 `json:"games_won,omitempty"`
	Board    *int     `json:"board,omitempty"`
}

type ResultService interface {
	Score(ctx context.Context, roundNo int, input ScoreInput) (store.RoundSnapshot, error)
	Unpair(ctx context.Context, roundNo, resultID int) (store.RoundSnapshot, error)
}

type resultService struct {
	repo    repositories.ResultRepository
	session SessionService
	state   StateStore
	logger  *slog.Logger
}

func NewResultService(repo repositories.ResultRepository, session SessionService, state StateStore, logger *slog.Logger) ResultService {
	if logger == nil {
		logger = slog.Default()
	}
	return &resultService{repo: repo, session: session, state: state, logger: logger}
}

// roundRow находит строку жеребьёвки в загруженном раунде.
func (s *resultService) roundRow(roundNo, resultID int) (*models.Tournament, models.Round, models.Result, error) {
	t := s.state.Snapshot()
	if t == nil {
		return nil, models.Round{}, models.Result{}, ErrNoTournament
	}
	round, ok := t.Round(roundNo)
	if !ok {
		return nil, models.Round{}, models.Result{}, fmt.Errorf("round %d: %w", roundNo, ErrRoundNotFound)
	}
	rows, _ := store.RoundResults(t, roundNo)
	for _, r := range rows {
		if r.ID == resultID {
			return t, round, r, nil
		}
	}
	return nil, models.Round{}, models.Result{}, fmt.Errorf("result %d in round %d: %w", resultID, roundNo, ErrResultNotFound)
}

// Score отправляет счёт и перечитывает раунд, чтобы получить обновлённую таблицу.
func (s *resultService) Score(ctx context.Context, roundNo int, input ScoreInput) (store.RoundSnapshot, error) {
	if input.Score1 < 0 || input.Score2 < 0 {
		return store.RoundSnapshot{}, fmt.Errorf("%w: scores cannot be negative", ErrValidationFailed)
	}
	if input.GamesWon != nil && *input.GamesWon < 0 {
		return store.RoundSnapshot{}, fmt.Errorf("%w: games won cannot be negative", ErrValidationFailed)
	}
	t, round, row, err := s.roundRow(roundNo, input.ResultID)
	if err != nil {
		return store.RoundSnapshot{}, err
	}
	if t.EntryMode == models.EntryModeBoards && input.Board == nil {
		return store.RoundSnapshot{}, fmt.Errorf("%w: board is required for board entry", ErrValidationFailed)
	}

	p1, p2 := row.ParticipantIDs()
	err = s.repo.Score(ctx, t.ID, repositories.ScoreInput{
		Result:   row.ID,
		Round:    round.ID,
		P1:       p1,
		P2:       p2,
		Score1:   input.Score1,
		Score2:   input.Score2,
		GamesWon: input.GamesWon,
		Board:    input.Board,
	})
	if err != nil {
		return store.RoundSnapshot{}, handleRepositoryError(err, ErrResultNotFound, "score result %d", row.ID)
	}
	s.logger.Info("score entered",
		slog.Int("tournament_id", t.ID),
		slog.Int("round", roundNo),
		slog.Int("result_id", row.ID),
	)
	return s.session.LoadRound(ctx, t.ID, roundNo)
}

// Unpair удаляет одну пару из раунда.
func (s *resultService) Unpair(ctx context.Context, roundNo, resultID int) (store.RoundSnapshot, error) {
	t, round, row, err := s.roundRow(roundNo, resultID)
	if err != nil {
		return store.RoundSnapshot{}, err
	}
	if err := s.repo.Delete(ctx, t.ID, round.ID, row.ID); err != nil {
		return store.RoundSnapshot{}, handleRepositoryError(err, ErrResultNotFound, "unpair result %d", row.ID)
	}
	return s.session.LoadRound(ctx, t.ID, roundNo)
}
