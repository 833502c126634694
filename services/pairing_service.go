package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/scrabble-director/repositories"
	"github.com/Dosada05/scrabble-director/store"
)

type PairingService interface {
	Pair(ctx context.Context, roundNo int) (store.RoundSnapshot, error)
	Unpair(ctx context.Context, roundNo int) (store.RoundSnapshot, error)
	Truncate(ctx context.Context, roundNo int) (store.RoundSnapshot, error)
	RandomFill(ctx context.Context, roundNo int) (store.RoundSnapshot, error)
}

type pairingService struct {
	repo    repositories.PairingRepository
	session SessionService
	logger  *slog.Logger
}

func NewPairingService(repo repositories.PairingRepository, session SessionService, logger *slog.Logger) PairingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &pairingService{repo: repo, session: session, logger: logger}
}

func (s *pairingService) Pair(ctx context.Context, roundNo int) (store.RoundSnapshot, error) {
	return s.run(ctx, roundNo, repositories.OpPair)
}

func (s *pairingService) Unpair(ctx context.Context, roundNo int) (store.RoundSnapshot, error) {
	return s.run(ctx, roundNo, repositories.OpUnpair)
}

func (s *pairingService) Truncate(ctx context.Context, roundNo int) (store.RoundSnapshot, error) {
	return s.run(ctx, roundNo, repositories.OpTruncate)
}

func (s *pairingService) RandomFill(ctx context.Context, roundNo int) (store.RoundSnapshot, error) {
	return s.run(ctx, roundNo, repositories.OpRandomFill)
}

// run выполняет операцию над раундом и при успехе перечитывает раунды и
// результаты. Отказ сервера возвращается как *BusinessError.
func (s *pairingService) run(ctx context.Context, roundNo int, op repositories.PairingOp) (store.RoundSnapshot, error) {
	t, err := s.session.Current()
	if err != nil {
		return store.RoundSnapshot{}, err
	}
	if _, ok := t.Round(roundNo); !ok {
		return store.RoundSnapshot{}, fmt.Errorf("round %d: %w", roundNo, ErrRoundNotFound)
	}

	status, err := s.repo.Run(ctx, t.ID, roundNo, op)
	if err != nil {
		return store.RoundSnapshot{}, handleRepositoryError(err, ErrRoundNotFound, "%s round %d", op, roundNo)
	}
	if status.Failed() {
		s.logger.Warn("round operation refused",
			slog.String("op", string(op)),
			slog.Int("round", roundNo),
			slog.String("message", status.Message),
		)
		return store.RoundSnapshot{}, &BusinessError{Op: string(op), Message: status.Message}
	}

	// Дальше работаем только с турниром, на котором запрос начинался.
	if err := s.session.RefreshRounds(ctx, t.ID); err != nil {
		return store.RoundSnapshot{}, err
	}
	return s.session.LoadRound(ctx, t.ID, roundNo)
}
