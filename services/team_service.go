package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/repositories"
	"github.com/Dosada05/scrabble-director/store"
)

// TeamService serves the read-only views of team tournaments.
type TeamService interface {
	// Roster fetches a participant with its members, board by board.
	Roster(ctx context.Context, participantID int) (*models.Participant, error)
	// Boards fetches the board-by-board standings grouped per board.
	Boards(ctx context.Context) ([]store.BoardTable, error)
}

type teamService struct {
	participantRepo repositories.ParticipantRepository
	boardRepo       repositories.BoardRepository
	state           StateStore
	logger          *slog.Logger
}

func NewTeamService(participantRepo repositories.ParticipantRepository, boardRepo repositories.BoardRepository, state StateStore, logger *slog.Logger) TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &teamService{participantRepo: participantRepo, boardRepo: boardRepo, state: state, logger: logger}
}

func (s *teamService) current() (*models.Tournament, error) {
	t := s.state.Snapshot()
	if t == nil {
		return nil, ErrNoTournament
	}
	return t, nil
}

// stillCurrent отбрасывает ответ, пришедший после смены турнира.
func (s *teamService) stillCurrent(tid int) error {
	if t := s.state.Snapshot(); t == nil || t.ID != tid {
		return fmt.Errorf("tournament %d: %w", tid, ErrSessionChanged)
	}
	return nil
}

func (s *teamService) Roster(ctx context.Context, participantID int) (*models.Participant, error) {
	t, err := s.current()
	if err != nil {
		return nil, err
	}
	p, err := s.participantRepo.Get(ctx, t.ID, participantID)
	if err != nil {
		return nil, handleRepositoryError(err, ErrParticipantNotFound, "participant %d", participantID)
	}
	if err := s.stillCurrent(t.ID); err != nil {
		return nil, err
	}
	if p.Members == nil {
		p.Members = []models.Member{}
	}
	return p, nil
}

func (s *teamService) Boards(ctx context.Context) ([]store.BoardTable, error) {
	t, err := s.current()
	if err != nil {
		return nil, err
	}
	if !t.EntryMode.IsTeam() || t.TeamSize < 1 {
		return nil, fmt.Errorf("tournament %d: %w", t.ID, ErrNotTeamEvent)
	}
	rows, err := s.boardRepo.List(ctx, t.ID)
	if err != nil {
		return nil, handleRepositoryError(err, ErrTournamentNotFound, "boards of tournament %d", t.ID)
	}
	if err := s.stillCurrent(t.ID); err != nil {
		return nil, err
	}
	s.logger.Debug("board standings fetched", slog.Int("tournament_id", t.ID), slog.Int("rows", len(rows)))
	return store.GroupBoards(t, rows), nil
}
