package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/repositories"
	"github.com/Dosada05/scrabble-director/store"
)

type ParticipantInput struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Seed   int    `json:"seed"`
}

type ParticipantService interface {
	Add(ctx context.Context, input ParticipantInput) (*models.Participant, error)
	Edit(ctx context.Context, p models.Participant) (*models.Participant, error)
	ToggleOffed(ctx context.Context, participantID int) (*models.Participant, error)
	Delete(ctx context.Context, participantID int) error
}

// participantService вызывает API, а затем применяет ответ сервера к снимку.
// Действие несёт id турнира, открытого в момент начала запроса.
type participantService struct {
	repo   repositories.ParticipantRepository
	state  StateStore
	logger *slog.Logger
}

func NewParticipantService(repo repositories.ParticipantRepository, state StateStore, logger *slog.Logger) ParticipantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &participantService{repo: repo, state: state, logger: logger}
}

func (s *participantService) current() (*models.Tournament, error) {
	t := s.state.Snapshot()
	if t == nil {
		return nil, ErrNoTournament
	}
	return t, nil
}

func (s *participantService) Add(ctx context.Context, input ParticipantInput) (*models.Participant, error) {
	t, err := s.current()
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrValidationFailed)
	}
	if input.Rating < 0 {
		return nil, fmt.Errorf("%w: rating cannot be negative", ErrValidationFailed)
	}

	created, err := s.repo.Create(ctx, t.ID, &models.Participant{Name: name, Rating: input.Rating, Seed: input.Seed})
	if err != nil {
		return nil, handleRepositoryError(err, ErrTournamentNotFound, "add participant %q", name)
	}
	s.state.Dispatch(store.AddParticipant{TID: t.ID, Participant: *created})
	s.logger.Info("participant added", slog.Int("tournament_id", t.ID), slog.Int("participant_id", created.ID))
	return created, nil
}

func (s *participantService) Edit(ctx context.Context, p models.Participant) (*models.Participant, error) {
	t, err := s.current()
	if err != nil {
		return nil, err
	}
	if _, ok := findParticipant(t, p.ID); !ok {
		return nil, fmt.Errorf("participant %d: %w", p.ID, ErrParticipantNotFound)
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrValidationFailed)
	}
	return s.update(ctx, t.ID, p)
}

// ToggleOffed снимает участника с турнира или возвращает его обратно.
func (s *participantService) ToggleOffed(ctx context.Context, participantID int) (*models.Participant, error) {
	t, err := s.current()
	if err != nil {
		return nil, err
	}
	p, ok := findParticipant(t, participantID)
	if !ok {
		return nil, fmt.Errorf("participant %d: %w", participantID, ErrParticipantNotFound)
	}
	if p.IsOffed() {
		p.Offed = 0
	} else {
		p.Offed = 1
	}
	return s.update(ctx, t.ID, p)
}

func (s *participantService) update(ctx context.Context, tid int, p models.Participant) (*models.Participant, error) {
	updated, err := s.repo.Update(ctx, tid, &p)
	if err != nil {
		return nil, handleRepositoryError(err, ErrParticipantNotFound, "update participant %d", p.ID)
	}
	s.state.Dispatch(store.EditParticipant{TID: tid, Participant: *updated})
	return updated, nil
}

func (s *participantService) Delete(ctx context.Context, participantID int) error {
	t, err := s.current()
	if err != nil {
		return err
	}
	if t.AnyPaired() {
		return ErrRosterLocked
	}
	p, ok := findParticipant(t, participantID)
	if !ok {
		return fmt.Errorf("participant %d: %w", participantID, ErrParticipantNotFound)
	}
	if err := s.repo.Delete(ctx, t.ID, participantID); err != nil {
		return handleRepositoryError(err, ErrParticipantNotFound, "delete participant %d", participantID)
	}
	s.state.Dispatch(store.DeleteParticipant{TID: t.ID, Participant: p})
	s.logger.Info("participant deleted", slog.Int("tournament_id", t.ID), slog.Int("participant_id", participantID))
	return nil
}
