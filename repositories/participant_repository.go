package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/scrabble-director/models"
)

type ParticipantRepository interface {
	List(ctx context.Context, tournamentID int) ([]models.Participant, error)
	Get(ctx context.Context, tournamentID, participantID int) (*models.Participant, error)
	Create(ctx context.Context, tournamentID int, p *models.Participant) (*models.Participant, error)
	Update(ctx context.Context, tournamentID int, p *models.Participant) (*models.Participant, error)
	Delete(ctx context.Context, tournamentID, participantID int) error
}

type apiParticipantRepository struct {
	client *Client
}

func NewAPIParticipantRepository(client *Client) ParticipantRepository {
	return &apiParticipantRepository{client: client}
}

func participantsPath(tournamentID int) string {
	return fmt.Sprintf("/api/tournament/%d/participant/", tournamentID)
}

func participantPath(tournamentID, participantID int) string {
	return fmt.Sprintf("/api/tournament/%d/participant/%d/", tournamentID, participantID)
}

func (r *apiParticipantRepository) List(ctx context.Context, tournamentID int) ([]models.Participant, error) {
	var participants []models.Participant
	if err := r.client.do(ctx, http.MethodGet, participantsPath(tournamentID), nil, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *apiParticipantRepository) Get(ctx context.Context, tournamentID, participantID int) (*models.Participant, error) {
	var p models.Participant
	if err := r.client.do(ctx, http.MethodGet, participantPath(tournamentID, participantID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create returns the record as the server stored it, with id and seed set.
func (r *apiParticipantRepository) Create(ctx context.Context, tournamentID int, p *models.Participant) (*models.Participant, error) {
	var created models.Participant
	if err := r.client.do(ctx, http.MethodPost, participantsPath(tournamentID), p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *apiParticipantRepository) Update(ctx context.Context, tournamentID int, p *models.Participant) (*models.Participant, error) {
	var updated models.Participant
	if err := r.client.do(ctx, http.MethodPut, participantPath(tournamentID, p.ID), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *apiParticipantRepository) Delete(ctx context.Context, tournamentID, participantID int) error {
	return r.client.do(ctx, http.MethodDelete, participantPath(tournamentID, participantID), nil, nil)
}
