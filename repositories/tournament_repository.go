package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/scrabble-director/models"
)

type TournamentRepository interface {
	List(ctx context.Context) ([]models.TournamentSummary, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tournament, error)
}

type apiTournamentRepository struct {
	client *Client
}

func NewAPITournamentRepository(client *Client) TournamentRepository {
	return &apiTournamentRepository{client: client}
}

func (r *apiTournamentRepository) List(ctx context.Context) ([]models.TournamentSummary, error) {
	var tournaments []models.TournamentSummary
	if err := r.client.do(ctx, http.MethodGet, "/api/tournament/", nil, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *apiTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	var t models.Tournament
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("/api/tournament/%d/", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBySlug resolves the slug against the listing, then loads the detail so
// IsEditable is filled in by the server.
func (r *apiTournamentRepository) GetBySlug(ctx context.Context, slug string) (*models.Tournament, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		if t.Slug == slug {
			return r.GetByID(ctx, t.ID)
		}
	}
	return nil, fmt.Errorf("tournament %q: %w", slug, ErrNotFound)
}
