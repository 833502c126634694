package repositories

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/Dosada05/scrabble-director/models"
)

type RoundRepository interface {
	List(ctx context.Context, tournamentID int) ([]models.Round, error)
}

type apiRoundRepository struct {
	client *Client
}

func NewAPIRoundRepository(client *Client) RoundRepository {
	return &apiRoundRepository{client: client}
}

// List returns the rounds ordered by round number.
func (r *apiRoundRepository) List(ctx context.Context, tournamentID int) ([]models.Round, error) {
	var rounds []models.Round
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("/api/tournament/%d/round/", tournamentID), nil, &rounds); err != nil {
		return nil, err
	}
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].RoundNo < rounds[j].RoundNo })
	return rounds, nil
}
