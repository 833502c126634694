package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/scrabble-director/models"
)

// ScoreInput is the body of a score submission. Result is the id of the
// pairing row being scored, Round the server id of its round.
type ScoreInput struct {
	Result   int      `json:"result"`
	Round    int      `json:"round"`
	P1       int      `json:"p1"`
	P2       int      `json:"p2"`
	Score1   int      `json:"score1"`
	Score2   int      `json:"score2"`
	GamesWon *float64 `json:"games_won,omitempty"`
	Board    *int     `json:"board,omitempty"`
}

type ResultRepository interface {
	ListByRound(ctx context.Context, tournamentID, roundID int) ([]models.Result, error)
	Score(ctx context.Context, tournamentID int, input ScoreInput) error
	Delete(ctx context.Context, tournamentID, roundID, resultID int) error
}

type apiResultRepository struct {
	client *Client
}

func NewAPIResultRepository(client *Client) ResultRepository {
	return &apiResultRepository{client: client}
}

func (r *apiResultRepository) ListByRound(ctx context.Context, tournamentID, roundID int) ([]models.Result, error) {
	var results []models.Result
	path := fmt.Sprintf("/api/tournament/%d/%d/result/", tournamentID, roundID)
	if err := r.client.do(ctx, http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.Result{}
	}
	return results, nil
}

func (r *apiResultRepository) Score(ctx context.Context, tournamentID int, input ScoreInput) error {
	path := fmt.Sprintf("/api/tournament/%d/result/", tournamentID)
	return r.client.do(ctx, http.MethodPut, path, input, nil)
}

func (r *apiResultRepository) Delete(ctx context.Context, tournamentID, roundID, resultID int) error {
	path := fmt.Sprintf("/api/tournament/%d/result/%d/%d/", tournamentID, roundID, resultID)
	return r.client.do(ctx, http.MethodDelete, path, nil, nil)
}
