package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/scrabble-director/models"
)

// BoardRepository reads the board-by-board standings of team tournaments.
type BoardRepository interface {
	List(ctx context.Context, tournamentID int) ([]models.BoardStanding, error)
}

type apiBoardRepository struct {
	client *Client
}

func NewAPIBoardRepository(client *Client) BoardRepository {
	return &apiBoardRepository{client: client}
}

func (r *apiBoardRepository) List(ctx context.Context, tournamentID int) ([]models.BoardStanding, error) {
	rows := []models.BoardStanding{}
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("/api/tournament/%d/boards/", tournamentID), nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.BoardStanding{}
	}
	return rows, nil
}
