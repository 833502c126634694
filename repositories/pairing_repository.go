package repositories

import (
	"context"
	"fmt"
	"net/http"
)

type PairingOp string

const (
	OpPair       PairingOp = "pair"
	OpUnpair     PairingOp = "unpair"
	OpTruncate   PairingOp = "truncate"
	OpRandomFill PairingOp = "random_fill"
)

// PairingStatus is what the server answers to a round operation. Status is
// "error" when the operation was refused; Message is meant for the director.
type PairingStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s PairingStatus) Failed() bool {
	return s.Status == "error"
}

type PairingRepository interface {
	Run(ctx context.Context, tournamentID, roundNo int, op PairingOp) (PairingStatus, error)
}

type apiPairingRepository struct {
	client *Client
}

func NewAPIPairingRepository(client *Client) PairingRepository {
	return &apiPairingRepository{client: client}
}

// Run posts op for the one-based round roundNo.
func (r *apiPairingRepository) Run(ctx context.Context, tournamentID, roundNo int, op PairingOp) (PairingStatus, error) {
	switch op {
	case OpPair, OpUnpair, OpTruncate, OpRandomFill:
	default:
		return PairingStatus{}, fmt.Errorf("unknown pairing operation %q", op)
	}
	var status PairingStatus
	path := fmt.Sprintf("/api/tournament/%d/round/%d/%s/", tournamentID, roundNo, op)
	if err := r.client.do(ctx, http.MethodPost, path, struct{}{}, &status); err != nil {
		return PairingStatus{}, err
	}
	return status, nil
}
