package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/repositories"
)

// handleRepositoryError переводит ошибки API-клиента в ошибки сервисного слоя.
func handleRepositoryError(err error, notFound error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%s: %w", msg, notFound)
	case errors.Is(err, repositories.ErrUnauthorized):
		return fmt.Errorf("%s: %w: %w", msg, ErrAuthenticationFailed, err)
	case errors.Is(err, repositories.ErrForbidden):
		return fmt.Errorf("%s: %w: %w", msg, ErrForbiddenOperation, err)
	case errors.Is(err, repositories.ErrBadRequest), errors.Is(err, repositories.ErrConflict):
		return fmt.Errorf("%s: %w: %w", msg, ErrValidationFailed, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrUpstreamFailed, err)
}

func findParticipant(t *models.Tournament, id int) (models.Participant, bool) {
	if t == nil {
		return models.Participant{}, false
	}
	for _, p := range t.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return models.Participant{}, false
}
