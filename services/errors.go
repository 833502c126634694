package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed = errors.New("validation failed")
	ErrNoTournament     = errors.New("no tournament is loaded")
	ErrRosterLocked     = errors.New("participants cannot be removed once a round is paired")
	ErrInvalidSortField = errors.New("unknown sort field")
	ErrNotTeamEvent     = errors.New("only team tournaments have boards")

	// Турнир сменился, пока запрос был в пути; его результат отброшен.
	ErrSessionChanged = errors.New("tournament changed while the request was in flight")

	// Ошибки аутентификации и авторизации
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Ошибки, специфичные для сущностей
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrRoundNotFound       = errors.New("round not found")
	ErrResultNotFound      = errors.New("result not found")

	ErrUpstreamFailed = errors.New("tournament server request failed")
)

// BusinessError is a refusal reported by the tournament server. Message is
// shown to the director as is.
type BusinessError struct {
	Op      string
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s refused: %s", e.Op, e.Message)
}
