package handlers

import (
	"net/http"

	"github.com/Dosada05/scrabble-director/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// GetRoster godoc
// @Summary Состав команды по доскам
// @Tags teams
// @Produce json
// @Param participantID path int true "Participant ID"
// @Success 200 {object} map[string]interface{} "Участник и его игроки"
// @Failure 404 {object} map[string]string "Участник не найден"
// @Router /tournament/participants/{participantID} [get]
func (h *TeamHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.teamService.Roster(r.Context(), participantID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBoards godoc
// @Summary Результаты по доскам
// @Tags teams
// @Produce json
// @Success 200 {object} map[string]interface{} "Таблицы по доскам"
// @Failure 400 {object} map[string]string "Турнир не командный"
// @Router /tournament/boards [get]
func (h *TeamHandler) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.teamService.Boards(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"boards": boards}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
