package handlers

import (
	"net/http"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/services"
)

type ParticipantHandler struct {
	participantService services.ParticipantService
}

func NewParticipantHandler(ps services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: ps,
	}
}

// Add godoc
// @Summary Добавить участника в открытый турнир
// @Tags participants
// @Accept json
// @Produce json
// @Param body body services.ParticipantInput true "Имя и рейтинг"
// @Success 201 {object} map[string]interface{} "Участник добавлен"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Security BearerAuth
// @Router /tournament/participants [post]
func (h *ParticipantHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input services.ParticipantInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.Add(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Edit godoc
// @Summary Изменить участника
// @Tags participants
// @Accept json
// @Produce json
// @Param participantID path int true "Participant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Участник не найден"
// @Security BearerAuth
// @Router /tournament/participants/{participantID} [put]
func (h *ParticipantHandler) Edit(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.Participant
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.ID = participantID

	participant, err := h.participantService.Edit(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ToggleOffed godoc
// @Summary Снять участника с турнира или вернуть обратно
// @Tags participants
// @Produce json
// @Param participantID path int true "Participant ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournament/participants/{participantID}/toggle [post]
func (h *ParticipantHandler) ToggleOffed(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participant, err := h.participantService.ToggleOffed(r.Context(), participantID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Удалить участника (только пока нет жеребьёвки)
// @Tags participants
// @Param participantID path int true "Participant ID"
// @Success 204 "Удалён"
// @Failure 409 {object} map[string]string "Раунд уже сведён"
// @Security BearerAuth
// @Router /tournament/participants/{participantID} [delete]
func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.participantService.Delete(r.Context(), participantID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
