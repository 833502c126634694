package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/scrabble-director/middleware"
	"github.com/Dosada05/scrabble-director/services"
	"github.com/Dosada05/scrabble-director/store"
)

type TournamentHandler struct {
	session services.SessionService
	state   services.StateStore
	logger  *slog.Logger
}

func NewTournamentHandler(session services.SessionService, state services.StateStore, logger *slog.Logger) *TournamentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentHandler{session: session, state: state, logger: logger}
}

// GetTournament godoc
// @Summary Текущий снимок турнира
// @Tags tournament
// @Produce json
// @Success 200 {object} map[string]interface{} "Снимок"
// @Failure 409 {object} map[string]string "Турнир не загружен"
// @Router /tournament [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	t, err := h.session.Current()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRound godoc
// @Summary Раунд: пары, результаты и ожидающие ввода участники
// @Tags tournament
// @Produce json
// @Param roundNo path int true "Номер раунда, с единицы"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Раунд не найден"
// @Router /tournament/rounds/{roundNo} [get]
func (h *TournamentHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	roundNo, err := getIDFromURL(r, "roundNo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.session.Current()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	view, err := store.RoundView(t, roundNo)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	// Результаты раунда подгружаются при первом обращении.
	if !view.Fetched || r.URL.Query().Get("refresh") == "1" {
		view, err = h.session.LoadRound(r.Context(), t.ID, roundNo)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetParticipantResults godoc
// @Summary История участника по загруженным раундам
// @Tags tournament
// @Produce json
// @Param participantID path int true "Participant ID"
// @Success 200 {object} map[string]interface{}
// @Router /tournament/participants/{participantID}/results [get]
func (h *TournamentHandler) GetParticipantResults(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.session.Current()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	results := store.ParticipantResults(t, participantID)
	if results == nil {
		results = []store.ParticipantResult{}
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type sortInput struct {
	Field string `json:"field"`
}

// Sort godoc
// @Summary Сменить порядок участников
// @Tags tournament
// @Accept json
// @Produce json
// @Param body body sortInput true "Поле сортировки, '-' для убывания"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Неизвестное поле"
// @Router /tournament/sort [post]
func (h *TournamentHandler) Sort(w http.ResponseWriter, r *http.Request) {
	var input sortInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.session.Sort(input.Field)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": t.Participants, "order": t.Order}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type loadInput struct {
	Slug string `json:"slug"`
}

// Load godoc
// @Summary Открыть турнир по slug
// @Tags tournament
// @Accept json
// @Produce json
// @Param body body loadInput true "Slug турнира"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournament/load [post]
func (h *TournamentHandler) Load(w http.ResponseWriter, r *http.Request) {
	var input loadInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.session.Load(r.Context(), input.Slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DispatchAction godoc
// @Summary Применить действие к снимку напрямую
// @Tags tournament
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Неизвестный тип действия"
// @Security BearerAuth
// @Router /tournament/actions [post]
func (h *TournamentHandler) DispatchAction(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	action, err := store.DecodeAction(body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	next, applied := h.state.Apply(action)
	h.logger.Info("action dispatched from console",
		slog.String("action", store.Kind(action)),
		slog.Int("tid", action.TournamentID()),
		slog.String("director", middleware.GetUserNameFromContext(r.Context())),
	)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"applied": applied, "tournament": next}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
