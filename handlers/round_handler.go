package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/scrabble-director/services"
	"github.com/Dosada05/scrabble-director/store"
)

type RoundHandler struct {
	resultService  services.ResultService
	pairingService services.PairingService
}

func NewRoundHandler(rs services.ResultService, ps services.PairingService) *RoundHandler {
	return &RoundHandler{resultService: rs, pairingService: ps}
}

// Score godoc
// @Summary Ввести счёт пары
// @Tags rounds
// @Accept json
// @Produce json
// @Param roundNo path int true "Номер раунда, с единицы"
// @Param body body services.ScoreInput true "Счёт"
// @Success 200 {object} map[string]interface{} "Обновлённый раунд"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Пара не найдена"
// @Security BearerAuth
// @Router /tournament/rounds/{roundNo}/results [post]
func (h *RoundHandler) Score(w http.ResponseWriter, r *http.Request) {
	roundNo, err := getIDFromURL(r, "roundNo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, err := h.resultService.Score(r.Context(), roundNo, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeRound(w, r, view)
}

// DeleteResult godoc
// @Summary Удалить пару из раунда
// @Tags rounds
// @Produce json
// @Param roundNo path int true "Номер раунда, с единицы"
// @Param resultID path int true "Result ID"
// @Success 200 {object} map[string]interface{} "Обновлённый раунд"
// @Security BearerAuth
// @Router /tournament/rounds/{roundNo}/results/{resultID} [delete]
func (h *RoundHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	roundNo, err := getIDFromURL(r, "roundNo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	resultID, err := getIDFromURL(r, "resultID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, err := h.resultService.Unpair(r.Context(), roundNo, resultID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeRound(w, r, view)
}

// RunPairing godoc
// @Summary Операция жеребьёвки: pair, unpair, truncate, random_fill
// @Tags rounds
// @Produce json
// @Param roundNo path int true "Номер раунда, с единицы"
// @Param op path string true "Операция"
// @Success 200 {object} map[string]interface{} "Обновлённый раунд"
// @Failure 422 {object} map[string]string "Сервер отказал, сообщение как есть"
// @Security BearerAuth
// @Router /tournament/rounds/{roundNo}/{op} [post]
func (h *RoundHandler) RunPairing(w http.ResponseWriter, r *http.Request) {
	roundNo, err := getIDFromURL(r, "roundNo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var view store.RoundSnapshot
	switch op := chi.URLParam(r, "op"); op {
	case "pair":
		view, err = h.pairingService.Pair(r.Context(), roundNo)
	case "unpair":
		view, err = h.pairingService.Unpair(r.Context(), roundNo)
	case "truncate":
		view, err = h.pairingService.Truncate(r.Context(), roundNo)
	case "random_fill":
		view, err = h.pairingService.RandomFill(r.Context(), roundNo)
	default:
		badRequestResponse(w, r, errors.New("unknown round operation "+op))
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeRound(w, r, view)
}

func writeRound(w http.ResponseWriter, r *http.Request, view store.RoundSnapshot) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
