package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"miniecom/etl-service/internal/app/etl/entity"
	"miniecom/etl-service/internal/app/etl/repository"
	"miniecom/etl-service/internal/app/etl/service"
	"miniecom/pkg/logger"
)

// EtlHandler - ручной запуск ETL и просмотр последнего прогона
type EtlHandler struct {
	etlSvc     service.EtlServiceInterface
	runTimeout time.Duration
}

func NewEtlHandler(etlSvc service.EtlServiceInterface, runTimeout time.Duration) *EtlHandler {
	return &EtlHandler{etlSvc: etlSvc, runTimeout: runTimeout}
}

type runResponse struct {
	Error string         `json:"error,omitempty"`
	Run   *entity.EtlRun `json:"run,omitempty"`
}

// TriggerRun POST /etl/run - синхронный прогон, 409 если прогон уже идёт
func (h *EtlHandler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, runResponse{Error: "method not allowed"})
		return
	}

	// Обрыв соединения клиента не прерывает прогон
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.runTimeout)
	defer cancel()

	run, err := h.etlSvc.Run(ctx, entity.TriggerManual)
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			writeJSON(w, http.StatusConflict, runResponse{Error: err.Error()})
			return
		}
		logger.Error().Err(err).Msg("Manual ETL run failed")
		writeJSON(w, http.StatusInternalServerError, runResponse{Error: err.Error(), Run: run})
		return
	}

	writeJSON(w, http.StatusOK, runResponse{Run: run})
}

// LatestRun GET /etl/runs/latest
func (h *EtlHandler) LatestRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, runResponse{Error: "method not allowed"})
		return
	}

	run, err := h.etlSvc.LatestRun(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			writeJSON(w, http.StatusNotFound, runResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, runResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, runResponse{Run: run})
}

func (h *EtlHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/etl/run", h.TriggerRun)
	mux.HandleFunc("/etl/runs/latest", h.LatestRun)
}
