package system

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type Handler struct {
	Pool    *NotificationWorkerPool
	AppName string
	AppEnv  string
	logger  *zap.Logger
}

func NewHandler(pool *NotificationWorkerPool, appName, appEnv string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Pool:    pool,
		AppName: appName,
		AppEnv:  appEnv,
		logger:  logger,
	}
}

// Notify queues a toast for every connected browser.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	var job NotificationJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	job.Message = strings.TrimSpace(job.Message)
	if job.Message == "" {
		writeError(w, http.StatusBadRequest, "El mensaje es obligatorio")
		return
	}

	if !h.Pool.Enqueue(job) {
		h.logger.Warn("notification queue full")
		writeError(w, http.StatusServiceUnavailable, "Cola de notificaciones llena")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"app":         h.AppName,
		"environment": h.AppEnv,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError uses the {"detail": ...} shape the api client reads.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
