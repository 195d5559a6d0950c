package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/user/fito-garden/internal/interfaces"
	"github.com/user/fito-garden/internal/types"
	"go.uber.org/zap"
)

// Handler bundles the game store and the chat proxy behind the HTTP API.
type Handler struct {
	store  interfaces.GameStore
	chat   http.Handler
	joinQR *JoinQR
	logger *zap.Logger
}

// NewHandler constructs a Handler. chatProxy may be nil when no LLM backend
// is configured; the chat endpoint then answers 503.
func NewHandler(store interfaces.GameStore, chatProxy http.Handler, joinQR *JoinQR, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:  store,
		chat:   chatProxy,
		joinQR: joinQR,
		logger: logger,
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) state(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Document())
}

func (h *Handler) resetGame(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ResetGame())
}

func (h *Handler) setUserName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.SetUserName(req.Name))
}

func (h *Handler) setUserGoals(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals []string `json:"goals"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.SetUserGoals(req.Goals))
}

func (h *Handler) completeOnboarding(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.CompleteOnboarding())
}

func (h *Handler) addFitoExperience(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.AddFitoExperience(req.Amount))
}

func (h *Handler) updateFitoPosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Row         int  `json:"row"`
		Col         int  `json:"col"`
		Interaction bool `json:"interaction"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Interaction {
		writeJSON(w, http.StatusOK, h.store.UpdateFitoPositionWithInteraction(req.Row, req.Col))
		return
	}
	writeJSON(w, http.StatusOK, h.store.UpdateFitoPosition(req.Row, req.Col))
}

func (h *Handler) currentFitoMood(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]types.Mood{"mood": h.store.CurrentFitoMood()})
}

func (h *Handler) updateFitoMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood types.Mood `json:"mood"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	var custom *types.Mood
	if req.Mood != "" {
		custom = &req.Mood
	}
	writeJSON(w, http.StatusOK, h.store.UpdateFitoMood(custom))
}

func (h *Handler) addPlant(w http.ResponseWriter, r *http.Request) {
	var req types.Plant
	if !decodeBody(w, r, &req) {
		return
	}
	doc, added := h.store.AddPlant(req)
	if !added {
		h.logger.Info("Rejected plant on occupied cell", zap.String("grid_position", req.GridPosition))
		writeError(w, http.StatusConflict, "grid position already occupied")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) growPlant(w http.ResponseWriter, r *http.Request) {
	plantID := chi.URLParam(r, "id")
	req := struct {
		Amount int `json:"amount"`
	}{Amount: 1}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.GrowPlant(plantID, req.Amount))
}

func (h *Handler) updatePlant(w http.ResponseWriter, r *http.Request) {
	plantID := chi.URLParam(r, "id")
	var patch types.PlantPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.UpdatePlant(plantID, patch))
}

func (h *Handler) toggleMovementMode(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ToggleMovementMode())
}

func (h *Handler) addMission(w http.ResponseWriter, r *http.Request) {
	var req types.Mission
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.AddMission(req))
}

func (h *Handler) completeMission(w http.ResponseWriter, r *http.Request) {
	missionID := chi.URLParam(r, "id")
	doc, found := h.store.CompleteMission(missionID)
	if !found {
		writeError(w, http.StatusNotFound, "mission not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) updateStreak(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.UpdateStreak())
}

func (h *Handler) recordSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.RecordSession())
}

func (h *Handler) addNotification(w http.ResponseWriter, r *http.Request) {
	var req types.Notification
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.AddNotification(req))
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.MarkNotificationRead(chi.URLParam(r, "id")))
}

func (h *Handler) updateAppointment(w http.ResponseWriter, r *http.Request) {
	var patch types.AppointmentPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.UpdateAppointment(patch))
}

func (h *Handler) scheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DateTime  time.Time `json:"date_time"`
		Therapist string    `json:"therapist"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DateTime.IsZero() {
		writeError(w, http.StatusBadRequest, "date_time is required")
		return
	}
	writeJSON(w, http.StatusOK, h.store.ScheduleAppointment(req.DateTime, req.Therapist))
}

func (h *Handler) cancelAppointment(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.CancelAppointment())
}

func (h *Handler) appointmentQR(w http.ResponseWriter, _ *http.Request) {
	if h.joinQR == nil {
		writeError(w, http.StatusNotFound, "join links not configured")
		return
	}
	doc := h.store.Document()
	if !doc.Appointment.Scheduled {
		writeError(w, http.StatusNotFound, "no scheduled appointment")
		return
	}
	png, err := h.joinQR.PNG(doc.Appointment)
	if err != nil {
		h.logger.Error("Failed to encode join QR code", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to encode QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) toggleChat(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ToggleChat())
}

func (h *Handler) addChatMessage(w http.ResponseWriter, r *http.Request) {
	var req types.ChatMessage
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.AddChatMessage(req))
}

func (h *Handler) setChatLoading(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Loading bool `json:"loading"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.SetChatLoading(req.Loading))
}

func (h *Handler) clearChatHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ClearChatHistory())
}

func (h *Handler) chatStream(w http.ResponseWriter, r *http.Request) {
	if h.chat == nil {
		writeError(w, http.StatusServiceUnavailable, "chat backend not configured")
		return
	}
	h.chat.ServeHTTP(w, r)
}

func (h *Handler) startVideoCall(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.StartVideoCall())
}

func (h *Handler) endVideoCall(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.EndVideoCall())
}

func (h *Handler) updateCallDuration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Duration int `json:"duration"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.UpdateCallDuration(req.Duration))
}

func (h *Handler) updateConnectionStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.UpdateConnectionStatus(req.Status))
}

func (h *Handler) toggleMute(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ToggleMute())
}

func (h *Handler) toggleCamera(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ToggleCamera())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
