package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the HTTP API onto a chi router.
func NewRouter(h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/health", h.health)

	router.Route("/api", func(r chi.Router) {
		r.Get("/state", h.state)
		r.Post("/state/reset", h.resetGame)

		r.Put("/user/name", h.setUserName)
		r.Put("/user/goals", h.setUserGoals)
		r.Post("/user/onboarding/complete", h.completeOnboarding)

		r.Post("/fito/experience", h.addFitoExperience)
		r.Put("/fito/position", h.updateFitoPosition)
		r.Get("/fito/mood", h.currentFitoMood)
		r.Post("/fito/mood", h.updateFitoMood)

		r.Post("/garden/plants", h.addPlant)
		r.Post("/garden/plants/{id}/grow", h.growPlant)
		r.Patch("/garden/plants/{id}", h.updatePlant)
		r.Post("/garden/movement-mode/toggle", h.toggleMovementMode)

		r.Post("/missions", h.addMission)
		r.Post("/missions/{id}/complete", h.completeMission)

		r.Post("/streak/update", h.updateStreak)
		r.Post("/sessions/record", h.recordSession)

		r.Post("/notifications", h.addNotification)
		r.Post("/notifications/{id}/read", h.markNotificationRead)

		r.Put("/appointment", h.updateAppointment)
		r.Post("/appointment/schedule", h.scheduleAppointment)
		r.Post("/appointment/cancel", h.cancelAppointment)
		r.Get("/appointment/qr", h.appointmentQR)

		r.Post("/chat", h.chatStream)
		r.Post("/chat/toggle", h.toggleChat)
		r.Post("/chat/messages", h.addChatMessage)
		r.Delete("/chat/messages", h.clearChatHistory)
		r.Post("/chat/loading", h.setChatLoading)

		r.Post("/video-call/start", h.startVideoCall)
		r.Post("/video-call/end", h.endVideoCall)
		r.Put("/video-call/duration", h.updateCallDuration)
		r.Put("/video-call/connection", h.updateConnectionStatus)
		r.Post("/video-call/mute/toggle", h.toggleMute)
		r.Post("/video-call/camera/toggle", h.toggleCamera)
	})

	return router
}
