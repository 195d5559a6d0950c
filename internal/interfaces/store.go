package interfaces

import (
	"time"

	"github.com/user/fito-garden/internal/types"
)

// GameStore defines the interface for game document operations. The HTTP
// layer depends on this rather than the concrete store so it can be stubbed
// in tests.
type GameStore interface {
	Document() *types.GameDocument

	SetUserName(name string) *types.GameDocument
	SetUserGoals(goals []string) *types.GameDocument
	CompleteOnboarding() *types.GameDocument

	AddFitoExperience(amount int) *types.GameDocument
	UpdateFitoPosition(row, col int) *types.GameDocument
	UpdateFitoPositionWithInteraction(row, col int) *types.GameDocument
	CurrentFitoMood() types.Mood
	UpdateFitoMood(custom *types.Mood) *types.GameDocument

	AddPlant(plant types.Plant) (*types.GameDocument, bool)
	GrowPlant(plantID string, amount int) *types.GameDocument
	UpdatePlant(plantID string, patch types.PlantPatch) *types.GameDocument
	ToggleMovementMode() *types.GameDocument

	AddMission(mission types.Mission) *types.GameDocument
	CompleteMission(missionID string) (*types.GameDocument, bool)

	UpdateStreak() *types.GameDocument
	RecordSession() *types.GameDocument

	AddNotification(notification types.Notification) *types.GameDocument
	MarkNotificationRead(notificationID string) *types.GameDocument

	UpdateAppointment(patch types.AppointmentPatch) *types.GameDocument
	ScheduleAppointment(dateTime time.Time, therapist string) *types.GameDocument
	CancelAppointment() *types.GameDocument

	ToggleChat() *types.GameDocument
	AddChatMessage(message types.ChatMessage) *types.GameDocument
	SetChatLoading(loading bool) *types.GameDocument
	ClearChatHistory() *types.GameDocument

	StartVideoCall() *types.GameDocument
	EndVideoCall() *types.GameDocument
	UpdateCallDuration(seconds int) *types.GameDocument
	UpdateConnectionStatus(status string) *types.GameDocument
	ToggleMute() *types.GameDocument
	ToggleCamera() *types.GameDocument

	ResetGame() *types.GameDocument
}
