package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/fito-garden/internal/types"
)

// Defaults for the appointment record, matching the onboarding wizard's
// seeded session.
const (
	DefaultTherapist           = "Dr. Homero Simpson"
	DefaultAppointmentType     = "Sesión virtual"
	DefaultAppointmentDuration = 60
	DefaultMissionPoints       = 10
)

// DefaultDocument returns a fresh game document with every field at its
// documented default. The appointment is pre-seeded one day out so a new
// user always sees an upcoming session.
func DefaultDocument() *types.GameDocument {
	return &types.GameDocument{
		User: types.User{
			Goals: make([]string, 0),
		},
		Fito: types.Fito{
			Mood:  types.MoodHappy,
			Level: 1,
		},
		Garden: types.Garden{
			Plants: make([]types.Plant, 0),
			Level:  1,
		},
		Missions:          make([]types.Mission, 0),
		CompletedMissions: make([]types.Mission, 0),
		Notifications:     make([]types.Notification, 0),
		Appointment: types.Appointment{
			Scheduled: true,
			DateTime:  time.Now().Add(24 * time.Hour),
			Therapist: DefaultTherapist,
			Type:      DefaultAppointmentType,
			Status:    types.AppointmentScheduled,
			Duration:  DefaultAppointmentDuration,
		},
		Chat: types.Chat{
			Messages: make([]types.ChatMessage, 0),
		},
		VideoCall: types.VideoCall{
			IsCameraOn:       true,
			ConnectionStatus: types.ConnectionConnecting,
		},
	}
}

// newID builds an identifier of the form <prefix>_<unixms>_<suffix>. The
// creation timestamp keeps ids sortable; the random suffix keeps them
// unique under rapid successive calls.
func newID(prefix string) string {
	suffix := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
