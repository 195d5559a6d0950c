package game

import (
	"sync"
	"time"

	"github.com/user/fito-garden/internal/interfaces"
	"github.com/user/fito-garden/internal/types"
	"go.uber.org/zap"
)

// Store holds the game document and exposes the named mutation operations.
// Every mutation runs to completion under the state lock, writes through to
// storage and returns a snapshot of the new document. Operations are total:
// lookups on unknown ids degrade to a no-op instead of failing.
type Store struct {
	doc       *types.GameDocument
	stateLock sync.RWMutex
	storage   *DocumentStorage
	logger    *zap.Logger
}

// Ensure Store satisfies the interfaces.GameStore interface
var _ interfaces.GameStore = (*Store)(nil)

// NewStore creates a store backed by the given storage. A missing or
// unreadable document falls back to defaults rather than failing startup.
func NewStore(storage *DocumentStorage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := storage.LoadDocument()
	if err != nil {
		logger.Warn("Failed to load game document, starting fresh", zap.Error(err))
		doc = DefaultDocument()
	}

	return &Store{
		doc:     doc,
		storage: storage,
		logger:  logger,
	}
}

// persist writes the current document through to storage. A failed write is
// logged and otherwise swallowed; callers never see persistence errors.
func (s *Store) persist() {
	if err := s.storage.SaveDocument(s.doc); err != nil {
		s.logger.Error("Failed to save game document", zap.Error(err))
	}
}

// Document returns a deep-copied snapshot of the current document. Callers
// never alias live nested state.
func (s *Store) Document() *types.GameDocument {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return copyDocument(s.doc)
}

// SetUserName replaces the user's name unconditionally. An empty string is
// accepted.
func (s *Store) SetUserName(name string) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.User.Name = name
	s.persist()
	return copyDocument(s.doc)
}

// SetUserGoals replaces the user's wellness goals.
func (s *Store) SetUserGoals(goals []string) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.User.Goals = append([]string(nil), goals...)
	s.persist()
	return copyDocument(s.doc)
}

// CompleteOnboarding marks onboarding done and stamps the join time. There
// is no guard against re-invocation; calling twice only refreshes JoinedAt.
func (s *Store) CompleteOnboarding() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	now := time.Now()
	s.doc.User.OnboardingCompleted = true
	s.doc.User.JoinedAt = &now
	s.persist()
	return copyDocument(s.doc)
}

// AddFitoExperience adds experience (negative amounts included; see
// levelForExperience) and recomputes the level as floor(exp/100)+1.
func (s *Store) AddFitoExperience(amount int) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	now := time.Now()
	s.doc.Fito.Experience += amount
	s.doc.Fito.Level = levelForExperience(s.doc.Fito.Experience)
	s.doc.Fito.LastInteraction = &now
	s.persist()
	return copyDocument(s.doc)
}

// UpdateFitoPosition overwrites Fito's grid position. Grid bounds are the
// caller's responsibility.
func (s *Store) UpdateFitoPosition(row, col int) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.Fito.GridPosition = types.GridPosition{Row: row, Col: col}
	s.persist()
	return copyDocument(s.doc)
}

// UpdateFitoPositionWithInteraction moves Fito and stamps the interaction
// time, for moves the user made deliberately.
func (s *Store) UpdateFitoPositionWithInteraction(row, col int) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	now := time.Now()
	s.doc.Fito.GridPosition = types.GridPosition{Row: row, Col: col}
	s.doc.Fito.LastInteraction = &now
	s.persist()
	return copyDocument(s.doc)
}

// CurrentFitoMood computes the mood ladder value from the live document
// without committing it. Pure: repeated calls without other mutations
// return the same value.
func (s *Store) CurrentFitoMood() types.Mood {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return FitoMoodFor(s.doc)
}

// UpdateFitoMood commits the derived mood (or the explicit override) into
// the document. Mood is a snapshot taken only when this runs; it is not
// kept in sync with other mutations.
func (s *Store) UpdateFitoMood(custom *types.Mood) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	mood := FitoMoodFor(s.doc)
	if custom != nil {
		mood = *custom
	}

	now := time.Now()
	s.doc.Fito.Mood = mood
	s.doc.Fito.LastInteraction = &now
	s.persist()
	return copyDocument(s.doc)
}

// AddPlant appends a new plant with a generated id and bumps the garden's
// lifetime plant counter. Adding to an occupied grid cell is a no-op; the
// second return reports whether the plant was added.
func (s *Store) AddPlant(plant types.Plant) (*types.GameDocument, bool) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	// Check if the target cell is already occupied
	if plant.GridPosition != "" {
		for _, p := range s.doc.Garden.Plants {
			if p.GridPosition == plant.GridPosition {
				return copyDocument(s.doc), false
			}
		}
	}

	plant.ID = newID("plant")
	s.doc.Garden.Plants = append(s.doc.Garden.Plants, plant)
	s.doc.Garden.TotalPlants++
	s.persist()
	return copyDocument(s.doc), true
}

// GrowPlant raises a plant's growth by amount, clamped at 100. Unknown ids
// are a silent no-op.
func (s *Store) GrowPlant(plantID string, amount int) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	for i := range s.doc.Garden.Plants {
		if s.doc.Garden.Plants[i].ID != plantID {
			continue
		}
		growth := s.doc.Garden.Plants[i].Growth + amount
		if growth > 100 {
			growth = 100
		}
		s.doc.Garden.Plants[i].Growth = growth
		s.persist()
		break
	}
	return copyDocument(s.doc)
}

// UpdatePlant shallow-merges the patch into the matching plant. Unknown ids
// are a silent no-op.
func (s *Store) UpdatePlant(plantID string, patch types.PlantPatch) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	for i := range s.doc.Garden.Plants {
		if s.doc.Garden.Plants[i].ID != plantID {
			continue
		}
		if patch.Type != nil {
			s.doc.Garden.Plants[i].Type = *patch.Type
		}
		if patch.Growth != nil {
			s.doc.Garden.Plants[i].Growth = *patch.Growth
		}
		if patch.GridPosition != nil {
			s.doc.Garden.Plants[i].GridPosition = *patch.GridPosition
		}
		s.persist()
		break
	}
	return copyDocument(s.doc)
}

// ToggleMovementMode flips the garden between plant mode and movement mode.
func (s *Store) ToggleMovementMode() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.Garden.IsMovementMode = !s.doc.Garden.IsMovementMode
	s.persist()
	return copyDocument(s.doc)
}

// AddMission appends a mission with a generated id and pending status.
// Points default to 10 when unset.
func (s *Store) AddMission(mission types.Mission) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	mission.ID = newID("mission")
	mission.Status = "pending"
	mission.CreatedAt = time.Now()
	if mission.Points <= 0 {
		mission.Points = DefaultMissionPoints
	}
	s.doc.Missions = append(s.doc.Missions, mission)
	s.persist()
	return copyDocument(s.doc)
}

// CompleteMission moves a mission from the active collection into the
// completed archive and credits the stats. Unknown ids are a no-op; the
// second return reports whether the mission was found, so completing twice
// is idempotent.
func (s *Store) CompleteMission(missionID string) (*types.GameDocument, bool) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	idx := -1
	for i := range s.doc.Missions {
		if s.doc.Missions[i].ID == missionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return copyDocument(s.doc), false
	}

	mission := s.doc.Missions[idx]
	s.doc.Missions = append(s.doc.Missions[:idx], s.doc.Missions[idx+1:]...)

	now := time.Now()
	mission.CompletedAt = &now
	s.doc.CompletedMissions = append(s.doc.CompletedMissions, mission)

	points := mission.Points
	if points <= 0 {
		points = DefaultMissionPoints
	}
	s.doc.Stats.MissionsCompleted++
	s.doc.Stats.TotalPoints += points

	s.persist()
	return copyDocument(s.doc), true
}

// UpdateStreak advances the consecutive-day counter. Idempotent within a
// calendar day: activity yesterday extends the streak, any longer gap (or a
// first-ever call) resets it to 1. Longest never decreases.
func (s *Store) UpdateStreak() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	now := time.Now()
	last := s.doc.Streak.LastActivity

	if last != nil && sameCalendarDay(*last, now) {
		return copyDocument(s.doc)
	}

	current := 1
	if last != nil && sameCalendarDay(*last, now.AddDate(0, 0, -1)) {
		current = s.doc.Streak.Current + 1
	}

	s.doc.Streak.Current = current
	if current > s.doc.Streak.Longest {
		s.doc.Streak.Longest = current
	}
	s.doc.Streak.LastActivity = &now

	s.persist()
	return copyDocument(s.doc)
}

// RecordSession counts an attended therapy session.
func (s *Store) RecordSession() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.Stats.SessionsAttended++
	s.persist()
	return copyDocument(s.doc)
}

// AddNotification appends an unread notification with a generated id.
func (s *Store) AddNotification(notification types.Notification) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	notification.ID = newID("notification")
	notification.Read = false
	notification.CreatedAt = time.Now()
	s.doc.Notifications = append(s.doc.Notifications, notification)
	s.persist()
	return copyDocument(s.doc)
}

// MarkNotificationRead flips the read flag. Unknown ids are a silent no-op.
func (s *Store) MarkNotificationRead(notificationID string) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	for i := range s.doc.Notifications {
		if s.doc.Notifications[i].ID == notificationID {
			s.doc.Notifications[i].Read = true
			s.persist()
			break
		}
	}
	return copyDocument(s.doc)
}

// UpdateAppointment shallow-merges the patch into the appointment record.
func (s *Store) UpdateAppointment(patch types.AppointmentPatch) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if patch.Scheduled != nil {
		s.doc.Appointment.Scheduled = *patch.Scheduled
	}
	if patch.DateTime != nil {
		s.doc.Appointment.DateTime = *patch.DateTime
	}
	if patch.Therapist != nil {
		s.doc.Appointment.Therapist = *patch.Therapist
	}
	if patch.Type != nil {
		s.doc.Appointment.Type = *patch.Type
	}
	if patch.Status != nil {
		s.doc.Appointment.Status = *patch.Status
	}
	if patch.Duration != nil {
		s.doc.Appointment.Duration = *patch.Duration
	}
	if patch.Rescheduled != nil {
		s.doc.Appointment.Rescheduled = *patch.Rescheduled
	}
	s.persist()
	return copyDocument(s.doc)
}

// ScheduleAppointment re-initializes the appointment for the given time.
// An empty therapist name falls back to the default.
func (s *Store) ScheduleAppointment(dateTime time.Time, therapist string) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if therapist == "" {
		therapist = DefaultTherapist
	}
	s.doc.Appointment = types.Appointment{
		Scheduled: true,
		DateTime:  dateTime,
		Therapist: therapist,
		Type:      DefaultAppointmentType,
		Status:    types.AppointmentScheduled,
		Duration:  DefaultAppointmentDuration,
	}
	s.persist()
	return copyDocument(s.doc)
}

// CancelAppointment marks the appointment cancelled and unscheduled.
func (s *Store) CancelAppointment() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.Appointment.Scheduled = false
	s.doc.Appointment.Status = types.AppointmentCancelled
	s.persist()
	return copyDocument(s.doc)
}

// ToggleChat flips the chat panel open flag.
func (s *Store) ToggleChat() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.Chat.IsOpen = !s.doc.Chat.IsOpen
	s.persist()
	return copyDocument(s.doc)
}

// AddChatMessage appends a message. Only user-authored messages count as
// turns; the chat UI enforces the turn cap, the store just tracks it.
func (s *Store) AddChatMessage(message types.ChatMessage) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	s.doc.Chat.Messages = append(s.doc.Chat.Messages, message)
	if message.Role == "user" {
		s.doc.Chat.TurnCount++
	}
	s.persist()
	return copyDocument(s.doc)
}

// SetChatLoading sets the chat loading indicator.
func (s *Store) SetChatLoading(loading bool) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.Chat.IsLoading = loading
	s.persist()
	return copyDocument(s.doc)
}

// ClearChatHistory empties the conversation and resets the turn counter.
func (s *Store) ClearChatHistory() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.Chat.Messages = make([]types.ChatMessage, 0)
	s.doc.Chat.TurnCount = 0
	s.persist()
	return copyDocument(s.doc)
}

// StartVideoCall activates the call and moves the appointment in progress.
func (s *Store) StartVideoCall() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	now := time.Now()
	s.doc.VideoCall.IsActive = true
	s.doc.VideoCall.StartTime = &now
	s.doc.VideoCall.Duration = 0
	s.doc.VideoCall.ConnectionStatus = types.ConnectionConnecting
	s.doc.Appointment.Status = types.AppointmentInProgress
	s.persist()
	return copyDocument(s.doc)
}

// EndVideoCall deactivates the call, completes the appointment and counts
// the attended session.
func (s *Store) EndVideoCall() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.VideoCall.IsActive = false
	s.doc.VideoCall.StartTime = nil
	s.doc.VideoCall.Duration = 0
	s.doc.VideoCall.ConnectionStatus = types.ConnectionDisconnected
	s.doc.Appointment.Status = types.AppointmentCompleted
	s.doc.Stats.SessionsAttended++
	s.persist()
	return copyDocument(s.doc)
}

// UpdateCallDuration records the externally ticked call duration in seconds.
func (s *Store) UpdateCallDuration(seconds int) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.VideoCall.Duration = seconds
	s.persist()
	return copyDocument(s.doc)
}

// UpdateConnectionStatus records the call connection status.
func (s *Store) UpdateConnectionStatus(status string) *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.VideoCall.ConnectionStatus = status
	s.persist()
	return copyDocument(s.doc)
}

// ToggleMute flips the call mute flag.
func (s *Store) ToggleMute() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.VideoCall.IsMuted = !s.doc.VideoCall.IsMuted
	s.persist()
	return copyDocument(s.doc)
}

// ToggleCamera flips the call camera flag.
func (s *Store) ToggleCamera() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc.VideoCall.IsCameraOn = !s.doc.VideoCall.IsCameraOn
	s.persist()
	return copyDocument(s.doc)
}

// ResetGame replaces the whole document with defaults and persists the
// fresh state.
func (s *Store) ResetGame() *types.GameDocument {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.doc = DefaultDocument()
	s.persist()
	return copyDocument(s.doc)
}

// levelForExperience maps experience to a level using floor division, so
// negative experience can drive the level to zero or below. Preserved as-is
// rather than clamped; mission penalties rely on the raw arithmetic.
func levelForExperience(exp int) int {
	quotient := exp / 100
	if exp < 0 && exp%100 != 0 {
		quotient--
	}
	return quotient + 1
}

// sameCalendarDay compares two instants at date granularity in local time.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// copyDocument returns a deep copy of the document so snapshots never share
// nested slices or timestamps with live state.
func copyDocument(doc *types.GameDocument) *types.GameDocument {
	out := *doc

	out.User.Goals = append([]string(nil), doc.User.Goals...)
	out.User.JoinedAt = copyTime(doc.User.JoinedAt)
	out.Fito.LastInteraction = copyTime(doc.Fito.LastInteraction)
	out.Garden.Plants = append([]types.Plant(nil), doc.Garden.Plants...)
	out.Missions = copyMissions(doc.Missions)
	out.CompletedMissions = copyMissions(doc.CompletedMissions)
	out.Streak.LastActivity = copyTime(doc.Streak.LastActivity)
	out.Notifications = append([]types.Notification(nil), doc.Notifications...)
	out.Chat.Messages = append([]types.ChatMessage(nil), doc.Chat.Messages...)
	out.VideoCall.StartTime = copyTime(doc.VideoCall.StartTime)

	return &out
}

func copyMissions(missions []types.Mission) []types.Mission {
	out := append([]types.Mission(nil), missions...)
	for i := range out {
		out[i].CompletedAt = copyTime(out[i].CompletedAt)
	}
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
