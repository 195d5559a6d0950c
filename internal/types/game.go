package types

import "time"

// Mood is Fito's displayed emotional state.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodExcited Mood = "excited"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodWorried Mood = "worried"
)

// PlantType identifies the sprite family a plant renders as.
type PlantType string

const (
	PlantFlower PlantType = "flower"
	PlantTree   PlantType = "tree"
	PlantLeaf   PlantType = "leaf"
)

// MissionType categorizes who assigned a mission and how it recurs.
type MissionType string

const (
	MissionDaily     MissionType = "daily"
	MissionTherapy   MissionType = "therapy"
	MissionChallenge MissionType = "challenge"
	MissionOther     MissionType = "other"
)

// Appointment statuses.
const (
	AppointmentScheduled  = "scheduled"
	AppointmentInProgress = "in-progress"
	AppointmentCompleted  = "completed"
	AppointmentCancelled  = "cancelled"
)

// Video call connection statuses.
const (
	ConnectionConnecting   = "connecting"
	ConnectionConnected    = "connected"
	ConnectionPoor         = "poor"
	ConnectionDisconnected = "disconnected"
)

// GameDocument is the single root state object holding all user and game
// data. It is persisted as one JSON document and replaced wholesale on
// every mutation.
type GameDocument struct {
	User              User           `json:"user"`
	Fito              Fito           `json:"fito"`
	Garden            Garden         `json:"garden"`
	Missions          []Mission      `json:"missions"`
	CompletedMissions []Mission      `json:"completed_missions"`
	Streak            Streak         `json:"streak"`
	Stats             Stats          `json:"stats"`
	Notifications     []Notification `json:"notifications"`
	Appointment       Appointment    `json:"appointment"`
	Chat              Chat           `json:"chat"`
	VideoCall         VideoCall      `json:"video_call"`
}

// User holds profile data collected during onboarding.
type User struct {
	Name                string     `json:"name"`
	Goals               []string   `json:"goals"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	JoinedAt            *time.Time `json:"joined_at"`
}

// Fito is the virtual companion.
type Fito struct {
	Mood            Mood         `json:"mood"`
	Level           int          `json:"level"`
	Experience      int          `json:"experience"`
	LastInteraction *time.Time   `json:"last_interaction"`
	GridPosition    GridPosition `json:"grid_position"`
}

// GridPosition locates Fito on the garden grid. Bounds are enforced by the
// UI, not the store.
type GridPosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Garden holds the plant collection and planting/movement mode.
type Garden struct {
	Plants []Plant `json:"plants"`
	Level  int     `json:"level"`
	// TotalPlants counts plants ever created and never decreases, so it
	// diverges from len(Plants) if removals are ever introduced.
	TotalPlants int `json:"total_plants"`
	// IsMovementMode false means plant mode.
	IsMovementMode bool `json:"is_movement_mode"`
}

// Plant is a single garden plant. GridPosition is a "row-col" cell key,
// unique among plants when set; empty means unplaced.
type Plant struct {
	ID           string    `json:"id"`
	Type         PlantType `json:"type"`
	Growth       int       `json:"growth"`
	GridPosition string    `json:"grid_position,omitempty"`
}

// Mission is a therapy task. Status stays "pending" while the mission is in
// the active collection; CompletedAt is set when it moves to the archive.
type Mission struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        MissionType `json:"type"`
	Points      int         `json:"points"`
	Difficulty  string      `json:"difficulty,omitempty"`
	Status      string      `json:"status"`
	AssignedBy  string      `json:"assigned_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// Streak tracks consecutive-day activity. LastActivity is compared at
// calendar-date granularity, never by exact timestamp.
type Streak struct {
	Current      int        `json:"current"`
	Longest      int        `json:"longest"`
	LastActivity *time.Time `json:"last_activity"`
}

// Stats are lifetime counters, only ever incremented outside a full reset.
type Stats struct {
	SessionsAttended  int `json:"sessions_attended"`
	MissionsCompleted int `json:"missions_completed"`
	WeeklyGoalMet     int `json:"weekly_goal_met"`
	TotalPoints       int `json:"total_points"`
}

// Notification is an append-only entry whose read flag only flips to true.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Appointment is the next scheduled therapy session.
type Appointment struct {
	Scheduled   bool      `json:"scheduled"`
	DateTime    time.Time `json:"date_time"`
	Therapist   string    `json:"therapist"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Duration    int       `json:"duration"`
	Rescheduled bool      `json:"rescheduled"`
}

// Chat is the assistant conversation panel state. TurnCount counts
// user-authored messages only; the UI enforces the 20-turn cap.
type Chat struct {
	IsOpen    bool          `json:"is_open"`
	Messages  []ChatMessage `json:"messages"`
	TurnCount int           `json:"turn_count"`
	IsLoading bool          `json:"is_loading"`
}

// ChatMessage is one turn in the assistant conversation.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error,omitempty"`
}

// VideoCall is the live session state. Duration is ticked externally by the
// call UI.
type VideoCall struct {
	IsActive         bool       `json:"is_active"`
	StartTime        *time.Time `json:"start_time"`
	Duration         int        `json:"duration"`
	IsMuted          bool       `json:"is_muted"`
	IsCameraOn       bool       `json:"is_camera_on"`
	ConnectionStatus string     `json:"connection_status"`
}
