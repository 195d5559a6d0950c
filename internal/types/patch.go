package types

import "time"

// PlantPatch is a partial update for a plant. Nil fields are left alone.
type PlantPatch struct {
	Type         *PlantType `json:"type,omitempty"`
	Growth       *int       `json:"growth,omitempty"`
	GridPosition *string    `json:"grid_position,omitempty"`
}

// AppointmentPatch is a partial update for the appointment record. Nil
// fields are left alone.
type AppointmentPatch struct {
	Scheduled   *bool      `json:"scheduled,omitempty"`
	DateTime    *time.Time `json:"date_time,omitempty"`
	Therapist   *string    `json:"therapist,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	Rescheduled *bool      `json:"rescheduled,omitempty"`
}
