package appointment

import (
	"time"

	"github.com/uptrace/bun"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	bun.BaseModel `bun:"table:appointments,alias:apt"`

	ID           string    `bun:"id,pk,type:uuid" json:"id"`
	PatientName  string    `bun:"patient_name,notnull" json:"patientName"`
	PatientEmail string    `bun:"patient_email,notnull" json:"patientEmail"`
	PatientPhone string    `bun:"patient_phone" json:"patientPhone,omitempty"`
	DoctorName   string    `bun:"doctor_name,notnull" json:"doctorName"`
	Department   string    `bun:"department,notnull" json:"department"`
	Date         time.Time `bun:"date,notnull" json:"date"`
	Priority     Priority  `bun:"priority,notnull,default:'medium'" json:"priority"`
	Status       Status    `bun:"status,notnull,default:'scheduled'" json:"status"`
	Notes        string    `bun:"notes,type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// CreateRequest accepts date as RFC 3339 or a plain YYYY-MM-DD day.
type CreateRequest struct {
	PatientName  string `json:"patientName" validate:"required"`
	PatientEmail string `json:"patientEmail" validate:"required,email"`
	PatientPhone string `json:"patientPhone"`
	DoctorName   string `json:"doctorName" validate:"required"`
	Department   string `json:"department" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Priority     string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Notes        string `json:"notes"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ListResponse struct {
	Total int           `json:"total"`
	Items []Appointment `json:"items"`
}

type DeleteAllResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
