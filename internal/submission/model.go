package submission

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

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Department string

const (
	DepartmentGeneral      Department = "general"
	DepartmentAppointments Department = "appointments"
	DepartmentBilling      Department = "billing"
	DepartmentTechnical    Department = "technical"
	DepartmentFeedback     Department = "feedback"
	DepartmentPartnerships Department = "partnerships"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentGeneral, DepartmentAppointments, DepartmentBilling,
		DepartmentTechnical, DepartmentFeedback, DepartmentPartnerships:
		return true
	}
	return false
}

// Status moves freely between the three values; no transition is rejected.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type Submission struct {
	bun.BaseModel `bun:"table:submissions,alias:sub"`

	ID         string     `bun:"id,pk,type:uuid" json:"id"`
	Name       string     `bun:"name,notnull" json:"name"`
	Email      string     `bun:"email,notnull" json:"email"`
	Phone      string     `bun:"phone" json:"phone,omitempty"`
	Subject    string     `bun:"subject,notnull" json:"subject"`
	Message    string     `bun:"message,type:text,notnull" json:"message"`
	Priority   Priority   `bun:"priority,notnull,default:'medium'" json:"priority"`
	Department Department `bun:"department,notnull,default:'general'" json:"department"`
	Status     Status     `bun:"status,notnull,default:'new'" json:"status"`
	CreatedAt  time.Time  `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time  `bun:"updated_at,notnull" json:"updatedAt"`
}

// CreateRequest is the inbound contact form.
type CreateRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject" validate:"required"`
	Message    string `json:"message" validate:"required"`
	Priority   string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Department string `json:"department" validate:"omitempty,oneof=general appointments billing technical feedback partnerships"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ListResponse struct {
	Total int          `json:"total"`
	Items []Submission `json:"items"`
}

type DeleteAllResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// CreatedEvent is published after a submission has been stored.
type CreatedEvent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject"`
	Department string    `json:"department"`
	Priority   string    `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ContactEmail is the address a confirmation would be sent to.
func (e CreatedEvent) ContactEmail() string {
	return e.Email
}

func newCreatedEvent(s *Submission) CreatedEvent {
	return CreatedEvent{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Subject:    s.Subject,
		Department: string(s.Department),
		Priority:   string(s.Priority),
		CreatedAt:  s.CreatedAt,
	}
}
