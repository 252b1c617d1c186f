package triage

import (
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/submission"
)

// SubmissionStats is computed over the full collection, never the filtered view.
type SubmissionStats struct {
	Total   int `json:"total"`
	New     int `json:"new"`
	High    int `json:"high"`
	Replied int `json:"replied"`
}

type AppointmentStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	High      int `json:"high"`
	Completed int `json:"completed"`
}

// ComputeSubmissionStats counts resolved submissions as replied.
func ComputeSubmissionStats(items []submission.Submission) SubmissionStats {
	stats := SubmissionStats{Total: len(items)}
	for _, s := range items {
		switch s.Status {
		case submission.StatusNew, "":
			stats.New++
		case submission.StatusResolved:
			stats.Replied++
		}
		if s.Priority == submission.PriorityHigh {
			stats.High++
		}
	}
	return stats
}

func ComputeAppointmentStats(items []appointment.Appointment, now time.Time) AppointmentStats {
	stats := AppointmentStats{Total: len(items)}
	for _, a := range items {
		if a.Date.After(now) {
			stats.Upcoming++
		}
		if a.Priority == appointment.PriorityHigh {
			stats.High++
		}
		if a.Status == appointment.StatusCompleted {
			stats.Completed++
		}
	}
	return stats
}
