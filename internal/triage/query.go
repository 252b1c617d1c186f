package triage

import (
	"sort"
	"strings"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/submission"
)

// All disables a status or priority filter.
const All = "all"

type Tab string

const (
	TabContacts     Tab = "contacts"
	TabAppointments Tab = "appointments"
)

func (t Tab) Valid() bool {
	return t == TabContacts || t == TabAppointments
}

type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortOldest   SortKey = "oldest"
	SortPriority SortKey = "priority"
)

// Filter is applied conjunctively. Empty fields behave like All.
type Filter struct {
	Search   string
	Status   string
	Priority string
}

func (f Filter) matchesStatus(status, fallback string) bool {
	if f.Status == "" || f.Status == All {
		return true
	}
	if status == "" {
		status = fallback
	}
	return status == f.Status
}

func (f Filter) matchesPriority(priority string) bool {
	if f.Priority == "" || f.Priority == All {
		return true
	}
	if priority == "" {
		priority = string(submission.PriorityMedium)
	}
	return priority == f.Priority
}

func (f Filter) matchesSearch(fields ...string) bool {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// PriorityWeight ranks high over medium over low. Anything else, urgent included, ranks as medium.
func PriorityWeight(priority string) int {
	switch priority {
	case "high":
		return 3
	case "low":
		return 1
	default:
		return 2
	}
}

// FilterSubmissions returns a new slice; items is not modified.
// An unknown sort key keeps the input order.
func FilterSubmissions(items []submission.Submission, f Filter, key SortKey) []submission.Submission {
	out := make([]submission.Submission, 0, len(items))
	for _, s := range items {
		if f.matchesSearch(s.Name, s.Email, s.Subject) &&
			f.matchesStatus(string(s.Status), string(submission.StatusNew)) &&
			f.matchesPriority(string(s.Priority)) {
			out = append(out, s)
		}
	}

	switch key {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return PriorityWeight(string(out[i].Priority)) > PriorityWeight(string(out[j].Priority))
		})
	}
	return out
}

// FilterAppointments is FilterSubmissions for appointments; newest and oldest order by appointment date.
func FilterAppointments(items []appointment.Appointment, f Filter, key SortKey) []appointment.Appointment {
	out := make([]appointment.Appointment, 0, len(items))
	for _, a := range items {
		if f.matchesSearch(a.PatientName, a.DoctorName, a.Department) &&
			f.matchesStatus(string(a.Status), string(appointment.StatusScheduled)) &&
			f.matchesPriority(string(a.Priority)) {
			out = append(out, a)
		}
	}

	switch key {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return PriorityWeight(string(out[i].Priority)) > PriorityWeight(string(out[j].Priority))
		})
	}
	return out
}
