package triage_test

import (
	"testing"
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/submission"
	"github.com/anikett35/MediMage/internal/triage"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func sub(id string, priority submission.Priority, status submission.Status, age time.Duration) submission.Submission {
	return submission.Submission{
		ID:        id,
		Name:      "Patient " + id,
		Email:     id + "@example.com",
		Subject:   "Subject " + id,
		Priority:  priority,
		Status:    status,
		CreatedAt: t0.Add(-age),
	}
}

func ids(items []submission.Submission) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 3, triage.PriorityWeight("high"))
	assert.Equal(t, 2, triage.PriorityWeight("medium"))
	assert.Equal(t, 1, triage.PriorityWeight("low"))
	assert.Equal(t, 2, triage.PriorityWeight("urgent"))
	assert.Equal(t, 2, triage.PriorityWeight(""))
}

func TestFilterSubmissions_Sort(t *testing.T) {
	items := []submission.Submission{
		sub("low", submission.PriorityLow, submission.StatusNew, 4*time.Hour),
		sub("urgent", submission.PriorityUrgent, submission.StatusNew, 1*time.Hour),
		sub("medium", submission.PriorityMedium, submission.StatusNew, 3*time.Hour),
		sub("high", submission.PriorityHigh, submission.StatusNew, 2*time.Hour),
	}

	t.Run("Priority", func(t *testing.T) {
		got := triage.FilterSubmissions(items, triage.Filter{}, triage.SortPriority)
		assert.Equal(t, []string{"high", "urgent", "medium", "low"}, ids(got))
	})

	t.Run("PriorityAbsentSortsAsMedium", func(t *testing.T) {
		withBlank := append([]submission.Submission{sub("blank", "", submission.StatusNew, 0)}, items...)
		got := triage.FilterSubmissions(withBlank, triage.Filter{}, triage.SortPriority)
		assert.Equal(t, []string{"high", "blank", "urgent", "medium", "low"}, ids(got))
	})

	t.Run("Newest", func(t *testing.T) {
		got := triage.FilterSubmissions(items, triage.Filter{}, triage.SortNewest)
		assert.Equal(t, []string{"urgent", "high", "medium", "low"}, ids(got))
	})

	t.Run("Oldest", func(t *testing.T) {
		got := triage.FilterSubmissions(items, triage.Filter{}, triage.SortOldest)
		assert.Equal(t, []string{"low", "medium", "high", "urgent"}, ids(got))
	})

	t.Run("UnknownKeepsInputOrder", func(t *testing.T) {
		got := triage.FilterSubmissions(items, triage.Filter{}, "alphabetical")
		assert.Equal(t, []string{"low", "urgent", "medium", "high"}, ids(got))
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		triage.FilterSubmissions(items, triage.Filter{}, triage.SortPriority)
		assert.Equal(t, "low", items[0].ID)
	})

	t.Run("Idempotent", func(t *testing.T) {
		f := triage.Filter{Search: "patient", Status: triage.All, Priority: triage.All}
		for _, key := range []triage.SortKey{triage.SortNewest, triage.SortOldest, triage.SortPriority} {
			once := triage.FilterSubmissions(items, f, key)
			twice := triage.FilterSubmissions(items, f, key)
			assert.Equal(t, once, twice)
			assert.Equal(t, once, triage.FilterSubmissions(once, f, key))
		}
	})
}

func TestFilterSubmissions_Predicates(t *testing.T) {
	items := []submission.Submission{
		sub("a", submission.PriorityHigh, submission.StatusNew, 0),
		sub("b", submission.PriorityLow, submission.StatusResolved, time.Hour),
		sub("c", "", "", 2*time.Hour),
	}
	items[0].Subject = "Billing refund"

	cases := []struct {
		name   string
		filter triage.Filter
		want   []string
	}{
		{"All", triage.Filter{Status: triage.All, Priority: triage.All}, []string{"a", "b", "c"}},
		{"SearchSubjectCaseInsensitive", triage.Filter{Search: "REFUND", Status: triage.All}, []string{"a"}},
		{"SearchEmail", triage.Filter{Search: "b@example"}, []string{"b"}},
		{"SearchNoMatch", triage.Filter{Search: "cardiology"}, []string{}},
		{"StatusMissingCountsAsNew", triage.Filter{Status: "new"}, []string{"a", "c"}},
		{"StatusResolved", triage.Filter{Status: "resolved"}, []string{"b"}},
		{"PriorityMissingCountsAsMedium", triage.Filter{Priority: "medium"}, []string{"c"}},
		{"Conjunctive", triage.Filter{Status: "new", Priority: "high"}, []string{"a"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := triage.FilterSubmissions(items, tc.filter, triage.SortNewest)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFilterAppointments(t *testing.T) {
	items := []appointment.Appointment{
		{ID: "1", PatientName: "Ravi", DoctorName: "Dr. Chen", Department: "Neurology", Priority: appointment.PriorityLow, Status: appointment.StatusScheduled, Date: t0.Add(48 * time.Hour)},
		{ID: "2", PatientName: "Asha", DoctorName: "Dr. Johnson", Department: "Cardiology", Priority: appointment.PriorityHigh, Status: appointment.StatusCompleted, Date: t0.Add(-48 * time.Hour)},
		{ID: "3", PatientName: "Meera", DoctorName: "Dr. Williams", Department: "Pediatrics", Date: t0},
	}
	aptIDs := func(items []appointment.Appointment) []string {
		out := make([]string, len(items))
		for i, a := range items {
			out[i] = a.ID
		}
		return out
	}

	assert.Equal(t, []string{"1", "3", "2"}, aptIDs(triage.FilterAppointments(items, triage.Filter{}, triage.SortNewest)))
	assert.Equal(t, []string{"2", "3", "1"}, aptIDs(triage.FilterAppointments(items, triage.Filter{}, triage.SortOldest)))
	assert.Equal(t, []string{"2", "3", "1"}, aptIDs(triage.FilterAppointments(items, triage.Filter{}, triage.SortPriority)))
	assert.Equal(t, []string{"2"}, aptIDs(triage.FilterAppointments(items, triage.Filter{Search: "johnson"}, triage.SortNewest)))
	assert.Equal(t, []string{"3"}, aptIDs(triage.FilterAppointments(items, triage.Filter{Search: "pediatr"}, triage.SortNewest)))
	assert.Equal(t, []string{"1", "3"}, aptIDs(triage.FilterAppointments(items, triage.Filter{Status: "scheduled"}, triage.SortNewest)))
}
