package triage_test

import (
	"testing"
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/submission"
	"github.com/anikett35/MediMage/internal/triage"

	"github.com/stretchr/testify/assert"
)

func TestComputeSubmissionStats(t *testing.T) {
	items := []submission.Submission{
		sub("a", submission.PriorityHigh, submission.StatusNew, 0),
		sub("b", submission.PriorityHigh, submission.StatusInProgress, 0),
		sub("c", submission.PriorityLow, submission.StatusResolved, 0),
		sub("d", submission.PriorityUrgent, "", 0),
	}

	assert.Equal(t, triage.SubmissionStats{Total: 4, New: 2, High: 2, Replied: 1}, triage.ComputeSubmissionStats(items))
	assert.Equal(t, triage.SubmissionStats{}, triage.ComputeSubmissionStats(nil))
}

func TestComputeAppointmentStats(t *testing.T) {
	items := []appointment.Appointment{
		{Date: t0.Add(time.Hour), Priority: appointment.PriorityHigh, Status: appointment.StatusScheduled},
		{Date: t0.Add(-time.Hour), Priority: appointment.PriorityLow, Status: appointment.StatusCompleted},
		{Date: t0, Priority: appointment.PriorityMedium, Status: appointment.StatusCancelled},
	}

	assert.Equal(t, triage.AppointmentStats{Total: 3, Upcoming: 1, High: 1, Completed: 1},
		triage.ComputeAppointmentStats(items, t0))
}
