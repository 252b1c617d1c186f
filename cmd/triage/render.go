package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/anikett35/MediMage/internal/triage"
)

const timeLayout = "2006-01-02 15:04"

func render(out io.Writer, v triage.View) {
	fmt.Fprintf(out, "Contacts: %d total, %d new, %d high priority, %d replied\n",
		v.SubmissionStats.Total, v.SubmissionStats.New, v.SubmissionStats.High, v.SubmissionStats.Replied)
	fmt.Fprintf(out, "Appointments: %d total, %d upcoming, %d high priority, %d completed\n\n",
		v.AppointmentStats.Total, v.AppointmentStats.Upcoming, v.AppointmentStats.High, v.AppointmentStats.Completed)

	if v.Shown == 0 {
		fmt.Fprintf(out, "No %s found.\n", v.Tab)
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	switch v.Tab {
	case triage.TabContacts:
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSUBJECT\tDEPARTMENT\tPRIORITY\tSTATUS\tRECEIVED")
		for _, s := range v.Submissions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				s.ID, s.Name, s.Email, truncate(s.Subject, 40), s.Department, s.Priority, s.Status, formatTime(s.CreatedAt))
		}
	case triage.TabAppointments:
		fmt.Fprintln(tw, "ID\tPATIENT\tDOCTOR\tDEPARTMENT\tDATE\tPRIORITY\tSTATUS")
		for _, a := range v.Appointments {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				a.ID, a.PatientName, a.DoctorName, a.Department, formatTime(a.Date), a.Priority, a.Status)
		}
	}
	tw.Flush()

	fmt.Fprintf(out, "\nShowing %d of %d %s\n", v.Shown, v.Total, v.Tab)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
