package triage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/submission"
)

// Backend is the store as the console sees it. *Client implements it.
type Backend interface {
	ListSubmissions(ctx context.Context) ([]submission.Submission, error)
	DeleteSubmission(ctx context.Context, id string) error
	DeleteAllSubmissions(ctx context.Context) (int64, error)
	UpdateSubmissionStatus(ctx context.Context, id, status string) error

	ListAppointments(ctx context.Context) ([]appointment.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	DeleteAllAppointments(ctx context.Context) (int64, error)
	UpdateAppointmentStatus(ctx context.Context, id, status string) error
}

// View is a snapshot of what the console shows.
type View struct {
	Tab              Tab
	Filter           Filter
	Sort             SortKey
	Submissions      []submission.Submission
	Appointments     []appointment.Appointment
	SubmissionStats  SubmissionStats
	AppointmentStats AppointmentStats
	// Shown and Total refer to the active tab.
	Shown int
	Total int
	Err   error
}

// Console keeps the last loaded collections and derives filtered views from them.
// Mutations go to the backend and are followed by a reload; local state is never
// patched optimistically.
type Console struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time

	mu           sync.Mutex
	tab          Tab
	filter       Filter
	sortKey      SortKey
	submissions  []submission.Submission
	appointments []appointment.Appointment
	seq          map[Tab]uint64
	loadErr      map[Tab]error
}

func NewConsole(backend Backend, logger *slog.Logger) *Console {
	return &Console{
		backend: backend,
		logger:  logger,
		now:     time.Now,
		tab:     TabContacts,
		filter:  Filter{Status: All, Priority: All},
		sortKey: SortNewest,
		seq:     make(map[Tab]uint64),
		loadErr: make(map[Tab]error),
	}
}

func (c *Console) SetTab(tab Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("unknown tab %q", tab)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = tab
	return nil
}

func (c *Console) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

func (c *Console) SetSort(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortKey = key
}

// Load fetches one tab. A failed load keeps the previous collection and records
// the error for the view. A response that arrives after a newer load for the same
// tab was issued is dropped.
func (c *Console) Load(ctx context.Context, tab Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("unknown tab %q", tab)
	}

	c.mu.Lock()
	c.seq[tab]++
	seq := c.seq[tab]
	c.mu.Unlock()

	var (
		submissions  []submission.Submission
		appointments []appointment.Appointment
		err          error
	)
	switch tab {
	case TabContacts:
		submissions, err = c.backend.ListSubmissions(ctx)
	case TabAppointments:
		appointments, err = c.backend.ListAppointments(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq[tab] {
		c.logger.DebugContext(ctx, "dropping stale response", "tab", tab, "seq", seq, "latest", c.seq[tab])
		return nil
	}

	if err != nil {
		c.loadErr[tab] = err
		c.logger.WarnContext(ctx, "failed to load", "tab", tab, "error", err)
		return err
	}

	delete(c.loadErr, tab)
	switch tab {
	case TabContacts:
		c.submissions = submissions
	case TabAppointments:
		c.appointments = appointments
	}
	return nil
}

// Refresh loads both tabs and returns the first error.
func (c *Console) Refresh(ctx context.Context) error {
	errContacts := c.Load(ctx, TabContacts)
	errAppointments := c.Load(ctx, TabAppointments)
	if errContacts != nil {
		return errContacts
	}
	return errAppointments
}

func (c *Console) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Tab:              c.tab,
		Filter:           c.filter,
		Sort:             c.sortKey,
		Submissions:      FilterSubmissions(c.submissions, c.filter, c.sortKey),
		Appointments:     FilterAppointments(c.appointments, c.filter, c.sortKey),
		SubmissionStats:  ComputeSubmissionStats(c.submissions),
		AppointmentStats: ComputeAppointmentStats(c.appointments, c.now()),
		Err:              c.loadErr[c.tab],
	}
	switch c.tab {
	case TabContacts:
		v.Shown, v.Total = len(v.Submissions), len(c.submissions)
	case TabAppointments:
		v.Shown, v.Total = len(v.Appointments), len(c.appointments)
	}
	return v
}

func (c *Console) DeleteSubmission(ctx context.Context, id string) error {
	if err := c.backend.DeleteSubmission(ctx, id); err != nil {
		return err
	}
	return c.Load(ctx, TabContacts)
}

// DeleteAllSubmissions assumes the caller has already confirmed with the operator.
func (c *Console) DeleteAllSubmissions(ctx context.Context) (int64, error) {
	count, err := c.backend.DeleteAllSubmissions(ctx)
	if err != nil {
		return 0, err
	}
	return count, c.Load(ctx, TabContacts)
}

func (c *Console) UpdateSubmissionStatus(ctx context.Context, id, status string) error {
	if err := c.backend.UpdateSubmissionStatus(ctx, id, status); err != nil {
		return err
	}
	return c.Load(ctx, TabContacts)
}

// MarkReplied records that the operator answered the message.
func (c *Console) MarkReplied(ctx context.Context, id string) error {
	return c.UpdateSubmissionStatus(ctx, id, string(submission.StatusResolved))
}

func (c *Console) DeleteAppointment(ctx context.Context, id string) error {
	if err := c.backend.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	return c.Load(ctx, TabAppointments)
}

func (c *Console) DeleteAllAppointments(ctx context.Context) (int64, error) {
	count, err := c.backend.DeleteAllAppointments(ctx)
	if err != nil {
		return 0, err
	}
	return count, c.Load(ctx, TabAppointments)
}

func (c *Console) UpdateAppointmentStatus(ctx context.Context, id, status string) error {
	if err := c.backend.UpdateAppointmentStatus(ctx, id, status); err != nil {
		return err
	}
	return c.Load(ctx, TabAppointments)
}
