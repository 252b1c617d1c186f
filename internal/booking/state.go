package booking

import (
	"errors"
	"sort"
	"time"

	"github.com/anikett35/MediMage/internal/identity"
)

const dayLayout = "2006-01-02"

var (
	ErrSignInRequired    = errors.New("sign in to book an appointment")
	ErrUnknownDoctor     = errors.New("unknown doctor")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrUnavailableSlot   = errors.New("time slot is not available")
	ErrDateTimeRequired  = errors.New("please select date and time for your appointment")
	ErrMissingFields     = errors.New("please fill in all fields")
	ErrInvalidPayment    = errors.New("payment method must be card or upi")
	ErrInvalidCardField  = errors.New("unknown card field")
	ErrNoBookingOpen     = errors.New("no booking in progress")
	ErrPaymentInProgress = errors.New("payment is being processed")
	ErrNoPaymentPending  = errors.New("no payment is being processed")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrUnknownAction     = errors.New("unknown action")
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Booking lives only in the client state; nothing is persisted.
type Booking struct {
	ID        string    `json:"id"`
	DoctorID  int       `json:"doctorId"`
	Doctor    string    `json:"doctor"`
	Specialty string    `json:"specialty"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	BookedAt  time.Time `json:"bookedAt"`
}

// State is everything the doctors page and the patient dashboard render from.
type State struct {
	User             *identity.User `json:"user"`
	SelectedDoctorID int            `json:"selectedDoctorId,omitempty"`
	ShowSignInPrompt bool           `json:"showSignInPrompt"`
	ShowBookingModal bool           `json:"showBookingModal"`
	Date             string         `json:"date"`
	Time             string         `json:"time"`
	PaymentMethod    PaymentMethod  `json:"paymentMethod"`
	Card             CardDetails    `json:"card"`
	Processing       bool           `json:"processing"`
	PaymentSuccess   bool           `json:"paymentSuccess"`
	Bookings         []Booking      `json:"bookings"`
}

func NewState() State {
	return State{
		PaymentMethod: PaymentCard,
		Bookings:      []Booking{},
	}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Bookings = append([]Booking{}, s.Bookings...)
	return out
}

// Upcoming returns bookings dated today or later, soonest first.
func (s State) Upcoming(now time.Time) []Booking {
	today := now.Format(dayLayout)
	var out []Booking
	for _, b := range s.Bookings {
		if b.Date >= today {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return slotKey(out[i]) < slotKey(out[j]) })
	return out
}

// Past returns bookings dated before today, most recent first.
func (s State) Past(now time.Time) []Booking {
	today := now.Format(dayLayout)
	var out []Booking
	for _, b := range s.Bookings {
		if b.Date < today {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return slotKey(out[i]) > slotKey(out[j]) })
	return out
}

func slotKey(b Booking) string {
	return b.Date + " " + b.Time
}
