package booking

import (
	"strconv"
	"strings"
	"time"
)

const (
	maxCardNumberDigits = 16
	maxExpiryDigits     = 4
	maxCVVDigits        = 4
)

// Reduce applies a to s and returns the next state. It is pure: s is never modified,
// and on error the returned state equals s.
func Reduce(s State, a Action) (State, error) {
	next := s.Clone()

	switch a.Type {
	case ActionAuthChanged:
		next.User = nil
		if a.User != nil {
			u := *a.User
			next.User = &u
		}
		if next.User != nil {
			next.ShowSignInPrompt = false
		} else if !next.Processing {
			next.ShowBookingModal = false
		}

	case ActionOpenBooking:
		if _, ok := FindDoctor(a.DoctorID); !ok {
			return s, ErrUnknownDoctor
		}
		next.SelectedDoctorID = a.DoctorID
		if next.User == nil {
			next.ShowSignInPrompt = true
			return next, nil
		}
		next.ShowBookingModal = true
		next.PaymentSuccess = false
		next.Date = a.At.AddDate(0, 0, 1).Format(dayLayout)

	case ActionSelectDate:
		if _, err := time.Parse(dayLayout, a.Date); err != nil {
			return s, ErrInvalidDate
		}
		next.Date = a.Date

	case ActionSelectTime:
		doctor, ok := FindDoctor(next.SelectedDoctorID)
		if !ok {
			return s, ErrNoBookingOpen
		}
		if !contains(doctor.Availability, a.Time) {
			return s, ErrUnavailableSlot
		}
		next.Time = a.Time

	case ActionSetPaymentMethod:
		if a.Method != PaymentCard && a.Method != PaymentUPI {
			return s, ErrInvalidPayment
		}
		next.PaymentMethod = a.Method

	case ActionSetCardField:
		switch a.Field {
		case CardNumber:
			next.Card.Number = digits(a.Value, maxCardNumberDigits)
		case CardExpiry:
			next.Card.Expiry = digits(a.Value, maxExpiryDigits)
		case CardCVV:
			next.Card.CVV = digits(a.Value, maxCVVDigits)
		case CardName:
			next.Card.Name = a.Value
		default:
			return s, ErrInvalidCardField
		}

	case ActionSubmitPayment:
		if !next.ShowBookingModal {
			return s, ErrNoBookingOpen
		}
		if next.Processing {
			return s, ErrPaymentInProgress
		}
		if next.Date == "" || next.Time == "" {
			return s, ErrDateTimeRequired
		}
		next.Processing = true
		next.PaymentSuccess = false

	case ActionPaymentSettled:
		if !next.Processing {
			return s, ErrNoPaymentPending
		}
		next.Processing = false
		next.PaymentSuccess = a.Success

	case ActionCloseModal:
		if next.Processing {
			return s, ErrPaymentInProgress
		}
		next.ShowBookingModal = false
		next.ShowSignInPrompt = false
		next.PaymentSuccess = false

	case ActionBook:
		if next.User == nil {
			return s, ErrSignInRequired
		}
		if a.DoctorID == 0 || a.Date == "" || a.Time == "" || a.Reason == "" {
			return s, ErrMissingFields
		}
		doctor, ok := FindDoctor(a.DoctorID)
		if !ok {
			return s, ErrUnknownDoctor
		}
		if _, err := time.Parse(dayLayout, a.Date); err != nil {
			return s, ErrInvalidDate
		}
		if !contains(TimeSlots, a.Time) {
			return s, ErrUnavailableSlot
		}
		if !contains(Reasons, a.Reason) {
			return s, ErrMissingFields
		}
		next.Bookings = append(next.Bookings, Booking{
			ID:        strconv.FormatInt(a.At.UnixMilli(), 10),
			DoctorID:  doctor.ID,
			Doctor:    doctor.Name,
			Specialty: doctor.Specialty,
			Date:      a.Date,
			Time:      a.Time,
			Reason:    a.Reason,
			Status:    "Confirmed",
			BookedAt:  a.At,
		})

	case ActionCancelBooking:
		idx := -1
		for i, b := range next.Bookings {
			if b.ID == a.BookingID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s, ErrBookingNotFound
		}
		next.Bookings = append(next.Bookings[:idx], next.Bookings[idx+1:]...)

	default:
		return s, ErrUnknownAction
	}

	return next, nil
}

// digits keeps at most max decimal digits of v and drops everything else.
func digits(v string, max int) string {
	var b strings.Builder
	for _, r := range v {
		if b.Len() == max {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
