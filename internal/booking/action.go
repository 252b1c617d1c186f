package booking

import (
	"time"

	"github.com/anikett35/MediMage/internal/identity"
)

type ActionType string

const (
	ActionAuthChanged      ActionType = "authChanged"
	ActionOpenBooking      ActionType = "openBooking"
	ActionSelectDate       ActionType = "selectDate"
	ActionSelectTime       ActionType = "selectTime"
	ActionSetPaymentMethod ActionType = "setPaymentMethod"
	ActionSetCardField     ActionType = "setCardField"
	ActionSubmitPayment    ActionType = "submitPayment"
	ActionPaymentSettled   ActionType = "paymentSettled"
	ActionCloseModal       ActionType = "closeModal"
	ActionBook             ActionType = "book"
	ActionCancelBooking    ActionType = "cancelBooking"
)

type CardField string

const (
	CardNumber CardField = "number"
	CardName   CardField = "name"
	CardExpiry CardField = "expiry"
	CardCVV    CardField = "cvv"
)

// Action is a single event. Only the fields its Type reads are meaningful.
// At is the moment the event happened; Reduce never reads the clock itself.
type Action struct {
	Type      ActionType     `json:"type"`
	User      *identity.User `json:"user,omitempty"`
	DoctorID  int            `json:"doctorId,omitempty"`
	Date      string         `json:"date,omitempty"`
	Time      string         `json:"time,omitempty"`
	Method    PaymentMethod  `json:"method,omitempty"`
	Field     CardField      `json:"field,omitempty"`
	Value     string         `json:"value,omitempty"`
	Success   bool           `json:"success,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	BookingID string         `json:"bookingId,omitempty"`
	At        time.Time      `json:"at"`
}

func AuthChanged(user *identity.User) Action {
	return Action{Type: ActionAuthChanged, User: user}
}

func OpenBooking(doctorID int, at time.Time) Action {
	return Action{Type: ActionOpenBooking, DoctorID: doctorID, At: at}
}

func SelectDate(date string) Action {
	return Action{Type: ActionSelectDate, Date: date}
}

func SelectTime(slot string) Action {
	return Action{Type: ActionSelectTime, Time: slot}
}

func SetPaymentMethod(method PaymentMethod) Action {
	return Action{Type: ActionSetPaymentMethod, Method: method}
}

func SetCardField(field CardField, value string) Action {
	return Action{Type: ActionSetCardField, Field: field, Value: value}
}

func SubmitPayment() Action {
	return Action{Type: ActionSubmitPayment}
}

func PaymentSettled(success bool) Action {
	return Action{Type: ActionPaymentSettled, Success: success}
}

func CloseModal() Action {
	return Action{Type: ActionCloseModal}
}

func Book(doctorID int, date, slot, reason string, at time.Time) Action {
	return Action{Type: ActionBook, DoctorID: doctorID, Date: date, Time: slot, Reason: reason, At: at}
}

func CancelBooking(id string) Action {
	return Action{Type: ActionCancelBooking, BookingID: id}
}
