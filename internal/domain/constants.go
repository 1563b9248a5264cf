package domain

// Default configuration values
const (
	DefaultAdvanceBookingDays      = 30 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
	DefaultMaxMessageLength        = 2000
	DefaultTimezone                = "UTC"
)

// Business validation constants
const (
	MaxSlotsPerDay          = 48
	MaxDeclineReasonLength  = 500
	MaxEmailLength          = 254
	MinAdvanceBookingDays   = 0
	MaxAdvanceBookingDays   = 365   // 1 year
	MaxBookingNoticeMinutes = 10080 // 1 week
)

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Причины отказа, которые попадают в журнал отклонённых заявок
const (
	ReasonSlotAlreadyBooked = "slot already booked"
	ReasonSlotNotOpen       = "slot is not open for booking"
	ReasonInvalidEmail      = "invalid email format"
	ReasonInvalidTime       = "invalid time slot format"
	ReasonInvalidDate       = "invalid booking date"
	ReasonDateOutOfRange    = "booking date is out of the allowed range"
	ReasonTooLateToBook     = "too late to book this slot"
	ReasonMessageTooLong    = "message is too long"
	ReasonMalformedBody     = "malformed request body"
)

// ActiveUrgentStatuses статусы заявок, которые ещё можно отклонить
var ActiveUrgentStatuses = []UrgentStatus{
	UrgentStatusPending,
	UrgentStatusReviewed,
}
