package core

import (
	"errors"
	"strings"
	"time"
)

// Status values are stored verbatim in the jobs table. "Not Started" is the
// state every job begins in; the status editor only ever offers the other
// three, but all four are legal targets for an update.
const (
	StatusNotStarted Status = "Not Started"
	StatusNotReady   Status = "Not Ready"
	StatusCleaning   Status = "Cleaning"
	StatusReady      Status = "Ready"
)

type (
	Status string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Customer struct {
		ID          int64
		Name        string
		ContactInfo string
	}

	// Job is a single cleaning ticket. Customer is always fully populated
	// by the store's joined reads; there is no lazy traversal.
	Job struct {
		ID           int64
		Customer     Customer
		Type         string
		Size         string
		PhotoPath    string // empty when no photo was attached
		ReceivedDate Date
		DueDate      Date
		Price        Money
		Status       Status
	}
)

var (
	ErrEmptyCustomerName = errors.New("customer name is required")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidStatus     = errors.New("invalid status")
)

// IsValidation reports whether err is one of the domain validation errors
// raised at the intake boundary before any write.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyCustomerName) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidStatus)
}

// ParseStatus validates a raw status string against the closed enum.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.TrimSpace(s))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Valid reports whether the status is one of the four enumerated values.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusNotReady, StatusCleaning, StatusReady:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day. The time component is
// always midnight UTC so Date values compare and hash consistently.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// String renders the date back in YYYY-MM-DD form, the same representation
// the store persists.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
