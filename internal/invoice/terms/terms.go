// Package terms resolves payment terms into due dates.
package terms

import (
	"errors"
	"time"
)

// PaymentTerms is the closed set of supported due-date policies.
type PaymentTerms string

const (
	Net7         PaymentTerms = "NET7"
	Net15        PaymentTerms = "NET15"
	Net30        PaymentTerms = "NET30"
	Net45        PaymentTerms = "NET45"
	Net60        PaymentTerms = "NET60"
	DueOnReceipt PaymentTerms = "DUE_ON_RECEIPT"
)

var ErrUnknownTerms = errors.New("invalid_payment_terms")

// DateLayout is the wire format for invoice dates.
const DateLayout = "2006-01-02"

// Parse validates an externally supplied terms string. The enum is closed:
// unknown values are rejected rather than defaulted.
func Parse(value string) (PaymentTerms, error) {
	t := PaymentTerms(value)
	if _, err := t.Days(); err != nil {
		return "", err
	}
	return t, nil
}

// Days returns the calendar-day offset for the terms.
func (t PaymentTerms) Days() (int, error) {
	switch t {
	case Net7:
		return 7, nil
	case Net15:
		return 15, nil
	case Net30:
		return 30, nil
	case Net45:
		return 45, nil
	case Net60:
		return 60, nil
	case DueOnReceipt:
		return 0, nil
	default:
		return 0, ErrUnknownTerms
	}
}

// ResolveDueDate adds the terms offset to the issue date. Calendar-day
// addition with month/year rollover, not business days.
func ResolveDueDate(issueDate time.Time, t PaymentTerms) (time.Time, error) {
	days, err := t.Days()
	if err != nil {
		return time.Time{}, err
	}
	return issueDate.AddDate(0, 0, days), nil
}

// ParseDate parses an ISO date string (YYYY-MM-DD) in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
