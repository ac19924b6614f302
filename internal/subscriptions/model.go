package subscriptions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrackhq/subtrack-backend/pkg/enums"
)

// dateLayout is the calendar-date wire format; no time component.
const dateLayout = "2006-01-02"

// placeholderName renders in place of a record whose title is empty or
// could not be decoded.
const placeholderName = "(No name)"

// trialLeadDays is the conventional free-trial length applied when a new
// record omits its first billing date.
const trialLeadDays = 14

// Subscription is the canonical in-memory record. ID is assigned by the
// remote store and is empty until the record has been created. A zero
// Price means the remote record carries no price; a nil StartDate means
// no first billing date has been chosen.
type Subscription struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	BillingCycle enums.BillingCycle
	Status       enums.Status
	UseCase      enums.UseCase
	StartDate    *time.Time
}

// PriceDisplay formats the price the way list rows show it, with two
// fraction digits. Records without a price display nothing.
func (s Subscription) PriceDisplay() string {
	if s.Price.IsZero() {
		return ""
	}
	return "US$" + s.Price.StringFixed(2)
}

// StartDateString returns the wire-format date, or "" when unset.
func (s Subscription) StartDateString() string {
	if s.StartDate == nil {
		return ""
	}
	return s.StartDate.Format(dateLayout)
}

// Input carries the raw form values for one submit. Price stays a string
// until validation parses it; StartDate is nil while the user has not
// chosen a date.
type Input struct {
	Name         string
	Price        string
	BillingCycle string
	Status       string
	UseCase      string
	StartDate    *time.Time
}

// DefaultStartDate returns today plus the trial lead, truncated to a
// calendar date.
func DefaultStartDate(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day+trialLeadDays, 0, 0, 0, 0, time.UTC)
}
