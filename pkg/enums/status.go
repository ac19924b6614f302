package enums

import "fmt"

// Status mirrors the Status select options of the remote subscription
// database. The schema is single-select; no multi-valued variant exists.
type Status string

const (
	StatusActive   Status = "Active"
	StatusTrial    Status = "Trial"
	StatusInactive Status = "Inactive"
)

var validStatuses = []Status{
	StatusActive,
	StatusTrial,
	StatusInactive,
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s Status) IsValid() bool {
	for _, candidate := range validStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// DisplayLabel returns the label shown on list rows.
func (s Status) DisplayLabel() string {
	switch s {
	case StatusTrial:
		return "On trial"
	case StatusInactive:
		return "Not in use"
	default:
		return string(s)
	}
}

// ParseStatus converts raw input into a Status.
func ParseStatus(value string) (Status, error) {
	for _, candidate := range validStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", value)
}
