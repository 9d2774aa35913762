package status

import "fmt"

// BarStatus is the operational status of a bar as serialized on the wire.
type BarStatus string

const (
	OpeningSoon BarStatus = "opening_soon"
	Open        BarStatus = "open"
	ClosingSoon BarStatus = "closing_soon"
	Closed      BarStatus = "closed"
)

// Parse converts a wire token into a BarStatus.
func Parse(raw string) (BarStatus, error) {
	s := BarStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown bar status: %q", raw)
	}
	return s, nil
}

// Valid reports whether s is one of the four known statuses.
func (s BarStatus) Valid() bool {
	switch s {
	case OpeningSoon, Open, ClosingSoon, Closed:
		return true
	}
	return false
}

// Display returns a human-readable phrase for notification messages.
func (s BarStatus) Display() string {
	switch s {
	case OpeningSoon:
		return "opening soon"
	case Open:
		return "open"
	case ClosingSoon:
		return "closing soon"
	default:
		return "closed"
	}
}
