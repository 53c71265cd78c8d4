package attendance

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without date or zone.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// String renders HH:MM, or HH:MM:SS when seconds are set.
func (t TimeOfDay) String() string {
	if t.Second == 0 {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
	return t.Clock()
}

// Clock renders HH:MM:SS, the storage form.
func (t TimeOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseOptionalTimeOfDay parses s, mapping nil to nil.
func ParseOptionalTimeOfDay(s *string) (*TimeOfDay, error) {
	if s == nil {
		return nil, nil
	}
	t, err := ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptionalTime(t *TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

// ClockValue returns the HH:MM:SS form of t, or nil.
func ClockValue(t *TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.Clock()
	return &s
}
