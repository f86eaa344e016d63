// Package cliniclock maps wall-clock "HH:MM" strings to minute offsets
// relative to a scenario start time, so dose times can be entered as times
// of day instead of raw minute counts.
package cliniclock

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// ToMinutes converts a wall-clock time to minutes relative to start. A time
// earlier than start yields a negative offset; an empty clock string means
// the scenario origin and yields 0.
func ToMinutes(clock, start string) (int, error) {
	if clock == "" {
		return 0, nil
	}
	c, err := parseClock(clock)
	if err != nil {
		return 0, err
	}
	s, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	return c - s, nil
}

// FromMinutes renders the wall-clock time that lies minutes after start,
// wrapping modulo 24 hours. Negative totals wrap forward onto the previous
// day's clock face.
func FromMinutes(start string, minutes int) (string, error) {
	s, err := parseClock(start)
	if err != nil {
		return "", err
	}
	total := ((s+minutes)%minutesPerDay + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}
