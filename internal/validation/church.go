package validation

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxChurchNameLen = 200
	maxLocationLen   = 200
	maxTitleLen      = 200
)

// ValidateChurchName checks the tenant display name.
func ValidateChurchName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("church name is required")
	}
	if len(name) > maxChurchNameLen {
		return fmt.Errorf("church name must be at most %d characters", maxChurchNameLen)
	}
	return nil
}

// ValidateLocation checks an optional location string.
func ValidateLocation(location string) error {
	if len(location) > maxLocationLen {
		return fmt.Errorf("location must be at most %d characters", maxLocationLen)
	}
	return nil
}

// ValidateTitle checks a content title (announcement or event).
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("title must be at most %d characters", maxTitleLen)
	}
	return nil
}

// ValidateEventWindow checks that an event's times form a valid interval.
func ValidateEventWindow(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return fmt.Errorf("starts_at and ends_at are required")
	}
	if !endsAt.After(startsAt) {
		return fmt.Errorf("ends_at must be after starts_at")
	}
	return nil
}
