// Package validity holds the expiration math shared by the document
// lifecycle and the weekly sweep: validity-period conversion, expiration
// date computation, day counting and the reminder message buckets.
package validity

import (
	"fmt"
	"math"
	"time"

	"github.com/docfolio/backend/internal/models"
)

// AlertThresholdDays is the near-expiry window for reminder messages.
const AlertThresholdDays = 15

const dayDuration = 24 * time.Hour

// Days converts a validity period to days. Months count as 30 days and
// years as 365.25; the fraction is kept and resolved by duration
// arithmetic in ComputeExpiration.
func Days(value int, unit models.ValidityUnit) (float64, error) {
	switch unit {
	case models.UnitDay:
		return float64(value), nil
	case models.UnitMonth:
		return float64(value) * 30, nil
	case models.UnitYear:
		return float64(value) * 365.25, nil
	}
	return 0, fmt.Errorf("invalid validity unit %q", unit)
}

// ComputeExpiration returns expedition + the requisite's validity period.
func ComputeExpiration(expedition time.Time, value int, unit models.ValidityUnit) (time.Time, error) {
	days, err := Days(value, unit)
	if err != nil {
		return time.Time{}, err
	}
	return expedition.Add(time.Duration(days * float64(dayDuration))), nil
}

// DaysTo returns the whole days remaining until expiration, rounded up and
// clamped at zero once the date has passed.
func DaysTo(expiration, now time.Time) int {
	diff := expiration.Sub(now)
	if diff < 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Message renders the reminder line for one dated document. Three buckets:
// already expired, inside the alert window, and not yet due.
func Message(expiration time.Time, documentName string, now time.Time) string {
	diff := expiration.Sub(now)
	days := int(math.Ceil(diff.Hours() / 24))
	switch {
	case diff < 0:
		return fmt.Sprintf("Document '%s' expired %d days ago.", documentName, -days)
	case days <= AlertThresholdDays:
		return fmt.Sprintf("Warning: document '%s' expires within the next %d days or less.", documentName, AlertThresholdDays)
	default:
		return fmt.Sprintf("Document '%s' expires in %d days.", documentName, days)
	}
}

// NoExpirationMessage is the sweep line for documents without a date.
func NoExpirationMessage(documentName string) string {
	return fmt.Sprintf("Document '%s' has no expiration date.", documentName)
}
