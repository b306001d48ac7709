// Package models defines the domain entities of the recruitment registry:
// Contractor, Job and the assignment lifecycle that binds one to the other.
//
// A Job owns the relationship. Contractor.startDate is only ever written by
// the Job methods in this package, which keeps both sides consistent:
// a contractor is unavailable exactly while one open job holds it.
package models

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"

	e "github.com/gartstein/recruitment/internal/recruitment/errors"
	"github.com/google/uuid"
)

// DefaultIDLength is the length of identifiers generated when the caller
// does not supply one.
const DefaultIDLength = 5

// MaxIDLength is the longest identifier NewID can produce: a UUID encodes
// to 22 base64 characters once padding is removed.
const MaxIDLength = 22

// timeNow is the clock used for date validation. Tests replace it.
var timeNow = time.Now

var idReplacer = strings.NewReplacer("/", "", "+", "", "=", "")

// NewID returns a random identifier of the given length built from the
// base64 encoding of a UUID with '/', '+' and padding removed.
// A non-positive length, or one above MaxIDLength, is capped at MaxIDLength.
func NewID(length int) string {
	if length <= 0 || length > MaxIDLength {
		length = MaxIDLength
	}
	for {
		id := uuid.New()
		s := idReplacer.Replace(base64.StdEncoding.EncodeToString(id[:]))
		if len(s) >= length {
			return s[:length]
		}
	}
}

func validateIDLength(n int) error {
	if n <= 0 || n > MaxIDLength {
		return fmt.Errorf("%w: ID length must be between 1 and %d, got %d", e.ErrValidation, MaxIDLength, n)
	}
	return nil
}

func validateString(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s cannot be empty", e.ErrValidation, field)
	}
	return trimmed, nil
}

func validatePositive(value float64, field string) (float64, error) {
	if !(value > 0) || math.IsInf(value, 1) {
		return 0, fmt.Errorf("%w: %s must be greater than zero", e.ErrValidation, field)
	}
	return value, nil
}

// validateDate requires the calendar day of d to be strictly after today.
func validateDate(d time.Time) (time.Time, error) {
	if d.IsZero() {
		return time.Time{}, fmt.Errorf("%w: job date is required", e.ErrValidation)
	}
	now := timeNow()
	if !dayOf(d, now.Location()).After(dayOf(now, now.Location())) {
		return time.Time{}, fmt.Errorf("%w: job date must be after %s",
			e.ErrValidation, now.Format("02/01/2006"))
	}
	return d, nil
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// roundMoney rounds half away from zero to two decimals.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
