// Package duration converts between HH:MM:SS text and whole seconds.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/verte-zerg/slotlog/internal/errors"
)

const expectedLayout = "HH:MM:SS"

// Parse decodes H:M:S into seconds. Each field must be an unsigned decimal
// number; minutes and seconds above 59 are folded in arithmetically.
func Parse(text string) (int64, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return 0, apperrors.NewFormat(text, expectedLayout)
	}
	var fields [3]int64
	for i, part := range parts {
		if part == "" || !isDigits(part) {
			return 0, apperrors.NewFormat(text, expectedLayout)
		}
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, apperrors.NewFormat(text, expectedLayout)
		}
		fields[i] = v
	}
	if fields[0] > math.MaxInt64/3600 || fields[1] > math.MaxInt64/60 {
		return 0, apperrors.NewFormat(text, expectedLayout)
	}
	total := fields[0] * 3600
	for _, add := range []int64{fields[1] * 60, fields[2]} {
		if total > math.MaxInt64-add {
			return 0, apperrors.NewFormat(text, expectedLayout)
		}
		total += add
	}
	return total, nil
}

// ParseClock accepts HH:MM or HH:MM:SS. The short form is what time inputs
// without a seconds field produce.
func ParseClock(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if strings.Count(text, ":") == 1 {
		return Parse(text + ":00")
	}
	return Parse(text)
}

// Format renders seconds as zero-padded HH:MM:SS. Hours are not wrapped into
// days, so values of 100h or more produce a wider hours field.
func Format(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hrs, mins, secs)
}

// Hours converts seconds to fractional hours.
func Hours(seconds int64) float64 {
	return float64(seconds) / 3600.0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
