package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rshade/wattfocus/internal/offer"
)

// DayColor is the Tempo classification of a calendar day.
type DayColor string

// Tempo day colors.
const (
	ColorBlue  DayColor = "BLUE"
	ColorWhite DayColor = "WHITE"
	ColorRed   DayColor = "RED"
)

// ErrUnknownDayColor is returned by ParseDayColor for unrecognized input.
var ErrUnknownDayColor = errors.New("unknown day color")

// ParseDayColor accepts English and French color names in any case.
func ParseDayColor(s string) (DayColor, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BLUE", "BLEU":
		return ColorBlue, nil
	case "WHITE", "BLANC":
		return ColorWhite, nil
	case "RED", "ROUGE":
		return ColorRed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDayColor, s)
	}
}

// OffPeakWindow is the daily off-peak period. It may wrap midnight.
type OffPeakWindow struct {
	Start time.Duration // offset from midnight
	End   time.Duration // offset from midnight
}

// DefaultOffPeakWindow is the regulated 22:00 to 06:00 off-peak period.
func DefaultOffPeakWindow() OffPeakWindow {
	const (
		startHour = 22
		endHour   = 6
	)
	return OffPeakWindow{Start: startHour * time.Hour, End: endHour * time.Hour}
}

// ParseOffPeakWindow parses "HH:MM-HH:MM".
func ParseOffPeakWindow(s string) (OffPeakWindow, error) {
	parts := strings.Split(s, "-")
	const windowParts = 2
	if len(parts) != windowParts {
		return OffPeakWindow{}, fmt.Errorf("invalid off-peak window %q: expected HH:MM-HH:MM", s)
	}
	start, err := ParseClock(parts[0])
	if err != nil {
		return OffPeakWindow{}, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return OffPeakWindow{}, err
	}
	return OffPeakWindow{Start: start, End: end}, nil
}

// ParseClock parses "HH:MM" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Contains reports whether the time of day of at falls in the window.
func (w OffPeakWindow) Contains(at time.Time) bool {
	clock := time.Duration(at.Hour())*time.Hour +
		time.Duration(at.Minute())*time.Minute +
		time.Duration(at.Second())*time.Second

	if w.Start == w.End {
		return false
	}
	if w.Start < w.End {
		return clock >= w.Start && clock < w.End
	}
	return clock >= w.Start || clock < w.End
}

// ApplicableKey returns the breakdown line that is billed at the given instant
// on a day of the given color. Critical-peak offers treat red days as critical
// days. The boolean is false for offers whose scheme has no notion of time.
func ApplicableKey(o offer.Offer, color DayColor, at time.Time, w OffPeakWindow) (LineKey, bool) {
	offPeak := w.Contains(at)

	switch o.Pricing.(type) {
	case offer.FlatPricing:
		return KeyBase, true

	case offer.PeakOffPeakPricing:
		if offPeak {
			return KeyOffPeak, true
		}
		return KeyPeak, true

	case offer.ColorTieredPricing:
		switch color {
		case ColorWhite:
			if offPeak {
				return KeyWhiteOffPeak, true
			}
			return KeyWhitePeak, true
		case ColorRed:
			if offPeak {
				return KeyRedOffPeak, true
			}
			return KeyRedPeak, true
		default:
			if offPeak {
				return KeyBlueOffPeak, true
			}
			return KeyBluePeak, true
		}

	case offer.CriticalPeakPricing:
		if color == ColorRed && !offPeak {
			return KeyCriticalPeak, true
		}
		return KeyNormal, true

	default:
		return "", false
	}
}
