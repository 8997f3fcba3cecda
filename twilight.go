package solarinfo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/thurmanmarka/solarinfo/internal/sun"
	"github.com/thurmanmarka/solarinfo/internal/timeutil"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

// ErrUnknownTwilight is returned for an unrecognised TwilightKind.
var ErrUnknownTwilight = errors.New("solarinfo: unknown twilight kind")

// Zenith returns the zenith angle of the Sun's center, in degrees, that
// marks the start of morning and end of evening twilight.
func (k TwilightKind) Zenith() (float64, error) {
	switch k {
	case TwilightCivil:
		return 96, nil
	case TwilightNautical:
		return 102, nil
	case TwilightAstronomical:
		return 108, nil
	default:
		return math.NaN(), fmt.Errorf("%w: %d", ErrUnknownTwilight, int(k))
	}
}

func (k TwilightKind) String() string {
	switch k {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	case TwilightAstronomical:
		return "astronomical"
	default:
		return fmt.Sprintf("TwilightKind(%d)", int(k))
	}
}

// ParseTwilightKind parses "civil", "nautical" or "astronomical"
// (case-insensitive).
func ParseTwilightKind(s string) (TwilightKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range []TwilightKind{TwilightCivil, TwilightNautical, TwilightAstronomical} {
		if name == k.String() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q (use civil, nautical or astronomical)", ErrUnknownTwilight, s)
}

// Twilight holds dawn and dusk of one kind for a date.
type Twilight struct {
	Kind     TwilightKind
	Location *time.Location

	Dawn time.Time // Sun rising through the twilight altitude
	Dusk time.Time // Sun setting through the twilight altitude

	// HasDawn / HasDusk indicate whether the corresponding crossing
	// exists on this date at this location (high latitudes can be weird).
	HasDawn bool
	HasDusk bool
}

// TwilightFor computes dawn and dusk of the given kind. Arguments are as for
// ForDate, including the latitude clamp and the southern-hemisphere offset
// convention.
//
// There is no polar search: a crossing that does not happen on the date is
// reported as absent. If neither happens, ErrNoEvent is returned.
func TwilightFor(latitude, longitude float64, date time.Time, utcOffset float64, kind TwilightKind) (Twilight, error) {
	zenith, err := kind.Zenith()
	if err != nil {
		return Twilight{}, err
	}

	q, err := newQuery(latitude, longitude, date, utcOffset)
	if err != nil {
		return Twilight{}, err
	}

	tw := Twilight{Kind: kind, Location: q.loc}

	if m, err := sun.EventUTC(q.jd, q.lat, q.lon, q.offset, zenith, true); err == nil {
		tw.Dawn = timeutil.MinutesToTime(q.jd, m, q.loc)
		tw.HasDawn = true
	}
	if m, err := sun.EventUTC(q.jd, q.lat, q.lon, q.offset, zenith, false); err == nil {
		tw.Dusk = timeutil.MinutesToTime(q.jd, m, q.loc)
		tw.HasDusk = true
	}

	if !tw.HasDawn && !tw.HasDusk {
		return Twilight{}, fmt.Errorf("%s twilight on %s: %w", kind, q.dateString(), ErrNoEvent)
	}
	return tw, nil
}
