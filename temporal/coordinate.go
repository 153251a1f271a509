package temporal

import (
	"fmt"
	"strings"
	"time"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/internal/util"
)

// Coordinate is a sparse calendar point tied to a reference system.
type Coordinate struct {
	Year   *float64 `json:"year,omitempty"`
	Month  *float64 `json:"month,omitempty"`
	Day    *float64 `json:"day,omitempty"`
	Hour   *float64 `json:"hour,omitempty"`
	Minute *float64 `json:"minute,omitempty"`
	Second *float64 `json:"second,omitempty"`
	TRS    string   `json:"trs"`
}

// CoordinateFromTime breaks t (in UTC) into a fully populated coordinate.
func CoordinateFromTime(t time.Time, trs string) Coordinate {
	t = t.UTC()
	sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return Coordinate{
		Year:   util.Ptr(float64(t.Year())),
		Month:  util.Ptr(float64(t.Month())),
		Day:    util.Ptr(float64(t.Day())),
		Hour:   util.Ptr(float64(t.Hour())),
		Minute: util.Ptr(float64(t.Minute())),
		Second: util.Ptr(sec),
		TRS:    trs,
	}
}

func (c Coordinate) fields() []*float64 {
	return []*float64{c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second}
}

// IsZero reports whether no component is set.
func (c Coordinate) IsZero() bool {
	for _, f := range c.fields() {
		if f != nil {
			return false
		}
	}
	return true
}

// Compare orders a and b from most to least significant component. It stops
// at the first component missing on either side, so sparse coordinates
// compare equal as far as both are known. Coordinates on different reference
// systems are incomparable.
func Compare(a, b Coordinate) (int, error) {
	if a.TRS != b.TRS {
		return 0, errors.Wrapf(errors.ErrIncomparable, "%s vs %s", a.TRS, b.TRS)
	}
	af, bf := a.fields(), b.fields()
	for i := range af {
		if af[i] == nil || bf[i] == nil {
			return 0, nil
		}
		switch {
		case *af[i] < *bf[i]:
			return -1, nil
		case *af[i] > *bf[i]:
			return 1, nil
		}
	}
	return 0, nil
}

// String renders the coordinate as an ISO-8601-like string, leaving missing
// components as "?" and omitting trailing missing ones.
func (c Coordinate) String() string {
	parts := c.fields()
	last := -1
	for i, p := range parts {
		if p != nil {
			last = i
		}
	}
	if last < 0 {
		return "(none)"
	}

	render := func(i int, width int) string {
		if parts[i] == nil {
			return "?"
		}
		v := *parts[i]
		if v == float64(int64(v)) {
			if i == 0 {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%0*d", width, int64(v))
		}
		return fmt.Sprintf("%g", v)
	}

	var b strings.Builder
	b.WriteString(render(0, 4))
	for i := 1; i <= last; i++ {
		switch i {
		case 1, 2:
			b.WriteByte('-')
		case 3:
			b.WriteByte('T')
		default:
			b.WriteByte(':')
		}
		b.WriteString(render(i, 2))
	}
	return b.String()
}
